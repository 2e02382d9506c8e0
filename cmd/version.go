package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via ldflags for CI builds, otherwise read from debug.ReadBuildInfo().
var (
	cmdVersion      string
	buildCommitHash string
)

func NewVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display CLI current version",
		Long:  "Display CLI current version and the commit hash it was built from",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readVersionInfo(debug.ReadBuildInfo)

			version := info.version
			if info.modified {
				version += " (modified)"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Version: %s\n", version)
			_, _ = fmt.Fprintf(out, "Commit: %s\n", info.commit)

			return nil
		},
	}

	return versionCmd
}

type versionInfo struct {
	version  string
	commit   string
	modified bool
}

// readVersionInfo prefers ldflags values and falls back to the module build information.
func readVersionInfo(buildInfo func() (*debug.BuildInfo, bool)) versionInfo {
	info := versionInfo{version: "unknown", commit: "unknown"}

	if cmdVersion != "" {
		info.version = cmdVersion
	}
	if buildCommitHash != "" {
		info.commit = buildCommitHash
	}

	bi, ok := buildInfo()
	if !ok {
		return info
	}

	if cmdVersion == "" && bi.Main.Version != "" {
		info.version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if buildCommitHash == "" {
				info.commit = setting.Value
				if len(info.commit) > 12 {
					info.commit = info.commit[:12]
				}
			}
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}

	return info
}
