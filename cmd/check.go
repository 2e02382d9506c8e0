package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/s0ders/release-config/internal/appcontext"
	"github.com/s0ders/release-config/internal/branch"
	"github.com/s0ders/release-config/internal/ci"
	"github.com/s0ders/release-config/internal/remote"
)

var ErrMissingBranch = errors.New("configured branch not found in repository")

func NewCheckCmd(ctx *appcontext.AppContext) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <REPOSITORY_PATH_OR_URL>",
		Short: "Check that the configured branches exist in a Git repository",
		Long:  "Resolve every configured release branch against a local or remote Git repository and report the ones that are missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, ctx)
			if err != nil {
				return err
			}

			var repository *git.Repository

			origin := remote.New(ctx.RemoteName, ctx.AccessToken)

			if ctx.RemoteMode {
				var path string

				repository, path, err = origin.Clone(args[0])
				if err != nil {
					return fmt.Errorf("cloning Git repository: %w", err)
				}

				defer func() {
					_ = os.RemoveAll(path)
				}()
			} else {
				repository, err = git.PlainOpen(args[0])
				if err != nil {
					return fmt.Errorf("opening local Git repository: %w", err)
				}
			}

			output := ci.NewJSONOutput()
			missing := 0

			for _, b := range config.Branches() {
				ref, found, err := branch.Lookup(repository, b, origin.Name())
				if err != nil {
					return fmt.Errorf("looking up branch %q: %w", b.Name, err)
				}

				logEvent := ctx.Logger.Info()
				logEvent.Str("branch", b.Name)
				logEvent.Bool("prerelease", b.Prerelease)
				logEvent.Bool("found", found)

				if !found {
					missing++
					output.AddBranch(b.Name, b.Prerelease, false, "", "branch not found")
					logEvent.Msg("branch not found")
					continue
				}

				output.AddBranch(b.Name, b.Prerelease, true, ref.Name().String(), "branch found")
				logEvent.Str("reference", ref.Name().String()).Str("hash", ref.Hash().String()).Msg("branch found")
			}

			if err = ci.GenerateGitHubOutput(output); err != nil {
				return fmt.Errorf("generating github output: %w", err)
			}

			if ctx.JSONOutput {
				if err = output.Write(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("writing JSON output: %w", err)
				}
			}

			if missing > 0 {
				return fmt.Errorf("%w: %d of %d", ErrMissingBranch, missing, len(output.Branches))
			}

			return nil
		},
	}

	checkCmd.Flags().BoolVar(&ctx.RemoteMode, "remote", false, "Clone the repository from the given URL instead of opening a local path")
	checkCmd.Flags().StringVar(&ctx.RemoteName, "remote-name", "origin", "Name of the Git remote used for cloning and remote-tracking branches")
	checkCmd.Flags().StringVar(&ctx.AccessToken, "access-token", "", "Access token used to clone a private repository")
	checkCmd.Flags().BoolVar(&ctx.JSONOutput, "json", false, "Print the check results as JSON")

	return checkCmd
}
