package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/s0ders/release-config/internal/appcontext"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func NewShowCmd(ctx *appcontext.AppContext) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the resolved configuration",
		Long:  "Display the branches and plugins sequence handed to the release engine, after defaults and flags are applied",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, ctx)
			if err != nil {
				return err
			}

			document := config.Document()
			out := cmd.OutOrStdout()

			switch ctx.OutputFormat {
			case formatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err = encoder.Encode(document); err != nil {
					return fmt.Errorf("encoding JSON: %w", err)
				}
			case formatYAML:
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				if err = encoder.Encode(document); err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
				if err = encoder.Close(); err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
			default:
				return fmt.Errorf("unsupported output format %q", ctx.OutputFormat)
			}

			ctx.Logger.Debug().Int("branches", len(document.Branches)).Int("plugins", len(document.Plugins)).Msg("configuration displayed")

			return nil
		},
	}

	showCmd.Flags().StringVarP(&ctx.OutputFormat, "output", "o", formatYAML, "Output format, one of \"yaml\" or \"json\"")

	return showCmd
}
