package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/s0ders/release-config/internal/appcontext"
	"github.com/s0ders/release-config/internal/releaseconfig"
)

const (
	defaultConfigName = ".releaserc"
	branchesFlagName  = "branches"
	pluginsFlagName   = "plugins"
)

func NewRootCommand(ctx *appcontext.AppContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "release-config",
		Short:         "release-config - CLI to inspect the release automation configuration of a repository",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if ctx.Verbose {
				level = zerolog.DebugLevel
			}

			ctx.Logger = zerolog.New(cmd.ErrOrStderr()).Level(level).With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.CfgFile, "config", "", "Configuration file path (default \"./.releaserc.{yaml,yml,json,toml}\")")
	rootCmd.PersistentFlags().Var(&ctx.BranchesCfg, branchesFlagName, "Branches configuration as a JSON array, overrides the configuration file")
	rootCmd.PersistentFlags().Var(&ctx.PluginsCfg, pluginsFlagName, "Plugins sequence as a JSON array, overrides the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&ctx.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(NewShowCmd(ctx))
	rootCmd.AddCommand(NewCheckCmd(ctx))
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadConfig reads the configuration file, if any, and applies the flags overriding it.
func loadConfig(cmd *cobra.Command, ctx *appcontext.AppContext) (*releaseconfig.Config, error) {
	v := ctx.Viper

	if ctx.CfgFile != "" {
		v.SetConfigFile(ctx.CfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
	}

	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		ctx.Logger.Debug().Msg("no configuration file found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("reading configuration file: %w", err)
	default:
		ctx.Logger.Debug().Str("path", v.ConfigFileUsed()).Msg("using configuration file")
	}

	var options []releaseconfig.Option

	if cmd.Flags().Changed(branchesFlagName) {
		options = append(options, releaseconfig.WithBranches(ctx.BranchesCfg.GetItems()))
	}

	if cmd.Flags().Changed(pluginsFlagName) {
		options = append(options, releaseconfig.WithPlugins(ctx.PluginsCfg.GetItems()))
	}

	config, err := releaseconfig.Load(v, options...)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return config, nil
}
