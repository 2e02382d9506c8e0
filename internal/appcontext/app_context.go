// Package appcontext provides a structure to store the current application execution context.
//
// The use of this structure allows avoiding the use of global variables to share the states of variables across
// structures and functions.
package appcontext

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/s0ders/release-config/internal/branch"
	"github.com/s0ders/release-config/internal/plugin"
)

type AppContext struct {
	Viper        *viper.Viper
	BranchesCfg  branch.Flag
	PluginsCfg   plugin.Flag
	Logger       zerolog.Logger
	CfgFile      string
	AccessToken  string
	RemoteName   string
	OutputFormat string
	RemoteMode   bool
	JSONOutput   bool
	Verbose      bool
}

func New() *AppContext {
	return &AppContext{
		Viper: viper.New(),
	}
}
