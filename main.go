// release-config loads, validates and displays the configuration handed to the release engine: the branches taking
// part in release automation and the ordered sequence of plugins run during a release.
package main

import (
	"os"

	"github.com/s0ders/release-config/cmd"
	"github.com/s0ders/release-config/internal/appcontext"
)

func main() {
	ctx := appcontext.New()

	if err := cmd.NewRootCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
