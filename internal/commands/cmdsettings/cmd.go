package cmdsettings

import (
	"github.com/spf13/cobra"

	"github.com/lodestone-launcher/lodestone/cmd"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage instance settings",
}

// settingsKeys are the keys the instance settings file understands. Every
// one of them can also be set per run with the matching flag or a
// LODESTONE_* environment variable.
var settingsKeys = []string{
	"instance-name",
	"distribution-url",
	"java-path",
	"max-ram",
	"min-ram",
	"jvm-args",
	"width",
	"height",
	"fullscreen",
	"detached",
	"auto-connect",
	"join-url",
	"verbosity",
	"gh-api-key",
}

func init() {
	cmd.Add(settingsCmd)
}
