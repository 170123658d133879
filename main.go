package main

import (
	"github.com/lodestone-launcher/lodestone/cmd"
	"github.com/lodestone-launcher/lodestone/config"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/cmdaccount"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/cmdgithub"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/cmdmodrinth"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/cmdsettings"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/cmdurl"
	_ "github.com/lodestone-launcher/lodestone/internal/commands/utils"
)

// Version is provided at build time with ldflags
var Version string

func main() {
	if Version != "" {
		config.SetVersion(Version)
	}
	cmd.Execute()
}
