package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the distribution's servers, or one server's modules and mods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		if viper.GetBool("list.mods") {
			listLocalMods(layout, serverRef)
			return
		}
		if viper.GetBool("list.modules") {
			listModules(layout, serverRef)
			return
		}

		dist, err := shared.LoadDistribution(layout)
		if err != nil {
			shared.Exitln(err)
		}
		for i := range dist.Servers {
			server := &dist.Servers[i]
			marker := " "
			if server.MainServer {
				marker = "*"
			}
			fmt.Printf("%s %s: %s (Minecraft %s)\n", marker, server.ID, server.Name, server.MinecraftVersion)
		}
	},
}

func listLocalMods(layout config.Layout, serverRef string) {
	server, err := shared.ResolveServer(layout, serverRef)
	if err != nil {
		shared.Exitln(err)
	}

	mods, err := fileio.LoadAllLocalMods(layout.ModsDir(server.ID))
	if err != nil {
		shared.Exitln(err)
	}

	// Filter mods by side
	if viper.IsSet("list.side") {
		side := core.ModSide(viper.GetString("list.side"))
		if side != core.UniversalSide && side != core.ServerSide && side != core.ClientSide {
			shared.Exitf("Invalid side %q, must be one of client, server, or both (default)\n", side)
		}

		i := 0
		for _, mod := range mods {
			if mod.Side == side || mod.Side == core.EmptySide || mod.Side == core.UniversalSide || side == core.UniversalSide {
				mods[i] = mod
				i++
			}
		}
		mods = mods[:i]
	}

	sort.Slice(mods, func(i, j int) bool {
		return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
	})

	if viper.GetBool("list.version") {
		for _, mod := range mods {
			fmt.Printf("%s (%s)\n", mod.Name, mod.FileName)
		}
	} else {
		for _, mod := range mods {
			fmt.Println(mod.Name)
		}
	}
}

func listModules(layout config.Layout, serverRef string) {
	server, err := shared.ResolveServer(layout, serverRef)
	if err != nil {
		shared.Exitln(err)
	}

	localMods, err := fileio.LoadAllLocalMods(layout.ModsDir(server.ID))
	if err != nil {
		shared.Exitln(err)
	}
	modules := append([]core.Module(nil), server.Modules...)
	for _, mod := range localMods {
		modules = append(modules, mod.AsModule())
	}

	modConfig, err := fileio.LoadModConfig(layout.ModConfigPath(server.ID))
	if err != nil {
		shared.Exitln(err)
	}
	enabled := make(map[string]bool)
	for _, mod := range core.ResolveModules(modules, modConfig) {
		enabled[mod.ID] = true
	}

	sort.Slice(modules, func(i, j int) bool {
		return strings.ToLower(modules[i].Name) < strings.ToLower(modules[j].Name)
	})

	for i := range modules {
		mod := &modules[i]
		state := "enabled"
		if !enabled[mod.ID] {
			state = "disabled"
		} else if mod.Required.IsRequired() {
			state = "required"
		}
		fmt.Printf("%s [%s] (%s)\n", mod.Name, mod.Type, state)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("version", "v", false, "Print name and file name")
	_ = viper.BindPFlag("list.version", listCmd.Flags().Lookup("version"))
	listCmd.Flags().StringP("side", "s", "", "Filter mods by side (e.g., client or server)")
	_ = viper.BindPFlag("list.side", listCmd.Flags().Lookup("side"))
	listCmd.Flags().BoolP("mods", "m", false, "List a server's locally installed mods instead of the servers")
	_ = viper.BindPFlag("list.mods", listCmd.Flags().Lookup("mods"))
	listCmd.Flags().Bool("modules", false, "List a server's distribution modules instead of the servers")
	_ = viper.BindPFlag("list.modules", listCmd.Flags().Lookup("modules"))
	listCmd.Flags().String("server", "", "The server to list mods or modules for (default: the main server)")
}
