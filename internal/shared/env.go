package shared

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/logging"
)

// GetLayout resolves the instance layout from configuration.
func GetLayout() config.Layout {
	return config.NewLayout(viper.GetString("instance-dir"))
}

// NewLogger builds the root logger at the configured verbosity.
func NewLogger() hclog.Logger {
	return logging.New(logging.Level(viper.GetString("verbosity")), nil)
}

// LoadDistribution fetches the server distribution manifest, falling back to
// the instance's cached copy when the remote is unreachable.
func LoadDistribution(layout config.Layout) (core.Distribution, error) {
	url := viper.GetString("distribution-url")
	if url == "" {
		return core.Distribution{}, errors.New("no distribution URL configured; run 'lodestone init' or set --distribution-url")
	}

	dist, cached, err := fileio.FetchDistribution(url, layout.DistributionCachePath())
	if err != nil {
		return core.Distribution{}, err
	}
	if cached {
		fmt.Println("Warning: could not reach the distribution server, using the cached manifest.")
	}
	return dist, nil
}

// serverChoices adapts the server list for fuzzy matching on id and name.
type serverChoices []core.ServerEntry

func (s serverChoices) String(i int) string { return s[i].ID + " " + s[i].Name }
func (s serverChoices) Len() int            { return len(s) }

// PickServer resolves the target server: an exact id match first, then a
// fuzzy match over ids and names with a menu when several fit, then the
// distribution's main server when no reference was given.
func PickServer(dist *core.Distribution, ref string) (*core.ServerEntry, error) {
	if ref == "" {
		return dist.GetMainServer()
	}
	if server, ok := dist.GetServer(ref); ok {
		return server, nil
	}

	matches := fuzzy.FindFrom(ref, serverChoices(dist.Servers))
	if len(matches) == 0 {
		return nil, fmt.Errorf("no server matches %q", ref)
	}
	if len(matches) == 1 || viper.GetBool("non-interactive") {
		return &dist.Servers[matches[0].Index], nil
	}

	menu := wmenu.NewMenu("Choose a number:")
	menu.Option("Cancel", nil, false, nil)
	for i, match := range matches {
		server := &dist.Servers[match.Index]
		menu.Option(server.Name+" ("+server.ID+")", server, i == 0, nil)
	}

	var picked *core.ServerEntry
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return errors.New("server selection cancelled")
		}
		var ok bool
		picked, ok = menuRes[0].Value.(*core.ServerEntry)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		return nil
	})
	if err := menu.Run(); err != nil {
		return nil, err
	}
	return picked, nil
}

// ResolveServer loads the distribution and picks the server a command
// should operate on. An empty ref means the distribution's main server.
func ResolveServer(layout config.Layout, ref string) (*core.ServerEntry, error) {
	dist, err := LoadDistribution(layout)
	if err != nil {
		return nil, err
	}
	return PickServer(&dist, ref)
}

// UpdateContextFor derives the update-source compatibility facts from a
// server's declared modules.
func UpdateContextFor(server *core.ServerEntry) core.UpdateContext {
	var loaders []string
	for i := range server.Modules {
		switch server.Modules[i].Type {
		case core.ModuleForge, core.ModuleForgeHosted:
			loaders = append(loaders, "forge")
		case core.ModuleFabric:
			loaders = append(loaders, "fabric")
		case core.ModuleLiteLoader:
			loaders = append(loaders, "liteloader")
		}
	}
	if len(loaders) == 0 {
		loaders = []string{"minecraft"}
	}
	return core.UpdateContext{
		MinecraftVersion: server.MinecraftVersion,
		Loaders:          loaders,
	}
}
