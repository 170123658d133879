package shared

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/download"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/logging"
)

// InstallLocalMods writes metadata for newly added mods into a server's mods
// directory and fetches their files, recording them in the instance ledger.
func InstallLocalMods(ctx context.Context, layout config.Layout, server *core.ServerEntry, mods []*core.LocalMod) error {
	modsDir := layout.ModsDir(server.ID)
	if err := os.MkdirAll(modsDir, os.ModePerm); err != nil {
		return err
	}

	ledger, err := fileio.LoadLedger(layout.LedgerPath())
	if err != nil {
		return err
	}

	for _, mod := range mods {
		mod.SetMetaPath(filepath.Join(modsDir, mod.Slug()+core.MetaExtension))
		if _, _, err := fileio.WriteLocalMod(mod); err != nil {
			return err
		}
	}

	dl := download.Downloader{
		Workers:  download.DefaultWorkers,
		Logger:   logging.ForArea(NewLogger(), "download"),
		Progress: download.NewBarProgress("mods"),
		Ledger:   &ledger,
	}
	report := dl.Run(ctx, download.LocalModPlan(mods))
	if err := fileio.WriteLedger(&ledger); err != nil {
		return err
	}
	return report.Err()
}
