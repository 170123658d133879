package launch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/fileio"
)

// Forge discovers mods through its own directory scan from this game
// version on; before it, the loader is told about mods through a mod-list
// file passed on the command line.
const forgeScansModsDir = "1.13"

// modListFile is the legacy loader's mod manifest: where the artifact
// repository lives and which maven identifiers to load out of it.
type modListFile struct {
	RepositoryRoot string   `json:"repositoryRoot"`
	ModRef         []string `json:"modRef"`
}

// NeedsModList reports whether the loader setup consumes a mod-list file
// instead of (or in addition to) scanning the mods directory.
func NeedsModList(loader core.ModuleType, mcVersion string, liteLoader bool) bool {
	if liteLoader {
		return true
	}
	switch loader {
	case core.ModuleForge, core.ModuleForgeHosted:
		return !core.MinecraftAtLeast(forgeScansModsDir, mcVersion)
	}
	return false
}

// WriteModList writes the legacy mod-list file referencing the enabled
// code mods by extensionless maven identifier, rooted at the shared
// libraries directory.
func WriteModList(path, librariesDir string, mods []core.Module) error {
	refs := make([]string, 0, len(mods))
	for i := range mods {
		if mods[i].Type != core.ModuleMod {
			continue
		}
		id, err := mods[i].MavenID()
		if err != nil {
			return fmt.Errorf("mod %s: %w", mods[i].ID, err)
		}
		refs = append(refs, id.Group+":"+id.Artifact+":"+id.Version)
	}

	raw, err := json.Marshal(modListFile{
		RepositoryRoot: "absolute:" + librariesDir,
		ModRef:         refs,
	})
	if err != nil {
		return err
	}

	f, err := fileio.CreateFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(raw)
	return err
}

// ModListArgs returns the game arguments pointing the legacy loader at the
// mod-list file.
func ModListArgs(path string) []string {
	return []string{"--modListFile", "absolute:" + path}
}

// MaterializeMods places the enabled distribution code mods into the
// server's mods directory, where loaders that scan for mods will find
// them. Artifacts stay under the shared libraries directory; this copies
// rather than links so the game can never dirty the validated originals.
func MaterializeMods(mods []core.Module, librariesDir, modsDir string, logger hclog.Logger) error {
	if err := os.MkdirAll(modsDir, 0755); err != nil {
		return err
	}

	for i := range mods {
		if mods[i].Type != core.ModuleMod {
			continue
		}
		src, err := mods[i].ResolvePath(librariesDir)
		if err != nil {
			return fmt.Errorf("mod %s: %w", mods[i].ID, err)
		}
		dest := filepath.Join(modsDir, filepath.Base(src))
		if err := copyIfChanged(src, dest); err != nil {
			return fmt.Errorf("materializing %s: %w", mods[i].ID, err)
		}
		logger.Debug("materialized mod", "id", mods[i].ID, "dest", dest)
	}
	return nil
}

// copyIfChanged copies src over dest unless dest already has src's size.
// The downloader has already hash-validated src, so size is enough to catch
// a stale or truncated copy.
func copyIfChanged(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if destInfo, err := os.Stat(dest); err == nil && destInfo.Size() == srcInfo.Size() {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fileio.CreateFile(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// DisabledExtension marks a local mod jar the loader must not pick up.
const DisabledExtension = ".disabled"

// SyncLocalModState renames local mod jars to match their enablement: an
// enabled mod's jar loses the disabled suffix, a disabled mod's jar gains
// it. Rename failures are logged and skipped; a mod stuck in the wrong
// state is the game's problem to report, not a reason to abort the launch.
func SyncLocalModState(mods []*core.LocalMod, config map[string]any, logger hclog.Logger) {
	for _, mod := range mods {
		jar := mod.GetDestFilePath()
		disabled := jar + DisabledExtension

		enabled := mod.LaunchesOnClient() && mod.Enabled(localModChoice(config, mod.Slug()))
		if enabled {
			if _, err := os.Stat(jar); err == nil {
				continue
			}
			if _, err := os.Stat(disabled); err == nil {
				if err := os.Rename(disabled, jar); err != nil {
					logger.Warn("failed to re-enable local mod", "mod", mod.Slug(), "error", err)
				}
			}
			continue
		}

		if _, err := os.Stat(jar); err == nil {
			if err := os.Rename(jar, disabled); err != nil {
				logger.Warn("failed to disable local mod", "mod", mod.Slug(), "error", err)
			}
		}
	}
}

// EnabledLocalMods filters the local mods that participate in this launch.
func EnabledLocalMods(mods []*core.LocalMod, config map[string]any) []*core.LocalMod {
	out := make([]*core.LocalMod, 0, len(mods))
	for _, mod := range mods {
		if mod.LaunchesOnClient() && mod.Enabled(localModChoice(config, mod.Slug())) {
			out = append(out, mod)
		}
	}
	return out
}

// localModChoice digs a stored boolean choice for a local mod out of the
// per-server mod configuration. Local mods only ever store plain booleans.
func localModChoice(config map[string]any, slug string) *bool {
	if v, ok := config[slug].(bool); ok {
		return &v
	}
	return nil
}
