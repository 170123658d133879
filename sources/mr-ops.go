package sources

import (
	"errors"
	"fmt"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"golang.org/x/exp/slices"

	"github.com/lodestone-launcher/lodestone/core"
)

const mrMaxCycles = 20

type ModrinthDepMetadataStore struct {
	ProjectInfo *modrinthApi.Project
	VersionInfo *modrinthApi.Version
	FileInfo    *modrinthApi.File
}

// ModrinthFindMissingDependencies walks a version's required dependencies,
// skipping projects already present in currentMods, and resolves the latest
// compatible version of each one that still needs installing.
func ModrinthFindMissingDependencies(
	version *modrinthApi.Version,
	ctx core.UpdateContext,
	currentMods []*core.LocalMod,
) ([]ModrinthDepMetadataStore, error) {
	// TODO: could get installed version IDs, and compare to install the newest - i.e. preferring pinned versions over getting absolute latest?
	installedProjects := mrGetInstalledProjectIDs(currentMods)
	isQuilt := slices.Contains(ctx.Loaders, "quilt")

	var depMetadata []ModrinthDepMetadataStore
	var depProjectIDPendingQueue []string
	var depVersionIDPendingQueue []string

	for _, dep := range version.Dependencies {
		// TODO: recommend optional dependencies?
		if dep.DependencyType != nil && *dep.DependencyType == "required" {
			if dep.VersionID != nil {
				depVersionIDPendingQueue = append(depVersionIDPendingQueue, *dep.VersionID)
			} else {
				if dep.ProjectID != nil {
					depProjectIDPendingQueue = append(depProjectIDPendingQueue, mrMapDepOverride(*dep.ProjectID, isQuilt, ctx.MinecraftVersion))
				}
			}
		}
	}

	if len(depProjectIDPendingQueue)+len(depVersionIDPendingQueue) > 0 {
		fmt.Println("Finding dependencies...")

		cycles := 0
		for len(depProjectIDPendingQueue)+len(depVersionIDPendingQueue) > 0 && cycles < mrMaxCycles {
			// Look up version IDs
			if len(depVersionIDPendingQueue) > 0 {
				depVersions, err := GetModrinthClient().Versions.GetMultiple(depVersionIDPendingQueue)
				if err == nil {
					for _, v := range depVersions {
						// Add project ID to queue
						depProjectIDPendingQueue = append(depProjectIDPendingQueue, mrMapDepOverride(*v.ProjectID, isQuilt, ctx.MinecraftVersion))
					}
				} else {
					fmt.Printf("Error retrieving dependency data: %s\n", err.Error())
				}
				depVersionIDPendingQueue = depVersionIDPendingQueue[:0]
			}

			// Remove installed project IDs from dep queue
			i := 0
			for _, id := range depProjectIDPendingQueue {
				contains := slices.Contains(installedProjects, id)
				for _, dep := range depMetadata {
					if *dep.ProjectInfo.ID == id {
						contains = true
						break
					}
				}
				if !contains {
					depProjectIDPendingQueue[i] = id
					i++
				}
			}
			depProjectIDPendingQueue = depProjectIDPendingQueue[:i]

			// Clean up duplicates from dep queue (from deps on both QFAPI + FAPI)
			slices.Sort(depProjectIDPendingQueue)
			depProjectIDPendingQueue = slices.Compact(depProjectIDPendingQueue)

			if len(depProjectIDPendingQueue) == 0 {
				break
			}
			depProjects, err := GetModrinthClient().Projects.GetMultiple(depProjectIDPendingQueue)
			if err != nil {
				fmt.Printf("Error retrieving dependency data: %s\n", err.Error())
			}
			depProjectIDPendingQueue = depProjectIDPendingQueue[:0]

			for _, project := range depProjects {
				if project.ID == nil {
					return nil, errors.New("failed to get dependency data: invalid response")
				}
				// Get latest version - could reuse version lookup data but it's not as easy (particularly since the version won't necessarily be the latest)
				latestVersion, err := GetModrinthLatestVersion(*project.ID, *project.Title, ctx)
				if err != nil {
					fmt.Printf("Failed to get latest version of dependency %v: %v\n", *project.Title, err)
					continue
				}

				for _, dep := range latestVersion.Dependencies {
					// TODO: recommend optional dependencies?
					if dep.DependencyType != nil && *dep.DependencyType == "required" {
						if dep.ProjectID != nil {
							depProjectIDPendingQueue = append(depProjectIDPendingQueue, mrMapDepOverride(*dep.ProjectID, isQuilt, ctx.MinecraftVersion))
						}
						if dep.VersionID != nil {
							depVersionIDPendingQueue = append(depVersionIDPendingQueue, *dep.VersionID)
						}
					}
				}

				var file = latestVersion.Files[0]
				// Prefer the primary file
				for _, v := range latestVersion.Files {
					if *v.Primary {
						file = v
					}
				}

				depMetadata = append(depMetadata, ModrinthDepMetadataStore{
					ProjectInfo: project,
					VersionInfo: latestVersion,
					FileInfo:    file,
				})
			}

			cycles++
		}
		if cycles >= mrMaxCycles {
			return nil, errors.New("dependencies recurse too deeply, try increasing mrMaxCycles")
		}
	}

	return depMetadata, nil
}

func mrGetInstalledProjectIDs(mods []*core.LocalMod) []string {
	installedProjects := make([]string, 0, len(mods))
	for _, mod := range mods {
		var data mrUpdateData
		err := mod.DecodeNamedSourceData("modrinth", &data)
		if err == nil && data.ProjectID != "" {
			installedProjects = append(installedProjects, data.ProjectID)
		}
	}
	return installedProjects
}

// GetModrinthVersionPrimaryFile picks the file to install from a version,
// preferring an exact filename match, then the file flagged primary.
func GetModrinthVersionPrimaryFile(
	version *modrinthApi.Version,
	versionFilename string,
) *modrinthApi.File {
	var file = version.Files[0]
	for _, v := range version.Files {
		if (*v.Primary) || (versionFilename != "" && versionFilename == *v.Filename) {
			file = v
		}
	}

	return file
}

// NewModrinthLocalMod builds the local mod metadata for a resolved
// project/version/file triple.
func NewModrinthLocalMod(
	project *modrinthApi.Project,
	version *modrinthApi.Version,
	file *modrinthApi.File,
) (*core.LocalMod, error) {
	if err := mrCheckInstallable(*project.ProjectType, version.Loaders); err != nil {
		return nil, err
	}

	updateMap := make(core.ModUpdate)

	var err error
	updateMap["modrinth"], err = mrUpdateData{
		ProjectID:        *project.ID,
		InstalledVersion: *version.ID,
	}.ToMap()
	if err != nil {
		return nil, err
	}

	side := mrGetSide(project)
	if side == core.EmptySide {
		return nil, errors.New("version doesn't have a side that's supported. Server: " + *project.ServerSide + " Client: " + *project.ClientSide)
	}

	algorithm, hash := mrGetBestHash(file)
	if algorithm == "" {
		return nil, errors.New("file doesn't have a hash")
	}

	download := core.ModDownload{
		URL:        *file.URL,
		HashFormat: algorithm,
		Hash:       hash,
	}

	mod := core.NewLocalMod(
		GetModrinthProjectSlug(project),
		*project.Title,
		*file.Filename,
		side,
		false,
		updateMap,
		download,
		nil,
	)

	return mod, nil
}

// mrCheckInstallable rejects project types that can't go in a server's mods
// directory. Resource packs, shaders and datapacks have no home in a managed
// instance, and modpacks aren't a single file at all.
func mrCheckInstallable(projectType string, fileLoaders []string) error {
	switch projectType {
	case "mod":
		datapackOnly := len(fileLoaders) > 0
		for _, loader := range fileLoaders {
			if loader != "datapack" {
				datapackOnly = false
				break
			}
		}
		if datapackOnly {
			return errors.New("this project is a datapack, which can't be installed as a mod")
		}
		return nil
	case "plugin":
		return errors.New("plugin projects run on standalone servers, not in a client launch")
	case "modpack", "resourcepack", "shader":
		return fmt.Errorf("%s projects can't be installed as a mod", projectType)
	default:
		return fmt.Errorf("unknown project type: %s", projectType)
	}
}

func GetModrinthProjectSlug(project *modrinthApi.Project) string {
	if project.Slug != nil {
		return *project.Slug
	}
	return core.SlugifyName(*project.Title)
}
