package cmdmodrinth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/internal/shared"
	"github.com/lodestone-launcher/lodestone/sources"
)

var projectIDFlag string
var versionIDFlag string
var versionFilenameFlag string

func init() {
	modrinthCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&projectIDFlag, "project-id", "", "The Modrinth project ID to use")
	installCmd.Flags().StringVar(&versionIDFlag, "version-id", "", "The Modrinth version ID to use")
	installCmd.Flags().StringVar(&versionFilenameFlag, "version-filename", "", "The Modrinth version filename to use")
	installCmd.Flags().String("server", "", "The server to install the mod on (default: the main server)")
}

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:     "add [URL|slug|search]",
	Short:   "Add a project from a Modrinth URL, slug/project ID or search",
	Aliases: []string{"install", "get"},
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		layout := shared.GetLayout()
		serverRef, _ := cmd.Flags().GetString("server")

		server, err := shared.ResolveServer(layout, serverRef)
		if err != nil {
			shared.Exitln(err)
		}

		var projectSlug, version, versionID, optionalFilenameMatch string

		// If project/version IDs/version file name is provided in command line, use those
		if projectIDFlag != "" {
			projectSlug = projectIDFlag
			if len(args) != 0 {
				shared.Exitln("--project-id cannot be used with a separately specified URL/slug/search term")
			}
		}
		if versionIDFlag != "" {
			versionID = versionIDFlag
			if len(args) != 0 {
				shared.Exitln("--version-id cannot be used with a separately specified URL/slug/search term")
			}
		}
		if versionFilenameFlag != "" {
			optionalFilenameMatch = versionFilenameFlag
		}

		if (len(args) == 0 || len(args[0]) == 0) && projectSlug == "" && versionID == "" {
			shared.Exitln("You must specify a project; with the ID flags, or by passing a URL, slug or search term directly.")
		}

		if projectSlug == "" && versionID == "" && len(args) == 1 {
			if parsedSlug := sources.ParseAsModrinthSlug(args[0]); parsedSlug != "" {
				projectSlug = parsedSlug
			}
			if parsedVersion := sources.ParseAsModrinthVersion(args[0]); parsedVersion != "" {
				version = parsedVersion
			}
			if parsedVersionID := sources.ParseAsModrinthVersionID(args[0]); parsedVersionID != "" {
				versionID = parsedVersionID
			}
			if parsedFilename := sources.ParseAsModrinthFilename(args[0]); parsedFilename != "" {
				optionalFilenameMatch = parsedFilename
			}
		}

		// Got version ID; install using this ID
		if versionID != "" {
			if err := installVersionById(cmd.Context(), layout, server, versionID, optionalFilenameMatch); err != nil {
				shared.Exitf("Failed to add project: %s\n", err)
			}
			return
		}

		// Look up project ID
		if projectSlug != "" {
			// Modrinth transparently handles slugs/project IDs in their API; we don't have to detect which one it is.
			project, err := sources.GetModrinthClient().Projects.Get(projectSlug)
			if err == nil {
				var versionData *modrinthApi.Version
				if version == "" {
					versionData, err = sources.GetModrinthLatestVersion(*project.ID, *project.Title, shared.UpdateContextFor(server))
					if err != nil {
						shared.Exitf("Failed to get latest version: %s\n", err)
					}
				} else {
					versionData, err = sources.ResolveModrinthVersion(project, version)
					if err != nil {
						shared.Exitf("Failed to add project: %s\n", err)
					}
				}

				if err := installVersion(cmd.Context(), layout, server, project, versionData, optionalFilenameMatch); err != nil {
					shared.Exitf("Failed to add project: %s\n", err)
				}
				return
			}
			if projectIDFlag != "" {
				shared.Exitf("Failed to add project: %s\n", err)
			}
		}

		// Arguments weren't a valid slug/project ID, try to search for it instead
		// (if it was not parsed as a URL)
		if len(args) == 0 {
			shared.Exitln("You must specify a project; with the ID flags, or by passing a URL, slug or search term directly.")
		}
		if err := installViaSearch(cmd.Context(), layout, server, strings.Join(args, " "), optionalFilenameMatch); err != nil {
			shared.Exitf("Failed to add project: %s\n", err)
		}
	},
}

func installVersionById(ctx context.Context, layout config.Layout, server *core.ServerEntry, versionId, optionalFilenameMatch string) error {
	project, version, err := sources.ModrinthProjectFromVersionID(versionId)
	if err != nil {
		return fmt.Errorf("failed to fetch project for versionId %s: %v", versionId, err)
	}

	return installVersion(ctx, layout, server, project, version, optionalFilenameMatch)
}

func installViaSearch(ctx context.Context, layout config.Layout, server *core.ServerEntry, query, optionalFilenameMatch string) error {
	fmt.Println("Searching Modrinth...")

	projects, err := sources.ModrinthSearchForProjects(query, shared.UpdateContextFor(server))
	if err != nil {
		return err
	}

	if viper.GetBool("non-interactive") || (len(projects) == 1 && optionalFilenameMatch != "") {
		// Install the first project found
		return installProject(ctx, layout, server, projects[0], optionalFilenameMatch)
	}

	// Create a menu for the user to choose the correct project
	menu := wmenu.NewMenu("Choose a number:")
	menu.Option("Cancel", nil, false, nil)
	for i, v := range projects {
		// Should be non-nil (Title is a required field)
		menu.Option(*v.Title, v, i == 0, nil)
	}

	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return errors.New("project selection cancelled")
		}

		// Get the selected project
		selectedProject, ok := menuRes[0].Value.(*modrinthApi.Project)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}

		return installProject(ctx, layout, server, selectedProject, optionalFilenameMatch)
	})

	return menu.Run()
}

func installProject(ctx context.Context, layout config.Layout, server *core.ServerEntry, project *modrinthApi.Project, optionalFilenameMatch string) error {
	latestVersion, err := sources.GetModrinthLatestVersion(*project.ID, *project.Title, shared.UpdateContextFor(server))
	if err != nil {
		return fmt.Errorf("failed to get latest version: %v", err)
	}

	return installVersion(ctx, layout, server, project, latestVersion, optionalFilenameMatch)
}

func installVersion(ctx context.Context, layout config.Layout, server *core.ServerEntry, project *modrinthApi.Project, version *modrinthApi.Version, optionalFilenameMatch string) error {
	if len(version.Files) == 0 {
		return errors.New("version doesn't have any files attached")
	}

	currentMods, err := fileio.LoadAllLocalMods(layout.ModsDir(server.ID))
	if err != nil {
		return err
	}

	var newMods []*core.LocalMod
	if len(version.Dependencies) > 0 {
		missingDependencies, err := sources.ModrinthFindMissingDependencies(version, shared.UpdateContextFor(server), currentMods)
		if err != nil {
			return err
		}

		if len(missingDependencies) > 0 {
			fmt.Println("Dependencies found:")
			for _, v := range missingDependencies {
				fmt.Println(sources.GetModrinthProjectSlug(v.ProjectInfo))
			}

			if !shared.PromptYesNo("Would you like to add them? [Y/n]: ") {
				// if NO is chosen then we'll nil the slice to prevent installing
				missingDependencies = nil
			}
		}

		for _, dep := range missingDependencies {
			depMod, err := sources.NewModrinthLocalMod(dep.ProjectInfo, dep.VersionInfo, dep.FileInfo)
			if err != nil {
				return err
			}
			newMods = append(newMods, depMod)
		}
	}

	file := sources.GetModrinthVersionPrimaryFile(version, optionalFilenameMatch)
	mainMod, err := sources.NewModrinthLocalMod(project, version, file)
	if err != nil {
		return err
	}
	newMods = append(newMods, mainMod)

	if err := shared.InstallLocalMods(ctx, layout, server, newMods); err != nil {
		return err
	}

	fmt.Printf("Project \"%s\" successfully added! (%s)\n", *project.Title, mainMod.Slug())
	return nil
}
