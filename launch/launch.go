package launch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
)

// Options are the player-configurable knobs for a launch, supplied by the
// CLI's config layer.
type Options struct {
	JavaPath     string
	MinHeap      config.MemorySize
	MaxHeap      config.MemorySize
	ExtraJvmArgs []string

	ResolutionWidth  int
	ResolutionHeight int
	Fullscreen       bool

	AutoConnect bool
	Detached    bool

	// JoinBaseURL is the join-authorization service endpoint. Empty means
	// the distribution runs no such service and the token step is skipped.
	JoinBaseURL string
}

// Spec carries everything one launch attempt consumes. All fields are
// read-only to the launch; the classpath and argument vector are built
// fresh and discarded after the process spawns.
type Spec struct {
	Layout    config.Layout
	Server    *core.ServerEntry
	Manifest  *core.VersionManifest
	Session   *core.Session
	ModConfig map[string]any
	LocalMods []*core.LocalMod
	Options   Options
	Logger    hclog.Logger
}

func (s *Spec) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

// Launch runs the whole pipeline: scratch natives directory, join token,
// mod placement, natives extraction, classpath, argument assembly, spawn.
// Failures before the spawn abort and return the wrapped cause; anything
// that only degrades the running game is logged and survived.
func Launch(ctx context.Context, spec *Spec) (*Process, error) {
	logger := spec.logger()
	serverDir := spec.Layout.ServerDir(spec.Server.ID)
	librariesDir := spec.Layout.LibrariesDir()

	if err := os.MkdirAll(serverDir, 0755); err != nil {
		return nil, fmt.Errorf("creating server directory: %w", err)
	}

	sweepStaleNatives(serverDir, logger)
	nativesDir, err := os.MkdirTemp(serverDir, "natives-")
	if err != nil {
		return nil, fmt.Errorf("creating natives directory: %w", err)
	}

	arch := core.ResolveArchitecture()
	rules := core.NewRuleContext(arch, core.FeatureSet{
		CustomResolution: spec.Options.ResolutionWidth > 0 && spec.Options.ResolutionHeight > 0,
		Fullscreen:       spec.Options.Fullscreen,
	})
	logger.Debug("resolved host", "platform", arch.Platform, "arch", arch.Arch)

	enabled := core.ResolveModules(spec.Server.Modules, spec.ModConfig)
	loaderType, liteLoaderPath, err := detectLoaders(enabled, librariesDir)
	if err != nil {
		return nil, err
	}

	// The join token is the only network step and the only fatal external
	// dependency: without it the server would reject the session anyway.
	var joinToken string
	if spec.Options.JoinBaseURL != "" {
		joinToken, err = NewJoinClient(spec.Options.JoinBaseURL).FetchToken(ctx, spec.Session)
		if err != nil {
			removeDir(nativesDir, logger)
			return nil, err
		}
	} else {
		logger.Debug("no join service configured, launching without a join token")
	}

	SyncLocalModState(spec.LocalMods, spec.ModConfig, logger)
	logger.Debug("local mods active", "count", len(EnabledLocalMods(spec.LocalMods, spec.ModConfig)))

	if NeedsModList(loaderType, spec.Server.MinecraftVersion, liteLoaderPath != "") {
		if err := WriteModList(spec.Layout.ModListPath(spec.Server.ID), librariesDir, enabled); err != nil {
			removeDir(nativesDir, logger)
			return nil, fmt.Errorf("writing mod list: %w", err)
		}
	} else {
		if err := MaterializeMods(enabled, librariesDir, spec.Layout.ModsDir(spec.Server.ID), logger); err != nil {
			removeDir(nativesDir, logger)
			return nil, fmt.Errorf("placing mods: %w", err)
		}
	}

	extractor := core.NewNativesExtractor(arch, rules, librariesDir, nativesDir, logger)
	if err := extractor.Extract(spec.Manifest.Libraries); err != nil {
		removeDir(nativesDir, logger)
		return nil, fmt.Errorf("extracting natives: %w", err)
	}
	extractor.VerifyNatives()

	classpath, err := core.BuildClasspath(core.ClasspathInput{
		VersionJarPath:   spec.Layout.VersionJarPath(spec.Server.MinecraftVersion),
		MinecraftVersion: spec.Server.MinecraftVersion,
		LoaderType:       loaderType,
		LiteLoaderPath:   liteLoaderPath,
		Libraries:        spec.Manifest.Libraries,
		LibraryDir:       librariesDir,
		Modules:          enabled,
		Rules:            rules,
	})
	if err != nil {
		removeDir(nativesDir, logger)
		return nil, fmt.Errorf("building classpath: %w", err)
	}

	args := buildArguments(spec, rules, classpath, nativesDir, serverDir, joinToken, loaderType, liteLoaderPath != "")

	executable := config.ResolveJavaExecutable(spec.Options.JavaPath)
	logger.Info("launching game",
		"executable", executable,
		"server", spec.Server.ID,
		"version", spec.Server.MinecraftVersion,
		"args", redactSecrets(args, spec.Session.AccessToken, joinToken),
	)

	proc, err := startProcess(executable, args, serverDir, spec.Options.Detached, nativesDir, logger)
	if err != nil {
		removeDir(nativesDir, logger)
		return nil, err
	}
	return proc, nil
}

// buildArguments assembles the final vector: memory bounds, player JVM
// options, the manifest's JVM template (or the legacy default), the join
// token property, the main class, the game template, and the trailing
// loader and autoconnect flags.
func buildArguments(spec *Spec, rules core.RuleContext, classpath []string, nativesDir, serverDir, joinToken string, loaderType core.ModuleType, liteLoader bool) []string {
	builder := &core.ArgBuilder{
		Ctx: &core.ArgContext{
			Session:    spec.Session,
			GameDir:    serverDir,
			AssetsRoot: spec.Layout.AssetsDir(),
			NativesDir: nativesDir,
			Classpath:  classpath,

			VersionName:    spec.Manifest.ID,
			AssetIndexName: assetIndexName(spec.Manifest),
			VersionType:    spec.Manifest.Type,

			ResolutionWidth:  spec.Options.ResolutionWidth,
			ResolutionHeight: spec.Options.ResolutionHeight,
			LauncherName:     config.Brand,
			LauncherVersion:  config.Version,
		},
		Rules:  rules,
		Logger: spec.Logger,
	}

	args := []string{
		spec.Options.MaxHeap.JvmArg("-Xmx"),
		spec.Options.MinHeap.JvmArg("-Xms"),
	}
	args = append(args, spec.Options.ExtraJvmArgs...)

	jvmTemplate := spec.Manifest.Arguments.JVM
	if len(jvmTemplate) == 0 {
		jvmTemplate = legacyJvmTemplate
	}
	args = append(args, builder.ResolveArgs(jvmTemplate)...)
	args = core.EnsureNativePathArgs(args, nativesDir, rules.Platform)

	if joinToken != "" {
		args = append(args, joinTokenProp+joinToken)
	}

	args = append(args, spec.Manifest.MainClass)

	if len(spec.Manifest.Arguments.Game) > 0 {
		args = append(args, builder.ResolveArgs(spec.Manifest.Arguments.Game)...)
	} else {
		args = append(args, builder.ResolveLegacyArgs(spec.Manifest.MinecraftArguments)...)
	}

	if NeedsModList(loaderType, spec.Server.MinecraftVersion, liteLoader) {
		args = append(args, ModListArgs(spec.Layout.ModListPath(spec.Server.ID))...)
	}

	if spec.Options.AutoConnect && spec.Server.AutoConnect {
		args = append(args, core.AutoConnectArgs(spec.Server.Address, spec.Server.MinecraftVersion)...)
	}

	return args
}

// joinTokenProp is the system property the server-side plugin reads the
// join token back out of.
const joinTokenProp = "-Dlodestone.join.token="

// legacyJvmTemplate stands in for manifests old enough to predate JVM
// argument templates.
var legacyJvmTemplate = []core.Argument{
	{Raw: "-Djava.library.path=${natives_directory}"},
	{Raw: "-cp"},
	{Raw: "${classpath}"},
}

func assetIndexName(manifest *core.VersionManifest) string {
	if manifest.AssetIndex.ID != "" {
		return manifest.AssetIndex.ID
	}
	return manifest.Assets
}

// detectLoaders finds the primary loader and the legacy secondary loader in
// the enabled module set.
func detectLoaders(enabled []core.Module, librariesDir string) (core.ModuleType, string, error) {
	var loaderType core.ModuleType
	var liteLoaderPath string

	for i := range enabled {
		switch enabled[i].Type {
		case core.ModuleForge, core.ModuleForgeHosted, core.ModuleFabric:
			if loaderType == "" {
				loaderType = enabled[i].Type
			}
		case core.ModuleLiteLoader:
			p, err := enabled[i].ResolvePath(librariesDir)
			if err != nil {
				return "", "", fmt.Errorf("liteloader module %s: %w", enabled[i].ID, err)
			}
			liteLoaderPath = p
		}
	}
	return loaderType, liteLoaderPath, nil
}

// sweepStaleNatives removes scratch directories a previous launch failed to
// clean up. Best-effort: a locked directory (say, a still-running game)
// stays put.
func sweepStaleNatives(serverDir string, logger hclog.Logger) {
	entries, err := os.ReadDir(serverDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "natives-") {
			removeDir(filepath.Join(serverDir, e.Name()), logger)
		}
	}
}

func removeDir(dir string, logger hclog.Logger) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("failed to remove scratch directory", "dir", dir, "error", err)
	}
}

// redactSecrets masks credential values before they reach a log line.
func redactSecrets(args []string, secrets ...string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		for _, s := range secrets {
			if s != "" && strings.Contains(a, s) {
				out[i] = strings.ReplaceAll(a, s, "[redacted]")
			}
		}
	}
	return out
}
