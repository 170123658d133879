package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Distribution is the server-distributed manifest: the servers a launcher
// installation can join, each with its game version and module tree.
type Distribution struct {
	Format  string        `json:"format"`
	Version string        `json:"version,omitempty"`
	Servers []ServerEntry `json:"servers"`
}

const CurrentDistributionFormat = "lodestone:1.1.0"

var DistributionFormatConstraintAccepted = mustParseConstraint("~1")
var DistributionFormatConstraintSuggestUpgrade = mustParseConstraint("~1.1")

// ParseFormatVersion extracts the semantic version from a distribution
// format tag such as "lodestone:1.1.0".
func ParseFormatVersion(format string) (*semver.Version, error) {
	name, ver, ok := strings.Cut(format, ":")
	if !ok || name != "lodestone" {
		return nil, fmt.Errorf("unknown distribution format %q", format)
	}
	v, err := semver.StrictNewVersion(ver)
	if err != nil {
		return nil, fmt.Errorf("invalid distribution format version %q: %w", ver, err)
	}
	return v, nil
}

func mustParseConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ServerEntry declares one joinable server: its address, the game version it
// runs, and the modules every client must carry.
type ServerEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Icon             string   `json:"icon,omitempty"`
	Address          string   `json:"address"`
	MinecraftVersion string   `json:"minecraftVersion"`
	MainServer       bool     `json:"mainServer,omitempty"`
	AutoConnect      bool     `json:"autoConnect,omitempty"`
	Modules          []Module `json:"modules"`
}

// GetServer finds a server by id.
func (d *Distribution) GetServer(id string) (*ServerEntry, bool) {
	for i := range d.Servers {
		if d.Servers[i].ID == id {
			return &d.Servers[i], true
		}
	}
	return nil, false
}

// GetMainServer returns the server flagged as main, falling back to the
// first declared one.
func (d *Distribution) GetMainServer() (*ServerEntry, error) {
	for i := range d.Servers {
		if d.Servers[i].MainServer {
			return &d.Servers[i], nil
		}
	}
	if len(d.Servers) > 0 {
		return &d.Servers[0], nil
	}
	return nil, errors.New("distribution declares no servers")
}

// ModuleType tags the role a module plays in a launch.
type ModuleType string

const (
	// ModuleMod is a loader-run code mod.
	ModuleMod ModuleType = "mod"
	// ModuleLibrary is a plain classpath library.
	ModuleLibrary ModuleType = "library"
	// ModuleForge and ModuleFabric select the loader for the server.
	ModuleForge  ModuleType = "forge"
	ModuleFabric ModuleType = "fabric"
	// ModuleForgeHosted is a loader whose jar the server hosts itself
	// rather than referencing the loader's own repository.
	ModuleForgeHosted ModuleType = "forge-hosted"
	// ModuleLiteLoader is the legacy secondary loader that rides on top of
	// the primary one and contributes its own jar to the classpath.
	ModuleLiteLoader ModuleType = "liteloader"
)

// Module is one node of a server's module tree. A module exclusively owns
// its sub-modules: they are evaluated, downloaded, and enabled only through
// their parent.
type Module struct {
	ID         string         `json:"id"` // maven-style group:artifact:version[@ext]
	Name       string         `json:"name"`
	Type       ModuleType     `json:"type"`
	Artifact   ModuleArtifact `json:"artifact"`
	Required   *Required      `json:"required,omitempty"`
	Classpath  *bool          `json:"classpath,omitempty"`
	SubModules []Module       `json:"subModules,omitempty"`
}

// ModuleArtifact describes the module's file on disk and how to obtain and
// verify it.
type ModuleArtifact struct {
	Path       string `json:"path,omitempty"`
	URL        string `json:"url,omitempty"`
	Size       int64  `json:"size,omitempty"`
	HashFormat string `json:"hash-format,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// Required declares whether a module is mandatory and, when it is optional,
// whether it starts out enabled.
type Required struct {
	Value *bool `json:"value,omitempty"`
	Def   *bool `json:"def,omitempty"`
}

// IsRequired reports whether the module must be present. An absent
// requirement block means required.
func (r *Required) IsRequired() bool {
	if r == nil || r.Value == nil {
		return true
	}
	return *r.Value
}

// DefaultEnabled reports whether an optional module is enabled before the
// user has stored any choice for it.
func (r *Required) DefaultEnabled() bool {
	if r == nil || r.Def == nil {
		return true
	}
	return *r.Def
}

// MavenID parses the module identifier.
func (m *Module) MavenID() (MavenID, error) {
	return ParseMavenID(m.ID)
}

// Identity returns the version-independent identity used for classpath
// overrides.
func (m *Module) Identity() string {
	return LibraryIdentity(m.ID)
}

// OnClasspath reports whether the module's jar participates in the
// classpath. Unset means true; file-only modules (configs, resource packs)
// set it to false.
func (m *Module) OnClasspath() bool {
	return m.Classpath == nil || *m.Classpath
}

// ResolvePath returns the module artifact's location under baseDir. An
// explicit artifact path wins; otherwise the path derives from the maven
// identifier.
func (m *Module) ResolvePath(baseDir string) (string, error) {
	if m.Artifact.Path != "" {
		p := filepath.FromSlash(m.Artifact.Path)
		if filepath.IsAbs(p) {
			return p, nil
		}
		return filepath.Join(baseDir, p), nil
	}
	id, err := m.MavenID()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, filepath.FromSlash(id.Path())), nil
}

// HasModuleOfType reports whether any module in the list has the given
// type. Top level only; loaders never nest.
func HasModuleOfType(modules []Module, typ ModuleType) bool {
	for i := range modules {
		if modules[i].Type == typ {
			return true
		}
	}
	return false
}

// IsLoaderType reports whether a module type selects a mod loader.
func IsLoaderType(typ ModuleType) bool {
	switch typ {
	case ModuleForge, ModuleFabric, ModuleForgeHosted, ModuleLiteLoader:
		return true
	}
	return false
}

// TrimJarPath truncates anything trailing an embedded .jar extension. Paths
// assembled from manifest fragments occasionally carry junk after the
// extension and would otherwise poison the classpath.
func TrimJarPath(p string) string {
	if idx := strings.Index(p, ".jar"); idx != -1 {
		return p[:idx+len(".jar")]
	}
	return p
}
