package core

import (
	"fmt"
	"path/filepath"
)

// ClasspathMap is the insertion-ordered identity → path map behind classpath
// merging. Overwriting an identity replaces the stored path but keeps the
// entry's original position, so a server-declared library displaces the
// manifest-declared one without reshuffling load order.
type ClasspathMap struct {
	order []string
	paths map[string]string
}

func NewClasspathMap() *ClasspathMap {
	return &ClasspathMap{paths: make(map[string]string)}
}

// Put inserts or overwrites an entry. Paths are canonicalized with
// TrimJarPath on the way in.
func (m *ClasspathMap) Put(identity, path string) {
	if _, ok := m.paths[identity]; !ok {
		m.order = append(m.order, identity)
	}
	m.paths[identity] = TrimJarPath(path)
}

// Merge lays other's entries over m's, in other's insertion order.
func (m *ClasspathMap) Merge(other *ClasspathMap) {
	for _, id := range other.order {
		m.Put(id, other.paths[id])
	}
}

func (m *ClasspathMap) Get(identity string) (string, bool) {
	p, ok := m.paths[identity]
	return p, ok
}

func (m *ClasspathMap) Len() int {
	return len(m.order)
}

// Paths returns the resolved paths in insertion order.
func (m *ClasspathMap) Paths() []string {
	out := make([]string, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.paths[id])
	}
	return out
}

// ClasspathInput carries everything the resolver consumes for one launch.
// Modules is the enabled launch set in declaration order (see
// ResolveModules); Libraries is the manifest's declared list.
type ClasspathInput struct {
	VersionJarPath   string
	MinecraftVersion string
	LoaderType       ModuleType
	LiteLoaderPath   string
	Libraries        []Library
	LibraryDir       string
	Modules          []Module
	Rules            RuleContext
}

// Forge takes over client-jar loading from this game version on.
const loaderOwnsVersionJar = "1.17"

// BuildClasspath resolves the full ordered classpath: the version jar when
// the loader still wants it, the legacy secondary loader's jar, then the
// merged library map with module-declared entries overriding
// manifest-declared ones by identity.
func BuildClasspath(in ClasspathInput) ([]string, error) {
	var out []string

	if in.VersionJarPath != "" && IncludeVersionJar(in.LoaderType, in.MinecraftVersion) {
		out = append(out, TrimJarPath(in.VersionJarPath))
	}
	if in.LiteLoaderPath != "" {
		out = append(out, TrimJarPath(in.LiteLoaderPath))
	}

	merged := ManifestClasspath(in.Libraries, in.Rules, in.LibraryDir)
	modLibs, err := ModuleClasspath(in.Modules, in.LibraryDir)
	if err != nil {
		return nil, err
	}
	merged.Merge(modLibs)

	return append(out, merged.Paths()...), nil
}

// IncludeVersionJar reports whether the version jar belongs on the
// classpath. Fabric always wants it; Forge loads it itself from 1.17 on.
func IncludeVersionJar(loader ModuleType, mcVersion string) bool {
	if loader == ModuleFabric {
		return true
	}
	return !MinecraftAtLeast(loaderOwnsVersionJar, mcVersion)
}

// ManifestClasspath resolves the rule-allowed, non-native manifest libraries
// into an identity-keyed map. Natives jars are the extractor's business and
// never appear here.
func ManifestClasspath(libraries []Library, ctx RuleContext, libraryDir string) *ClasspathMap {
	m := NewClasspathMap()
	for _, lib := range libraries {
		if !ctx.Allows(lib.Rules) {
			continue
		}
		if lib.IsNatives() {
			continue
		}
		p := libraryArtifactPath(lib, libraryDir)
		if p == "" {
			continue
		}
		m.Put(lib.Identity(), p)
	}
	return m
}

func libraryArtifactPath(lib Library, libraryDir string) string {
	if lib.Download != nil && lib.Download.Artifact != nil && lib.Download.Artifact.Path != "" {
		return filepath.Join(libraryDir, filepath.FromSlash(lib.Download.Artifact.Path))
	}
	id, err := ParseMavenID(lib.Name)
	if err != nil {
		return ""
	}
	return filepath.Join(libraryDir, filepath.FromSlash(id.Path()))
}

// ModuleClasspath resolves the classpath contribution of the enabled module
// set: primary loader jars and libraries whose classpath flag is set. Mods
// load through the loader's own discovery, and the legacy secondary loader
// has its own slot ahead of the map, so neither contributes here.
func ModuleClasspath(modules []Module, baseDir string) (*ClasspathMap, error) {
	m := NewClasspathMap()
	for i := range modules {
		mod := &modules[i]
		if !moduleOnClasspath(mod) {
			continue
		}
		p, err := mod.ResolvePath(baseDir)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.ID, err)
		}
		m.Put(mod.Identity(), p)
	}
	return m, nil
}

func moduleOnClasspath(m *Module) bool {
	switch m.Type {
	case ModuleLibrary, ModuleForge, ModuleForgeHosted, ModuleFabric:
		return m.OnClasspath()
	}
	return false
}
