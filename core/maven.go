package core

import (
	"fmt"
	"path"
	"strings"
)

// MavenID is a maven-style artifact identifier of the form
// group:artifact:version, optionally followed by :classifier and @extension.
type MavenID struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

// ParseMavenID parses an identifier string. The extension defaults to jar
// when no @ext suffix is present.
func ParseMavenID(id string) (MavenID, error) {
	ext := "jar"
	if at := strings.LastIndex(id, "@"); at != -1 {
		ext = id[at+1:]
		id = id[:at]
	}

	parts := strings.Split(id, ":")
	if len(parts) < 3 {
		return MavenID{}, fmt.Errorf("invalid maven identifier %q", id)
	}

	m := MavenID{
		Group:     parts[0],
		Artifact:  parts[1],
		Version:   parts[2],
		Extension: ext,
	}
	if len(parts) > 3 {
		m.Classifier = parts[3]
	}
	return m, nil
}

// Identity returns the version-independent group:artifact pair. Library maps
// are de-duplicated on this value, so a server-declared guava overrides a
// manifest-declared guava regardless of version.
func (m MavenID) Identity() string {
	return m.Group + ":" + m.Artifact
}

// Path returns the repository-relative artifact path in forward-slash form.
func (m MavenID) Path() string {
	name := m.Artifact + "-" + m.Version
	if m.Classifier != "" {
		name += "-" + m.Classifier
	}
	return path.Join(
		strings.ReplaceAll(m.Group, ".", "/"),
		m.Artifact,
		m.Version,
		name+"."+m.Extension,
	)
}

func (m MavenID) String() string {
	s := m.Group + ":" + m.Artifact + ":" + m.Version
	if m.Classifier != "" {
		s += ":" + m.Classifier
	}
	if m.Extension != "jar" {
		s += "@" + m.Extension
	}
	return s
}

// LibraryIdentity derives the override identity from a raw identifier
// string without requiring it to parse fully; malformed names fall back to
// the whole string so they can never collide with a well-formed one.
func LibraryIdentity(id string) string {
	if at := strings.LastIndex(id, "@"); at != -1 {
		id = id[:at]
	}
	parts := strings.Split(id, ":")
	if len(parts) < 2 {
		return id
	}
	return parts[0] + ":" + parts[1]
}

// MojangLibrariesBase is the repository the vanilla manifests assume when a
// library carries no download descriptor and no repository of its own.
const MojangLibrariesBase = "https://libraries.minecraft.net/"

// loaderRepoBases are the well-known repositories for loader artifacts a
// distribution declares by maven identifier alone. The forge-hosted type is
// absent on purpose: it exists precisely because the server hosts the jar
// itself, so its artifact always carries a URL.
var loaderRepoBases = map[ModuleType]string{
	ModuleForge:      "https://maven.minecraftforge.net/",
	ModuleFabric:     "https://maven.fabricmc.net/",
	ModuleLiteLoader: "https://repo.mumfrey.com/content/repositories/snapshots/",
}

// LoaderRepoBase returns the repository to derive a loader module's download
// URL from when its artifact declares none.
func LoaderRepoBase(typ ModuleType) (string, bool) {
	base, ok := loaderRepoBases[typ]
	return base, ok
}

// NativesSuffix is the os/arch parsed from a modern native-library
// identifier classifier (natives-<os> or natives-<os>-<arch>).
type NativesSuffix struct {
	OS   string
	Arch string
}

// ParseNativesSuffix extracts the target platform from a classifier. The
// second return is false when the classifier does not follow the natives
// naming pattern.
func ParseNativesSuffix(classifier string) (NativesSuffix, bool) {
	rest, ok := strings.CutPrefix(classifier, "natives-")
	if !ok || rest == "" {
		return NativesSuffix{}, false
	}
	osName, arch, _ := strings.Cut(rest, "-")
	return NativesSuffix{OS: osName, Arch: arch}, true
}
