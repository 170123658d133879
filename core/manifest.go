package core

import (
	"encoding/json"
	"fmt"
)

// VersionManifest is the versioned descriptor for one game version: the
// libraries it needs, the argument templates for the JVM and the game, and
// where to fetch the client jar and asset index.
type VersionManifest struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // release, snapshot, ...
	MainClass string `json:"mainClass"`

	// Arguments is the modern (1.13+) template; MinecraftArguments is the
	// legacy single-string game template. A manifest carries one or the
	// other.
	Arguments          Arguments `json:"arguments"`
	MinecraftArguments string    `json:"minecraftArguments,omitempty"`

	Assets     string        `json:"assets"`
	AssetIndex AssetIndexRef `json:"assetIndex"`

	Libraries []Library           `json:"libraries"`
	Downloads map[string]Artifact `json:"downloads,omitempty"` // keyed client/server

	InheritsFrom string `json:"inheritsFrom,omitempty"`
}

// AssetIndexRef points at the asset index file for a version.
type AssetIndexRef struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url"`
}

// Artifact describes a downloadable file: a jar, a natives archive, the
// client itself.
type Artifact struct {
	// Path of the file relative to the libraries directory. Not set for
	// the client jar.
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url"`
}

// Library is one entry of a manifest's library list. Legacy entries carry a
// per-OS natives classifier map plus per-classifier downloads; modern
// entries encode the platform in the identifier itself
// (group:artifact:version:natives-<os>[-<arch>]).
type Library struct {
	Name     string            `json:"name"`
	Rules    []Rule            `json:"rules,omitempty"`
	Natives  map[string]string `json:"natives,omitempty"`
	Download *LibraryDownloads `json:"downloads,omitempty"`

	// URL is a maven repository base for loader-provided libraries that
	// ship no download descriptor.
	URL string `json:"url,omitempty"`
}

// LibraryDownloads holds the main artifact and any classifier variants.
type LibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

// Identity returns the version-independent library identity.
func (l Library) Identity() string {
	return LibraryIdentity(l.Name)
}

// ClassifierArtifact returns the download artifact for a classifier, or nil.
func (l Library) ClassifierArtifact(classifier string) *Artifact {
	if l.Download == nil {
		return nil
	}
	return l.Download.Classifiers[classifier]
}

// NativesSuffix parses the modern natives classifier out of the identifier,
// when there is one.
func (l Library) NativesSuffix() (NativesSuffix, bool) {
	id, err := ParseMavenID(l.Name)
	if err != nil {
		return NativesSuffix{}, false
	}
	return ParseNativesSuffix(id.Classifier)
}

// IsNatives reports whether the library carries platform natives in either
// format. Natives are extracted, never placed on the classpath.
func (l Library) IsNatives() bool {
	if len(l.Natives) > 0 {
		return true
	}
	_, ok := l.NativesSuffix()
	return ok
}

// Arguments holds the modern argument templates.
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Argument is a single template entry: a literal string (possibly containing
// ${...} placeholders) or a conditional value guarded by rules.
type Argument struct {
	Raw  string
	Cond *ConditionalValue
}

// ConditionalValue is a rule-guarded argument value. The value is included
// only when every rule in the list allows it.
type ConditionalValue struct {
	Rules []Rule     `json:"rules"`
	Value StringList `json:"value"`
}

// StringList unmarshals from either a single JSON string or an array of
// strings; manifests use both forms interchangeably.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("value is neither string nor string list: %w", err)
	}
	*s = many
	return nil
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*a = Argument{Raw: raw}
		return nil
	}
	var cond ConditionalValue
	if err := json.Unmarshal(data, &cond); err != nil {
		return fmt.Errorf("argument entry is neither string nor rule object: %w", err)
	}
	*a = Argument{Cond: &cond}
	return nil
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Cond != nil {
		return json.Marshal(a.Cond)
	}
	return json.Marshal(a.Raw)
}

// Rule gates an argument or library on the current platform or on a feature
// flag. Action is "allow" or "disallow".
type Rule struct {
	Action   string          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OSRule matches the host operating system, optionally constrained by a
// version regex and an architecture name.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)
