package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// MetaExtension is the suffix for local mod metadata files kept next to the
// jars they describe.
const MetaExtension = ".mod.toml"

type ModUpdate map[string]map[string]interface{}

// LocalMod is a player-added mod tracked by the launcher, as opposed to the
// modules a server distribution pushes. Each one is described by a TOML
// metadata file in the server's mods directory.
type LocalMod struct {
	metaFile string // path of the metadata file, used as an ID

	Name     string      `toml:"name"`
	FileName string      `toml:"filename"`
	Side     ModSide     `toml:"side,omitempty"`
	Pin      bool        `toml:"pin,omitempty"`
	Download ModDownload `toml:"download"`
	// Update holds arbitrary per-source values on string keys so each update
	// source can stash whatever it needs to check for new versions
	Update ModUpdate `toml:"update,omitempty"`

	Option *ModOption `toml:"option,omitempty"`

	hash string
}

const ModeURL string = "url"

// ModDownload specifies how to fetch the mod file
type ModDownload struct {
	URL        string `toml:"url,omitempty"`
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
	// Mode defaults to ModeURL (i.e. use URL when omitted or empty)
	Mode string `toml:"mode,omitempty"`
}

// ModOption marks a local mod the player may toggle without removing it
type ModOption struct {
	Optional    bool   `toml:"optional"`
	Description string `toml:"description,omitempty"`
	Default     bool   `toml:"default,omitempty"`
}

type ModSide string

// The four possible values of Side are "server", "client", "both", and ""
// (equivalent to "both")
const (
	ServerSide    ModSide = "server"
	ClientSide    ModSide = "client"
	UniversalSide ModSide = "both"
	EmptySide     ModSide = ""
)

func NewLocalMod(slug, name, fileName string, side ModSide, pin bool, update ModUpdate, download ModDownload, option *ModOption) *LocalMod {
	mod := &LocalMod{
		Name:     name,
		FileName: fileName,
		Side:     side,
		Pin:      pin,
		Update:   update,
		Download: download,
		Option:   option,
	}
	mod.metaFile = slug + MetaExtension
	return mod
}

// Slug derives the mod's identifier from its metadata file name.
func (m *LocalMod) Slug() string {
	base := filepath.Base(m.metaFile)
	return strings.TrimSuffix(base, MetaExtension)
}

// SetMetaPath sets the file path of a metadata file
func (m *LocalMod) SetMetaPath(metaFile string) string {
	m.metaFile = metaFile
	return m.metaFile
}

func (m *LocalMod) GetFilePath() string {
	return m.metaFile
}

// GetDestFilePath returns the path the mod jar downloads to, next to its
// metadata file.
func (m *LocalMod) GetDestFilePath() string {
	return filepath.Join(filepath.Dir(m.metaFile), filepath.FromSlash(m.FileName))
}

// LaunchesOnClient reports whether the mod belongs in a client launch at all.
func (m *LocalMod) LaunchesOnClient() bool {
	return m.Side != ServerSide
}

// Enabled applies the player's stored choice, falling back to the mod's own
// default. Mods without an Option block are always on.
func (m *LocalMod) Enabled(choice *bool) bool {
	if m.Option == nil || !m.Option.Optional {
		return true
	}
	if choice != nil {
		return *choice
	}
	return m.Option.Default
}

// AsModule converts the local mod into a distribution module so module
// listings and the enablement policy treat both kinds of mod uniformly.
func (m *LocalMod) AsModule() Module {
	module := Module{
		ID:   m.Slug(),
		Name: m.Name,
		Type: ModuleMod,
		Artifact: ModuleArtifact{
			Path:       filepath.ToSlash(m.FileName),
			URL:        m.Download.URL,
			HashFormat: m.Download.HashFormat,
			Hash:       m.Download.Hash,
		},
	}
	if m.Option != nil && m.Option.Optional {
		optional := false
		def := m.Option.Default
		module.Required = &Required{Value: &optional, Def: &def}
	}
	return module
}

func (m *LocalMod) GetUpdater() (Updater, error) {
	for k := range m.Update {
		updater, ok := GetUpdater(k)
		if ok {
			return updater, nil
		}
	}
	return nil, fmt.Errorf("no updater found for mod: %s", m.Name)
}

// DecodeNamedSourceData pulls one update source's stored values into a typed
// struct.
func (m *LocalMod) DecodeNamedSourceData(name string, target interface{}) error {
	rawMap, ok := m.Update[name]
	if !ok {
		return fmt.Errorf("no updater named: %s found for mod: %s", name, m.Name)
	}

	return mapstructure.Decode(rawMap, target)
}

func (m *LocalMod) UpdateHash(hashFormat string, hash string) {
	m.hash = hash
}

func (m *LocalMod) GetHashInfo() (string, string) {
	return m.GetHashFormat(), m.hash
}

func (m *LocalMod) GetHashFormat() string {
	return "sha256"
}

func (m *LocalMod) Marshal() (MarshalResult, error) {
	result := MarshalResult{
		HashFormat: m.GetHashFormat(),
	}

	var err error

	result.Value, err = toml.Marshal(m)
	if err != nil {
		return result, err
	}

	stringer, err := GetHashImpl(result.HashFormat)
	if err != nil {
		return result, err
	}

	if _, err := stringer.Write(result.Value); err != nil {
		return result, err
	}

	result.Hash = stringer.String()

	m.UpdateHash(result.HashFormat, result.Hash)

	return result, nil
}
