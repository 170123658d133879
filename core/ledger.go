package core

import (
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Ledger records every artifact the launcher has downloaded into an instance
// along with the hash it validated. Verify reads it back to spot tampered or
// corrupted files without refetching anything.
type Ledger struct {
	DefaultHashFormat string
	Files             map[string]LedgerEntry
	instanceRoot      string

	hashFormat string
	hash       string
}

// LedgerEntry is one validated artifact keyed by its slash path relative to
// the instance root.
type LedgerEntry struct {
	Hash string `toml:"hash"`
	// HashFormat is empty when it matches the ledger default
	HashFormat string `toml:"hash-format,omitempty"`
	Size       int64  `toml:"size,omitempty"`
}

func NewLedger(instanceRoot string) Ledger {
	return Ledger{
		DefaultHashFormat: "sha1",
		Files:             make(map[string]LedgerEntry),
		instanceRoot:      instanceRoot,
	}
}

func NewLedgerFromTomlRepr(rep LedgerTomlRepresentation) Ledger {
	files := rep.Files
	if files == nil {
		files = make(map[string]LedgerEntry)
	}
	format := rep.DefaultHashFormat
	if format == "" {
		format = "sha1"
	}
	return Ledger{
		DefaultHashFormat: format,
		Files:             files,
		instanceRoot:      filepath.Dir(rep.GetFilePath()),
	}
}

func (l *Ledger) GetFilePath() string {
	return filepath.Join(l.instanceRoot, "ledger.toml")
}

func (l *Ledger) GetInstanceRoot() string {
	return l.instanceRoot
}

// Record stores or replaces the validated hash for a file on disk.
func (l *Ledger) Record(path, format, hash string, size int64) error {
	relPath, err := l.RelLedgerPath(path)
	if err != nil {
		return err
	}
	if format == l.DefaultHashFormat {
		format = ""
	}
	l.Files[relPath] = LedgerEntry{Hash: hash, HashFormat: format, Size: size}
	return nil
}

// RemoveFile drops a file from the ledger, given a file path on disk
func (l *Ledger) RemoveFile(path string) error {
	relPath, err := l.RelLedgerPath(path)
	if err != nil {
		return err
	}
	delete(l.Files, relPath)
	return nil
}

// Get looks an entry up by its on-disk path.
func (l *Ledger) Get(path string) (LedgerEntry, bool) {
	relPath, err := l.RelLedgerPath(path)
	if err != nil {
		return LedgerEntry{}, false
	}
	entry, ok := l.Files[relPath]
	return entry, ok
}

// EntryHashFormat resolves the format an entry was hashed with.
func (l *Ledger) EntryHashFormat(entry LedgerEntry) string {
	if entry.HashFormat != "" {
		return entry.HashFormat
	}
	return l.DefaultHashFormat
}

// ResolveLedgerPath turns a path from the ledger into a file path on disk
func (l *Ledger) ResolveLedgerPath(p string) string {
	return filepath.Join(l.instanceRoot, filepath.FromSlash(p))
}

// RelLedgerPath turns a file path on disk into a path from the ledger
func (l *Ledger) RelLedgerPath(p string) (string, error) {
	rel, err := filepath.Rel(l.instanceRoot, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// SortedPaths lists every recorded path in stable order for reporting.
func (l *Ledger) SortedPaths() []string {
	paths := make([]string, 0, len(l.Files))
	for p := range l.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (l *Ledger) ToWritable() LedgerTomlRepresentation {
	return LedgerTomlRepresentation{
		DefaultHashFormat: l.DefaultHashFormat,
		Files:             l.Files,
		filePath:          l.GetFilePath(),
		ledger:            l,
	}
}

// LedgerTomlRepresentation is the TOML representation of Ledger
type LedgerTomlRepresentation struct {
	DefaultHashFormat string                 `toml:"hash-format"`
	Files             map[string]LedgerEntry `toml:"files"`

	filePath string
	ledger   *Ledger
}

func (lt *LedgerTomlRepresentation) GetFilePath() string {
	return lt.filePath
}

func (lt *LedgerTomlRepresentation) SetFilePath(path string) {
	lt.filePath = path
}

func (lt *LedgerTomlRepresentation) UpdateHash(format, hash string) {
	if lt.ledger != nil {
		lt.ledger.hashFormat = format
		lt.ledger.hash = hash
	}
}

func (lt *LedgerTomlRepresentation) Marshal() (MarshalResult, error) {
	result := MarshalResult{
		HashFormat: "sha256",
	}

	var err error

	result.Value, err = toml.Marshal(lt)
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
	lt.UpdateHash(result.HashFormat, result.Hash)

	return result, nil
}
