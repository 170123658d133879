package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	gitignore "github.com/sabhiram/go-gitignore"
)

// nativeExcludeDefaults lists archive entries never worth extracting:
// archive metadata plus VCS and checksum litter.
var nativeExcludeDefaults = []string{
	"META-INF/",
	"META-INF/**",
	"*.git",
	"*.sha1",
	".DS_Store",
}

const archPlaceholder = "${arch}"

// NativesExtractor unpacks the platform-native libraries for one launch
// into the scratch directory. Only a failure to open an archive aborts;
// individual entry failures are logged and skipped so a partially corrupt
// archive degrades the launch instead of killing it.
type NativesExtractor struct {
	Arch       Architecture
	Rules      RuleContext
	LibraryDir string
	TargetDir  string
	Logger     hclog.Logger

	excludes *gitignore.GitIgnore
}

func NewNativesExtractor(arch Architecture, rules RuleContext, libraryDir, targetDir string, logger hclog.Logger) *NativesExtractor {
	return &NativesExtractor{
		Arch:       arch,
		Rules:      rules,
		LibraryDir: libraryDir,
		TargetDir:  targetDir,
		Logger:     logger,
		excludes:   gitignore.CompileIgnoreLines(nativeExcludeDefaults...),
	}
}

func (e *NativesExtractor) logger() hclog.Logger {
	if e.Logger == nil {
		return hclog.NewNullLogger()
	}
	return e.Logger
}

// Extract selects every native-bearing library compatible with the host and
// unpacks its artifact into the target directory. Entry writes across all
// archives run concurrently and are jointly awaited before returning.
func (e *NativesExtractor) Extract(libraries []Library) error {
	if err := os.MkdirAll(e.TargetDir, 0755); err != nil {
		return fmt.Errorf("creating natives directory: %w", err)
	}

	var wg sync.WaitGroup
	var readers []io.Closer
	defer func() {
		wg.Wait()
		for _, r := range readers {
			r.Close()
		}
	}()

	for i := range libraries {
		lib := libraries[i]
		if !e.Rules.Allows(lib.Rules) {
			continue
		}
		archivePath, ok := e.selectArchive(lib)
		if !ok {
			continue
		}
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return fmt.Errorf("opening natives archive %s: %w", archivePath, err)
		}
		readers = append(readers, r)
		e.spawnEntryWrites(r, &wg)
	}
	return nil
}

// selectArchive returns the on-disk archive holding this library's natives
// for the host, or ok=false when the library carries none we can use.
func (e *NativesExtractor) selectArchive(lib Library) (string, bool) {
	p, _, ok := e.HostArchive(lib)
	return p, ok
}

// HostArchive resolves the archive this host would extract from the library:
// its path under the library directory and, when the manifest describes the
// download, the artifact descriptor. The downloader plans its fetches
// through this so selection lives in one place.
func (e *NativesExtractor) HostArchive(lib Library) (string, *Artifact, bool) {
	if len(lib.Natives) > 0 {
		return e.legacyArchive(lib)
	}
	if _, ok := lib.NativesSuffix(); ok {
		return e.modernArchive(lib)
	}
	return "", nil, false
}

// legacyArchive resolves the per-OS classifier template, substituting the
// architecture placeholder with the manifest-form name. When the exact
// classifier has no artifact, one retry with the compact spelling runs
// before giving up on the library.
func (e *NativesExtractor) legacyArchive(lib Library) (string, *Artifact, bool) {
	tmpl, ok := lib.Natives[e.Rules.OS]
	if !ok {
		return "", nil, false
	}

	classifier := strings.ReplaceAll(tmpl, archPlaceholder, NormalizeArch(e.Arch.Arch, e.Arch.Platform, true))
	if e.classifierIncompatible(classifier) {
		e.logger().Warn("skipping natives classifier incompatible with host",
			"library", lib.Name, "classifier", classifier, "arch", e.Arch.Arch)
		return "", nil, false
	}

	if p, ok := e.classifierArchivePath(lib, classifier); ok {
		return p, lib.ClassifierArtifact(classifier), true
	}
	if alt := strings.ReplaceAll(tmpl, archPlaceholder, e.Arch.Arch); alt != classifier && !e.classifierIncompatible(alt) {
		if p, ok := e.classifierArchivePath(lib, alt); ok {
			return p, lib.ClassifierArtifact(alt), true
		}
	}

	e.logger().Warn("no natives artifact for host classifier",
		"library", lib.Name, "classifier", classifier)
	return "", nil, false
}

// classifierIncompatible guards against an x86-family classifier slipping
// onto an ARM host, which happens when a translated process reports x64.
// Only the classifier's final segment can denote an architecture.
func (e *NativesExtractor) classifierIncompatible(classifier string) bool {
	if compactArch(e.Arch.Arch) != ArchARM64 {
		return false
	}
	seg := classifier[strings.LastIndex(classifier, "-")+1:]
	switch strings.ToLower(seg) {
	case "64", "32", "x64", "x86", "x86_64", "amd64", "i386", "386", "i686":
		return true
	}
	return false
}

// classifierArchivePath locates the archive for a resolved classifier,
// preferring the download descriptor and deriving a repository path from the
// identifier otherwise.
func (e *NativesExtractor) classifierArchivePath(lib Library, classifier string) (string, bool) {
	if art := lib.ClassifierArtifact(classifier); art != nil && art.Path != "" {
		return filepath.Join(e.LibraryDir, filepath.FromSlash(art.Path)), true
	}
	if lib.Download != nil {
		// A download descriptor that lacks this classifier means the
		// variant genuinely does not exist.
		return "", false
	}
	id, err := ParseMavenID(lib.Name)
	if err != nil {
		return "", false
	}
	id.Classifier = classifier
	return filepath.Join(e.LibraryDir, filepath.FromSlash(id.Path())), true
}

// modernArchive accepts a natives-<os>[-<arch>] library when both sides of
// the identifier match the host.
func (e *NativesExtractor) modernArchive(lib Library) (string, *Artifact, bool) {
	suffix, _ := lib.NativesSuffix()
	if !SameOS(suffix.OS, e.Rules.OS) {
		return "", nil, false
	}
	if suffix.Arch != "" {
		if !SameArch(suffix.Arch, e.Arch.Arch, e.Arch.Platform) {
			return "", nil, false
		}
		if armIncompatible(suffix.Arch, e.Arch.Arch) {
			return "", nil, false
		}
	}
	p := libraryArtifactPath(lib, e.LibraryDir)
	if p == "" {
		return "", nil, false
	}
	var art *Artifact
	if lib.Download != nil {
		art = lib.Download.Artifact
	}
	return p, art, true
}

// spawnEntryWrites starts one concurrent write per surviving archive entry.
// Directory prefixes are stripped, so every native lands flat in the target
// directory; a name collision between archives is last-writer-wins.
func (e *NativesExtractor) spawnEntryWrites(r *zip.ReadCloser, wg *sync.WaitGroup) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if e.excludes.MatchesPath(f.Name) {
			continue
		}
		dest := filepath.Join(e.TargetDir, path.Base(f.Name))
		wg.Add(1)
		go func(f *zip.File, dest string) {
			defer wg.Done()
			if err := writeZipEntry(f, dest); err != nil {
				e.logger().Warn("failed extracting native entry",
					"entry", f.Name, "error", err)
			}
		}(f, dest)
	}
}

func writeZipEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
