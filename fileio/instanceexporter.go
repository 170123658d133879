package fileio

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ExportInstance zips an instance's setup (settings, server state, local mod
// metadata) for sharing or diagnostics. Exclusions come from the built-in
// defaults plus the instance's .lodestoneignore; credentials and
// redownloadable artifacts never leave the machine.
func ExportInstance(instanceDir, targetPath string) error {
	ignore, _ := readIgnoreFile(filepath.Join(instanceDir, ".lodestoneignore"))

	expFile, err := CreateFile(targetPath)
	if err != nil {
		return err
	}
	defer expFile.Close()

	zipWriter := zip.NewWriter(expFile)
	defer zipWriter.Close()

	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		absTarget = targetPath
	}

	return filepath.WalkDir(instanceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(instanceDir, path)
		if err != nil {
			return err
		}
		slashRel := filepath.ToSlash(rel)

		if ignore.MatchesPath(slashRel) {
			return nil
		}
		// never zip the archive into itself
		if abs, err := filepath.Abs(path); err == nil && abs == absTarget {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := zipWriter.Create(slashRel)
		if err != nil {
			return err
		}
		_, err = io.Copy(dst, src)
		return err
	})
}
