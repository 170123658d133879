package fileio

import (
	"github.com/lodestone-launcher/lodestone/core"
)

// Writable is any launcher-owned metadata file that can be marshalled and
// tracked by hash: local mod metadata, the artifact ledger, the accounts
// store.
type Writable interface {
	GetFilePath() string
	Marshal() (core.MarshalResult, error)
	UpdateHash(format, hash string)
}

type MetaWriter struct {
}

func NewMetaWriter() MetaWriter {
	return MetaWriter{}
}

// Write marshals the file to its own path, creating parent directories as
// needed, and returns the hash info of the written content.
func (m MetaWriter) Write(writable Writable) (string, string, error) {
	metaFile := writable.GetFilePath()

	f, err := CreateFile(metaFile)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	result, err := writable.Marshal()
	if err != nil {
		return "", "", err
	}

	if _, err := f.Write(result.Value); err != nil {
		return "", "", err
	}

	return result.HashFormat, result.Hash, nil
}
