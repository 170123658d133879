// Package download fetches and validates the artifacts a launch needs:
// manifest libraries, the client jar, asset indexes and objects, and the
// modules a server distribution declares.
package download

// Kind labels what role an item plays, for reporting.
type Kind string

const (
	KindLibrary    Kind = "library"
	KindNatives    Kind = "natives"
	KindClient     Kind = "client"
	KindAssetIndex Kind = "asset-index"
	KindAsset      Kind = "asset"
	KindModule     Kind = "module"
	KindLocalMod   Kind = "local-mod"
)

// Item is one file to fetch and validate.
type Item struct {
	Name string
	Kind Kind
	URL  string
	Dest string
	Size int64

	// HashFormat names an algorithm from the hash registry; empty means the
	// source declared no hash and content cannot be validated.
	HashFormat string
	Hash       string
}
