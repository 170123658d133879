// Package murmur2 implements the CurseForge flavor of MurmurHash2: the
// input is stripped of whitespace bytes before hashing with seed 1. File
// fingerprints in the CurseForge API use this variant.
package murmur2

import (
	"encoding/binary"
	"hash"

	murmur "github.com/aviddiviner/go-murmur"
)

const cfSeed = 1

// Murmur2CF buffers the whole (whitespace-stripped) input, since the
// underlying hash has no streaming form.
type Murmur2CF struct {
	buf []byte
}

func New() hash.Hash {
	return &Murmur2CF{}
}

func (h *Murmur2CF) Write(p []byte) (n int, err error) {
	for _, b := range p {
		switch b {
		case '\t', '\n', '\r', ' ':
		default:
			h.buf = append(h.buf, b)
		}
	}
	return len(p), nil
}

func (h *Murmur2CF) Sum(b []byte) []byte {
	ext := append(b, make([]byte, 4)...)
	binary.BigEndian.PutUint32(ext[len(b):], murmur.MurmurHash2(h.buf, cfSeed))
	return ext
}

// Sum32 returns the fingerprint directly, skipping the byte encoding.
func (h *Murmur2CF) Sum32() uint32 {
	return murmur.MurmurHash2(h.buf, cfSeed)
}

func (h *Murmur2CF) Size() int {
	return 4
}

func (h *Murmur2CF) BlockSize() int {
	return 4
}

func (h *Murmur2CF) Reset() {
	h.buf = nil
}
