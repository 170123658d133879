package core

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/lodestone-launcher/lodestone/core/murmur2"
)

// GetHashImpl gets an implementation of hash.Hash for the given hash type string
func GetHashImpl(hashType string) (HashStringer, error) {
	switch strings.ToLower(hashType) {
	case "sha1":
		return &hexStringer{sha1.New()}, nil
	case "sha256":
		return &hexStringer{sha256.New()}, nil
	case "sha512":
		return &hexStringer{sha512.New()}, nil
	case "md5":
		return &hexStringer{md5.New()}, nil
	case "murmur2": // CurseForge fingerprint variant
		return &number32As64Stringer{murmur2.New()}, nil
	case "length-bytes":
		return &number64Stringer{&LengthHasher{}}, nil
	}
	return nil, fmt.Errorf("hash implementation %s not found", hashType)
}

// PreferredHashList orders hash formats from least to most preferred; when
// an artifact publishes several, validation picks the strongest.
var PreferredHashList = []string{
	"murmur2",
	"md5",
	"sha1",
	"sha256",
	"sha512",
}

// MatchesHash compares a computed digest with a stored one. Hex digests
// compare case-insensitively; numeric forms compare exactly.
func MatchesHash(stringer HashStringer, want string) bool {
	return strings.EqualFold(stringer.String(), strings.TrimSpace(want))
}

type HashStringer interface {
	hash.Hash
	String() string
}

type hexStringer struct {
	hash.Hash
}

func (h *hexStringer) String() string {
	return hex.EncodeToString(h.Sum(nil))
}

type number32As64Stringer struct {
	hash.Hash
}

func (h *number32As64Stringer) String() string {
	return strconv.FormatUint(uint64(binary.BigEndian.Uint32(h.Sum(nil))), 10)
}

type number64Stringer struct {
	hash.Hash
}

func (h *number64Stringer) String() string {
	return strconv.FormatUint(binary.BigEndian.Uint64(h.Sum(nil)), 10)
}

// LengthHasher counts bytes; download sessions use it to cross-check the
// advertised artifact size.
type LengthHasher struct {
	length uint64
}

func (h *LengthHasher) Write(p []byte) (n int, err error) {
	h.length += uint64(len(p))
	return len(p), nil
}

func (h *LengthHasher) Sum(b []byte) []byte {
	ext := append(b, make([]byte, 8)...)
	binary.BigEndian.PutUint64(ext[len(b):], h.length)
	return ext
}

func (h *LengthHasher) Size() int {
	return 8
}

func (h *LengthHasher) BlockSize() int {
	return 1
}

func (h *LengthHasher) Reset() {
	h.length = 0
}
