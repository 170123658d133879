package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashImpl(t *testing.T) {
	tests := []struct {
		name     string
		hashType string
		wantErr  bool
	}{
		{"SHA1", "sha1", false},
		{"SHA1 uppercase", "SHA1", false},
		{"SHA256", "sha256", false},
		{"SHA512", "sha512", false},
		{"MD5", "md5", false},
		{"Murmur2", "murmur2", false},
		{"Length-bytes", "length-bytes", false},
		{"Invalid hash", "invalid-hash", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetHashImpl(tt.hashType)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, got)
			}
		})
	}
}

func TestHexStringerKnownVectors(t *testing.T) {
	tests := []struct {
		hashType string
		want     string
	}{
		{"sha1", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"md5", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha512", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, tt := range tests {
		t.Run(tt.hashType, func(t *testing.T) {
			hasher, err := GetHashImpl(tt.hashType)
			require.NoError(t, err)
			_, err = hasher.Write([]byte("abc"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, hasher.String())
		})
	}
}

func TestLengthBytesStringer(t *testing.T) {
	hasher, err := GetHashImpl("length-bytes")
	require.NoError(t, err)

	_, err = hasher.Write([]byte("test data"))
	require.NoError(t, err)
	assert.Equal(t, "9", hasher.String())

	hasher.Reset()
	assert.Equal(t, "0", hasher.String())
}

func TestMurmur2StringerIsDecimal(t *testing.T) {
	hasher, err := GetHashImpl("murmur2")
	require.NoError(t, err)
	_, err = hasher.Write([]byte("mod file bytes"))
	require.NoError(t, err)

	_, err = strconv.ParseUint(hasher.String(), 10, 64)
	assert.NoError(t, err, "murmur2 digests render as decimal fingerprints")
}

func TestMatchesHash(t *testing.T) {
	hasher, err := GetHashImpl("sha1")
	require.NoError(t, err)
	_, err = hasher.Write([]byte("abc"))
	require.NoError(t, err)

	assert.True(t, MatchesHash(hasher, "a9993e364706816aba3e25717850c26c9cd0d89d"))
	assert.True(t, MatchesHash(hasher, "A9993E364706816ABA3E25717850C26C9CD0D89D"))
	assert.True(t, MatchesHash(hasher, " a9993e364706816aba3e25717850c26c9cd0d89d\n"))
	assert.False(t, MatchesHash(hasher, "deadbeef"))
}

func TestPreferredHashOrdering(t *testing.T) {
	// The last entries are the strongest; download validation picks the
	// highest-indexed format an artifact offers.
	assert.Equal(t, "sha512", PreferredHashList[len(PreferredHashList)-1])
	for _, format := range PreferredHashList {
		_, err := GetHashImpl(format)
		assert.NoError(t, err, format)
	}
}
