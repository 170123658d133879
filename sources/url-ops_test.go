package sources

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-launcher/lodestone/core"
)

func TestNewURLLocalMod(t *testing.T) {
	payload := []byte("mod jar contents")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/extra-mod-1.2.jar", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	mod, err := NewURLLocalMod("Extra Mod", srv.URL+"/files/extra-mod-1.2.jar")
	require.NoError(t, err)

	sum := sha256.Sum256(payload)

	assert.Equal(t, "extra-mod", mod.Slug())
	assert.Equal(t, "Extra Mod", mod.Name)
	assert.Equal(t, "extra-mod-1.2.jar", mod.FileName)
	assert.Equal(t, core.UniversalSide, mod.Side)
	assert.Equal(t, "sha256", mod.Download.HashFormat)
	assert.Equal(t, hex.EncodeToString(sum[:]), mod.Download.Hash)
	assert.Empty(t, mod.Update)
}

func TestNewURLLocalModDefaultName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	mod, err := NewURLLocalMod("", srv.URL+"/extra-mod-1.2.jar")
	require.NoError(t, err)
	assert.Equal(t, "extra-mod-1.2", mod.Name)
}

func TestNewURLLocalModRejects(t *testing.T) {
	_, err := NewURLLocalMod("x", "ftp://example.com/mod.jar")
	assert.Error(t, err)

	_, err = NewURLLocalMod("x", "https://example.com/")
	assert.Error(t, err)
}
