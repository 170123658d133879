package launcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutRoundTrip(t *testing.T) {
	layout := NewLayout(filepath.Join("data", "instance"))

	assert.Equal(t, filepath.Join("data", "instance"), layout.InstanceDir)
	assert.Equal(t, filepath.Join("data", "instance", "settings.toml"), layout.SettingsPath())
}

func TestOfflineAccountSession(t *testing.T) {
	account := NewOfflineAccount("Steve")

	session := account.Session()
	assert.Equal(t, "Steve", session.DisplayName)
	assert.Equal(t, account.UUID, session.UUID)
	assert.Equal(t, "legacy", session.UserType())
}

func TestSpecAssembly(t *testing.T) {
	store, err := LoadAccounts(filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, err)

	account := NewOfflineAccount("Alex")
	store.Add(account)
	selected, err := store.SelectedAccount()
	require.NoError(t, err)

	heap, err := ParseMemorySize("4G")
	require.NoError(t, err)

	session := selected.Session()
	spec := &Spec{
		Layout:  NewLayout(t.TempDir()),
		Server:  &ServerEntry{ID: "main", Name: "Main", MinecraftVersion: "1.20.1"},
		Session: &session,
		Options: Options{MaxHeap: heap},
	}

	assert.Equal(t, "main", spec.Server.ID)
	assert.Equal(t, "4G", spec.Options.MaxHeap.String())
}
