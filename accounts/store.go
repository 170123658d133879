// Package accounts persists the identities a player can launch with. Token
// acquisition is someone else's job; this store only keeps what an external
// authenticator yielded, plus offline identities it mints itself.
package accounts

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"

	"github.com/lodestone-launcher/lodestone/core"
)

var ErrNoneSelected = errors.New("no account selected; run: lodestone account select")

// Account is one stored identity.
type Account struct {
	Kind        core.AccountKind `toml:"kind"`
	DisplayName string           `toml:"name"`
	UUID        string           `toml:"uuid"`
	AccessToken string           `toml:"access-token,omitempty"`
	Xuid        string           `toml:"xuid,omitempty"`
	ClientID    string           `toml:"client-id,omitempty"`
}

// Session converts the stored account into the launch identity.
func (a *Account) Session() core.Session {
	return core.Session{
		Kind:        a.Kind,
		DisplayName: a.DisplayName,
		UUID:        a.UUID,
		AccessToken: a.AccessToken,
		Xuid:        a.Xuid,
		ClientID:    a.ClientID,
	}
}

// Store is the accounts.toml file: every known account plus the uuid of the
// one launches use.
type Store struct {
	Selected string    `toml:"selected,omitempty"`
	Accounts []Account `toml:"accounts,omitempty"`

	filePath string
	hash     string
}

// Load reads the store from disk; a missing file is an empty store.
func Load(path string) (*Store, error) {
	store := &Store{filePath: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(raw, store); err != nil {
		return nil, fmt.Errorf("invalid accounts file %s: %w", path, err)
	}
	store.filePath = path
	return store, nil
}

func (s *Store) GetFilePath() string {
	return s.filePath
}

func (s *Store) SetFilePath(path string) {
	s.filePath = path
}

func (s *Store) UpdateHash(format, hash string) {
	s.hash = hash
}

func (s *Store) Marshal() (core.MarshalResult, error) {
	result := core.MarshalResult{HashFormat: "sha256"}

	var err error
	result.Value, err = toml.Marshal(s)
	if err != nil {
		return result, err
	}

	stringer, err := core.GetHashImpl(result.HashFormat)
	if err != nil {
		return result, err
	}
	if _, err := stringer.Write(result.Value); err != nil {
		return result, err
	}
	result.Hash = stringer.String()
	s.UpdateHash(result.HashFormat, result.Hash)

	return result, nil
}

// Add stores an account, replacing any existing one with the same uuid. The
// first account added becomes the selected one.
func (s *Store) Add(account Account) {
	for i := range s.Accounts {
		if s.Accounts[i].UUID == account.UUID {
			s.Accounts[i] = account
			return
		}
	}
	s.Accounts = append(s.Accounts, account)
	if s.Selected == "" {
		s.Selected = account.UUID
	}
}

// Remove drops an account by uuid or display name. Removing the selected
// account clears the selection.
func (s *Store) Remove(ref string) error {
	for i := range s.Accounts {
		if s.accountMatches(&s.Accounts[i], ref) {
			if s.Selected == s.Accounts[i].UUID {
				s.Selected = ""
			}
			s.Accounts = append(s.Accounts[:i], s.Accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no account matching %q", ref)
}

// Get finds an account by uuid or display name.
func (s *Store) Get(ref string) (*Account, bool) {
	for i := range s.Accounts {
		if s.accountMatches(&s.Accounts[i], ref) {
			return &s.Accounts[i], true
		}
	}
	return nil, false
}

func (s *Store) accountMatches(account *Account, ref string) bool {
	return strings.EqualFold(account.UUID, ref) ||
		strings.EqualFold(core.DashUUID(account.UUID), ref) ||
		strings.EqualFold(account.DisplayName, ref)
}

// Select marks an account as the one launches use.
func (s *Store) Select(ref string) error {
	account, ok := s.Get(ref)
	if !ok {
		return fmt.Errorf("no account matching %q", ref)
	}
	s.Selected = account.UUID
	return nil
}

// SelectedAccount resolves the current selection.
func (s *Store) SelectedAccount() (*Account, error) {
	if s.Selected == "" {
		return nil, ErrNoneSelected
	}
	account, ok := s.Get(s.Selected)
	if !ok {
		return nil, fmt.Errorf("selected account %s is gone from the store", s.Selected)
	}
	return account, nil
}

// Search fuzzy-matches stored accounts by display name.
func (s *Store) Search(query string) []*Account {
	names := make([]string, len(s.Accounts))
	for i := range s.Accounts {
		names[i] = s.Accounts[i].DisplayName
	}

	matches := fuzzy.Find(query, names)
	found := make([]*Account, len(matches))
	for i, match := range matches {
		found[i] = &s.Accounts[match.Index]
	}
	return found
}

// NewOfflineAccount mints an offline identity with the same uuid the vanilla
// server assigns in offline mode, so skins and whitelists keep working
// against local test servers.
func NewOfflineAccount(name string) Account {
	return Account{
		Kind:        core.AccountOffline,
		DisplayName: name,
		UUID:        OfflineUUID(name),
	}
}

// OfflineUUID is the version-3 style uuid of "OfflinePlayer:<name>",
// matching the game's own offline-mode derivation.
func OfflineUUID(name string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // IETF variant
	return hex.EncodeToString(sum[:])
}

// Save writes the store next to the instance, creating directories as
// needed.
func (s *Store) Save() error {
	result, err := s.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, result.Value, 0600)
}
