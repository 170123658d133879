package core

import "strings"

// AccountKind is the identity provider an account authenticates against.
type AccountKind string

const (
	AccountMicrosoft AccountKind = "microsoft"
	AccountMojang    AccountKind = "mojang"
	AccountOffline   AccountKind = "offline"
)

// Session is the resolved identity a launch runs under. DisplayName and
// UUID are always present; credential fields are populated only by the
// kinds that have them, and only launching needs them.
type Session struct {
	Kind        AccountKind `json:"kind"`
	DisplayName string      `json:"displayName"`
	UUID        string      `json:"uuid"`
	AccessToken string      `json:"accessToken,omitempty"`

	// Xbox-side identity, Microsoft accounts only.
	Xuid     string `json:"xuid,omitempty"`
	ClientID string `json:"clientId,omitempty"`
}

// UserType returns the tag the game's argument templates expect for the
// account's provider.
func (s *Session) UserType() string {
	switch s.Kind {
	case AccountMicrosoft:
		return "msa"
	case AccountMojang:
		return "mojang"
	default:
		return "legacy"
	}
}

// DashedUUID returns the id in the canonical 8-4-4-4-12 form the game
// expects; stored ids are usually the compact 32-hex-digit form.
func (s *Session) DashedUUID() string {
	return DashUUID(s.UUID)
}

// DashUUID inserts the canonical dashes into a compact uuid. Anything that
// is not 32 hex digits after dash removal passes through untouched.
func DashUUID(id string) string {
	clean := strings.ReplaceAll(id, "-", "")
	if len(clean) != 32 {
		return id
	}
	return clean[0:8] + "-" + clean[8:12] + "-" + clean[12:16] + "-" + clean[16:20] + "-" + clean[20:32]
}
