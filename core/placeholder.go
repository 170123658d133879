package core

import (
	"os"
	"strconv"
	"strings"
)

// Placeholder is one member of the closed set of template tokens a manifest
// may reference. Anything outside this set is an unresolved token and gets
// filtered out of the final vector.
type Placeholder string

const (
	PlaceholderPlayerName     Placeholder = "auth_player_name"
	PlaceholderVersionName    Placeholder = "version_name"
	PlaceholderGameDirectory  Placeholder = "game_directory"
	PlaceholderAssetsRoot     Placeholder = "assets_root"
	PlaceholderAssetsIndex    Placeholder = "assets_index_name"
	PlaceholderAuthUUID       Placeholder = "auth_uuid"
	PlaceholderAccessToken    Placeholder = "auth_access_token"
	PlaceholderUserType       Placeholder = "user_type"
	PlaceholderClientID       Placeholder = "clientid"
	PlaceholderXuid           Placeholder = "auth_xuid"
	PlaceholderVersionType    Placeholder = "version_type"
	PlaceholderResWidth       Placeholder = "resolution_width"
	PlaceholderResHeight      Placeholder = "resolution_height"
	PlaceholderNativesDir     Placeholder = "natives_directory"
	PlaceholderLauncherName   Placeholder = "launcher_name"
	PlaceholderLauncherVer    Placeholder = "launcher_version"
	PlaceholderClasspath      Placeholder = "classpath"
	PlaceholderUserProperties Placeholder = "user_properties"
)

// ArgContext carries the launch-time values placeholders resolve from: the
// session identity, the instance paths, the manifest coordinates, and the
// display configuration.
type ArgContext struct {
	Session    *Session
	GameDir    string
	AssetsRoot string
	NativesDir string
	Classpath  []string

	VersionName    string
	AssetIndexName string
	VersionType    string

	ResolutionWidth  int
	ResolutionHeight int
	LauncherName     string
	LauncherVersion  string
}

// ClasspathString joins the resolved classpath with the platform's path
// list separator.
func (c *ArgContext) ClasspathString() string {
	return strings.Join(c.Classpath, string(os.PathListSeparator))
}

// resolvers is the lookup table from placeholder kind to its pure value
// getter. A getter returning false is the null outcome: the placeholder is
// recognized but has no value for this launch.
var resolvers = map[Placeholder]func(*ArgContext) (string, bool){
	PlaceholderPlayerName: func(c *ArgContext) (string, bool) {
		return c.Session.DisplayName, c.Session.DisplayName != ""
	},
	PlaceholderAuthUUID: func(c *ArgContext) (string, bool) {
		return c.Session.DashedUUID(), c.Session.UUID != ""
	},
	PlaceholderAccessToken: func(c *ArgContext) (string, bool) {
		return c.Session.AccessToken, c.Session.AccessToken != ""
	},
	PlaceholderUserType: func(c *ArgContext) (string, bool) {
		return c.Session.UserType(), true
	},
	PlaceholderClientID: func(c *ArgContext) (string, bool) {
		if c.Session.Kind != AccountMicrosoft || c.Session.ClientID == "" {
			return "", false
		}
		return c.Session.ClientID, true
	},
	PlaceholderXuid: func(c *ArgContext) (string, bool) {
		if c.Session.Kind != AccountMicrosoft || c.Session.Xuid == "" {
			return "", false
		}
		return c.Session.Xuid, true
	},
	PlaceholderVersionName: func(c *ArgContext) (string, bool) {
		return c.VersionName, c.VersionName != ""
	},
	PlaceholderGameDirectory: func(c *ArgContext) (string, bool) {
		return c.GameDir, c.GameDir != ""
	},
	PlaceholderAssetsRoot: func(c *ArgContext) (string, bool) {
		return c.AssetsRoot, c.AssetsRoot != ""
	},
	PlaceholderAssetsIndex: func(c *ArgContext) (string, bool) {
		return c.AssetIndexName, c.AssetIndexName != ""
	},
	PlaceholderVersionType: func(c *ArgContext) (string, bool) {
		return c.VersionType, c.VersionType != ""
	},
	PlaceholderResWidth: func(c *ArgContext) (string, bool) {
		return strconv.Itoa(c.ResolutionWidth), c.ResolutionWidth > 0
	},
	PlaceholderResHeight: func(c *ArgContext) (string, bool) {
		return strconv.Itoa(c.ResolutionHeight), c.ResolutionHeight > 0
	},
	PlaceholderNativesDir: func(c *ArgContext) (string, bool) {
		return c.NativesDir, c.NativesDir != ""
	},
	PlaceholderLauncherName: func(c *ArgContext) (string, bool) {
		return c.LauncherName, c.LauncherName != ""
	},
	PlaceholderLauncherVer: func(c *ArgContext) (string, bool) {
		return c.LauncherVersion, c.LauncherVersion != ""
	},
	PlaceholderClasspath: func(c *ArgContext) (string, bool) {
		return c.ClasspathString(), len(c.Classpath) > 0
	},
	// Legacy templates reference a serialized property map nothing uses
	// anymore; an empty JSON object keeps old versions parsing.
	PlaceholderUserProperties: func(c *ArgContext) (string, bool) {
		return "{}", true
	},
}

// ResolvePlaceholder looks a token name up in the closed set. known is
// false when the name is not a recognized placeholder at all; null is true
// when it is recognized but carries no value for this launch.
func ResolvePlaceholder(name string, ctx *ArgContext) (value string, null bool, known bool) {
	resolver, ok := resolvers[Placeholder(name)]
	if !ok {
		return "", false, false
	}
	v, present := resolver(ctx)
	if !present {
		return "", true, true
	}
	return v, false, true
}
