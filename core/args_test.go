package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		Kind:        AccountMicrosoft,
		DisplayName: "Steve",
		UUID:        "069a79f444e94726a5befca90e38aaf5",
		AccessToken: "token-abc",
		Xuid:        "2535406311651362",
		ClientID:    "launcher-client-id",
	}
}

func testArgContext() *ArgContext {
	return &ArgContext{
		Session:          testSession(),
		GameDir:          "/instances/main",
		AssetsRoot:       "/common/assets",
		NativesDir:       "/tmp/natives-abc123",
		Classpath:        []string{"/libs/a.jar", "/libs/b.jar"},
		VersionName:      "1.20.1",
		AssetIndexName:   "5",
		VersionType:      "release",
		ResolutionWidth:  1280,
		ResolutionHeight: 720,
		LauncherName:     "lodestone",
		LauncherVersion:  "1.0.0",
	}
}

func testBuilder(ctx *ArgContext) *ArgBuilder {
	return &ArgBuilder{Ctx: ctx, Rules: linuxContext()}
}

func TestResolveArgsPlaceholders(t *testing.T) {
	b := testBuilder(testArgContext())
	got := b.ResolveArgs([]Argument{
		{Raw: "--username"},
		{Raw: "${auth_player_name}"},
		{Raw: "--uuid"},
		{Raw: "${auth_uuid}"},
		{Raw: "--userType"},
		{Raw: "${user_type}"},
	})
	assert.Equal(t, []string{
		"--username", "Steve",
		"--uuid", "069a79f4-44e9-4726-a5be-fca90e38aaf5",
		"--userType", "msa",
	}, got)
}

func TestResolveArgsRuleEntryDroppedWithoutTouchingNeighbors(t *testing.T) {
	b := testBuilder(testArgContext())
	got := b.ResolveArgs([]Argument{
		{Raw: "-Xmx${ram}"},
		{Cond: &ConditionalValue{
			Rules: []Rule{{Action: ActionAllow, OS: &OSRule{Name: "osx"}}},
			Value: StringList{"-XstartOnFirstThread"},
		}},
	})
	// The rule entry vanishes whole; the unknown embedded token is swept
	// out of its string, which itself survives.
	assert.Equal(t, []string{"-Xmx"}, got)
}

func TestResolveArgsRuleEntryAcceptedAndSpliced(t *testing.T) {
	ctx := testArgContext()
	b := &ArgBuilder{
		Ctx:   ctx,
		Rules: RuleContext{Platform: "darwin", OS: "osx", Arch: ArchARM64},
	}
	got := b.ResolveArgs([]Argument{
		{Cond: &ConditionalValue{
			Rules: []Rule{{Action: ActionAllow, OS: &OSRule{Name: "osx"}}},
			Value: StringList{"-XstartOnFirstThread", "-Djava.library.path=${natives_directory}"},
		}},
	})
	assert.Equal(t, []string{
		"-XstartOnFirstThread",
		"-Djava.library.path=/tmp/natives-abc123",
	}, got)
}

func TestResolveArgsMissingAccessTokenCompletes(t *testing.T) {
	ctx := testArgContext()
	ctx.Session.AccessToken = ""
	b := testBuilder(ctx)
	got := b.ResolveArgs([]Argument{
		{Raw: "--username"},
		{Raw: "${auth_player_name}"},
		{Raw: "--accessToken"},
		{Raw: "${auth_access_token}"},
		{Raw: "--versionType"},
		{Raw: "${version_type}"},
	})
	// The orphaned flag goes with its missing value; everything else
	// still materializes.
	assert.Equal(t, []string{
		"--username", "Steve",
		"--versionType", "release",
	}, got)
}

func TestResolveArgsNullIdentityFieldsForNonMicrosoftKinds(t *testing.T) {
	ctx := testArgContext()
	ctx.Session = &Session{
		Kind:        AccountOffline,
		DisplayName: "Herobrine",
		UUID:        "00000000000000000000000000000001",
	}
	b := testBuilder(ctx)
	got := b.ResolveArgs([]Argument{
		{Raw: "--clientId"},
		{Raw: "${clientid}"},
		{Raw: "--xuid"},
		{Raw: "${auth_xuid}"},
		{Raw: "--userType"},
		{Raw: "${user_type}"},
	})
	assert.Equal(t, []string{"--userType", "legacy"}, got)
}

func TestResolveArgsUnrecognizedPlaceholderRemovedWithFlag(t *testing.T) {
	b := testBuilder(testArgContext())
	got := b.ResolveArgs([]Argument{
		{Raw: "--mystery"},
		{Raw: "${no_such_token}"},
		{Raw: "--width"},
		{Raw: "${resolution_width}"},
	})
	assert.Equal(t, []string{"--width", "1280"}, got)
}

func TestResolveArgsFeatureReplacement(t *testing.T) {
	ctx := testArgContext()
	rules := linuxContext()
	rules.Features = FeatureSet{CustomResolution: true, Fullscreen: true}
	b := &ArgBuilder{Ctx: ctx, Rules: rules}

	got := b.ResolveArgs([]Argument{
		{Cond: &ConditionalValue{
			Rules: []Rule{{Action: ActionAllow, Features: map[string]bool{"has_custom_resolution": true}}},
			Value: StringList{"--width", "${resolution_width}", "--height", "${resolution_height}"},
		}},
	})
	assert.Equal(t, []string{"--fullscreen", "true"}, got)
}

func TestResolveLegacyArgs(t *testing.T) {
	b := testBuilder(testArgContext())
	got := b.ResolveLegacyArgs("--username ${auth_player_name} --gameDir ${game_directory} --userProperties ${user_properties}")
	assert.Equal(t, []string{
		"--username", "Steve",
		"--gameDir", "/instances/main",
		"--userProperties", "{}",
	}, got)
}

func TestAutoConnectArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"--quickPlayMultiplayer", "mc.example.com:25565"},
		AutoConnectArgs("mc.example.com", "1.20.1"))
	assert.Equal(t,
		[]string{"--quickPlayMultiplayer", "mc.example.com:25599"},
		AutoConnectArgs("mc.example.com:25599", "1.20"))
	assert.Equal(t,
		[]string{"--server", "mc.example.com", "--port", "25565"},
		AutoConnectArgs("mc.example.com", "1.19.4"))
	assert.Equal(t,
		[]string{"--server", "mc.example.com", "--port", "25599"},
		AutoConnectArgs("mc.example.com:25599", "1.12.2"))
}

func TestSplitServerAddress(t *testing.T) {
	host, port := SplitServerAddress("play.example.com")
	assert.Equal(t, "play.example.com", host)
	assert.Equal(t, "25565", port)

	host, port = SplitServerAddress("play.example.com:1337")
	assert.Equal(t, "play.example.com", host)
	assert.Equal(t, "1337", port)
}

func TestEnsureNativePathArgsInsertsMissingProperty(t *testing.T) {
	args := []string{"-Xmx4G", "-cp", "a.jar:b.jar", "net.minecraft.client.main.Main"}
	got := EnsureNativePathArgs(args, "/tmp/natives", "linux")
	assert.Equal(t, []string{
		"-Xmx4G",
		"-Djava.library.path=/tmp/natives",
		"-cp", "a.jar:b.jar",
		"net.minecraft.client.main.Main",
	}, got)
}

func TestEnsureNativePathArgsKeepsExistingProperty(t *testing.T) {
	args := []string{"-Djava.library.path=/custom", "-cp", "a.jar"}
	got := EnsureNativePathArgs(args, "/tmp/natives", "linux")
	assert.Equal(t, args, got)
}

func TestEnsureNativePathArgsDarwinAfterThreadAffinity(t *testing.T) {
	args := []string{"-XstartOnFirstThread", "-Djava.library.path=/tmp/natives", "-cp", "a.jar"}
	got := EnsureNativePathArgs(args, "/tmp/natives", "darwin")
	assert.Equal(t, []string{
		"-XstartOnFirstThread",
		"-Dorg.lwjgl.librarypath=/tmp/natives",
		"-Djava.library.path=/tmp/natives",
		"-cp", "a.jar",
	}, got)
}

func TestEnsureNativePathArgsDarwinAfterLibraryPath(t *testing.T) {
	args := []string{"-Xmx4G", "-Djava.library.path=/tmp/natives", "-cp", "a.jar"}
	got := EnsureNativePathArgs(args, "/tmp/natives", "darwin")
	assert.Equal(t, []string{
		"-Xmx4G",
		"-Djava.library.path=/tmp/natives",
		"-Dorg.lwjgl.librarypath=/tmp/natives",
		"-cp", "a.jar",
	}, got)
}

func TestEnsureNativePathArgsDarwinInsertsBoth(t *testing.T) {
	got := EnsureNativePathArgs([]string{"-Xmx4G", "-cp", "a.jar"}, "/tmp/natives", "darwin")
	require.Len(t, got, 5)
	assert.Equal(t, []string{
		"-Xmx4G",
		"-Djava.library.path=/tmp/natives",
		"-Dorg.lwjgl.librarypath=/tmp/natives",
		"-cp", "a.jar",
	}, got)
}

func TestInsertAtSafePointFallbacks(t *testing.T) {
	// No classpath flag: insert before the first non-flag token.
	got := insertAtSafePoint([]string{"-Xmx4G", "MainClass"}, "-Dprop=1")
	assert.Equal(t, []string{"-Xmx4G", "-Dprop=1", "MainClass"}, got)

	// All flags: append at the end.
	got = insertAtSafePoint([]string{"-Xmx4G", "-Xms1G"}, "-Dprop=1")
	assert.Equal(t, []string{"-Xmx4G", "-Xms1G", "-Dprop=1"}, got)
}

func TestFilterSlotsFlagRemoval(t *testing.T) {
	got := filterSlots([]argSlot{
		{text: "--first"},
		{text: "kept"},
		{text: "--second"},
		{drop: true},
		{text: "-single"},
		{text: ""},
		{text: "tail"},
	})
	// The long flag preceding a dropped value goes too; the short flag
	// before the empty entry stays.
	assert.Equal(t, []string{"--first", "kept", "-single", "tail"}, got)
}
