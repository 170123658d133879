package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasspathMapOverwriteKeepsPosition(t *testing.T) {
	m := NewClasspathMap()
	m.Put("com.google.guava:guava", "libraries/guava-18.0.jar")
	m.Put("org.ow2.asm:asm", "libraries/asm-9.2.jar")
	m.Put("com.google.guava:guava", "libraries/guava-21.0.jar")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{
		"libraries/guava-21.0.jar",
		"libraries/asm-9.2.jar",
	}, m.Paths())
}

func TestClasspathMapMerge(t *testing.T) {
	base := NewClasspathMap()
	base.Put("a:one", "one-1.0.jar")
	base.Put("a:two", "two-1.0.jar")

	over := NewClasspathMap()
	over.Put("a:two", "two-2.0.jar")
	over.Put("a:three", "three-1.0.jar")

	base.Merge(over)
	assert.Equal(t, []string{"one-1.0.jar", "two-2.0.jar", "three-1.0.jar"}, base.Paths())
}

func TestClasspathMapTrimsEmbeddedJarPaths(t *testing.T) {
	m := NewClasspathMap()
	m.Put("a:bad", "libraries/bad-1.0.jar/stray-suffix")
	p, ok := m.Get("a:bad")
	require.True(t, ok)
	assert.Equal(t, "libraries/bad-1.0.jar", p)
}

func TestIncludeVersionJar(t *testing.T) {
	tests := []struct {
		name    string
		loader  ModuleType
		version string
		want    bool
	}{
		{"forge pre 1.17", ModuleForge, "1.16.5", true},
		{"forge at 1.17", ModuleForge, "1.17", false},
		{"forge past 1.17", ModuleForgeHosted, "1.20.1", false},
		{"fabric past 1.17", ModuleFabric, "1.20.1", true},
		{"fabric pre 1.17", ModuleFabric, "1.12.2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncludeVersionJar(tt.loader, tt.version))
		})
	}
}

func TestManifestClasspathFiltersNativesAndRules(t *testing.T) {
	libs := []Library{
		{
			Name: "com.google.guava:guava:18.0",
			Download: &LibraryDownloads{Artifact: &Artifact{
				Path: "com/google/guava/guava/18.0/guava-18.0.jar",
			}},
		},
		{
			// Modern natives entry: extracted, never on the classpath.
			Name: "org.lwjgl:lwjgl:3.3.1:natives-linux",
			Download: &LibraryDownloads{Artifact: &Artifact{
				Path: "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar",
			}},
		},
		{
			// Legacy natives entry.
			Name:    "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
			Natives: map[string]string{"linux": "natives-linux"},
		},
		{
			// Disallowed by rules on this host.
			Name: "ca.weblite:java-objc-bridge:1.1",
			Rules: []Rule{
				{Action: ActionAllow, OS: &OSRule{Name: "osx"}},
			},
			Download: &LibraryDownloads{Artifact: &Artifact{
				Path: "ca/weblite/java-objc-bridge/1.1/java-objc-bridge-1.1.jar",
			}},
		},
		{
			// No download descriptor: path derives from the identifier.
			Name: "org.ow2.asm:asm:9.2",
			URL:  "https://maven.fabricmc.net/",
		},
	}

	m := ManifestClasspath(libs, linuxContext(), "libraries")
	assert.Equal(t, []string{
		filepath.Join("libraries", "com", "google", "guava", "guava", "18.0", "guava-18.0.jar"),
		filepath.Join("libraries", "org", "ow2", "asm", "asm", "9.2", "asm-9.2.jar"),
	}, m.Paths())
}

func TestModuleClasspath(t *testing.T) {
	off := false
	modules := []Module{
		{ID: "net.fabricmc:fabric-loader:0.15.11", Type: ModuleFabric},
		{ID: "com.example:somemod:1.0", Type: ModuleMod},
		{ID: "com.example:helper:2.1", Type: ModuleLibrary},
		{ID: "com.example:assets:1.0", Type: ModuleLibrary, Classpath: &off},
		{ID: "com.mumfrey:liteloader:1.12.2", Type: ModuleLiteLoader},
	}

	m, err := ModuleClasspath(modules, "libraries")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("libraries", "net", "fabricmc", "fabric-loader", "0.15.11", "fabric-loader-0.15.11.jar"),
		filepath.Join("libraries", "com", "example", "helper", "2.1", "helper-2.1.jar"),
	}, m.Paths())

	bad := []Module{{ID: "unparseable", Type: ModuleLibrary}}
	_, err = ModuleClasspath(bad, "libraries")
	assert.Error(t, err)
}

func TestBuildClasspathServerLibraryOverridesManifest(t *testing.T) {
	manifestLibs := []Library{
		{
			Name: "com.google.guava:guava:18.0",
			Download: &LibraryDownloads{Artifact: &Artifact{
				Path: "com/google/guava/guava/18.0/guava-18.0.jar",
			}},
		},
		{
			Name: "org.ow2.asm:asm:9.2",
			Download: &LibraryDownloads{Artifact: &Artifact{
				Path: "org/ow2/asm/asm/9.2/asm-9.2.jar",
			}},
		},
	}
	modules := []Module{
		{ID: "com.google.guava:guava:21.0", Type: ModuleLibrary},
	}

	got, err := BuildClasspath(ClasspathInput{
		VersionJarPath:   filepath.Join("versions", "1.12.2", "1.12.2.jar"),
		MinecraftVersion: "1.12.2",
		LoaderType:       ModuleForge,
		Libraries:        manifestLibs,
		LibraryDir:       "libraries",
		Modules:          modules,
		Rules:            linuxContext(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("versions", "1.12.2", "1.12.2.jar"),
		// Overridden path, original position.
		filepath.Join("libraries", "com", "google", "guava", "guava", "21.0", "guava-21.0.jar"),
		filepath.Join("libraries", "org", "ow2", "asm", "asm", "9.2", "asm-9.2.jar"),
	}, got)
}

func TestBuildClasspathModernForgeDropsVersionJar(t *testing.T) {
	got, err := BuildClasspath(ClasspathInput{
		VersionJarPath:   filepath.Join("versions", "1.20.1", "1.20.1.jar"),
		MinecraftVersion: "1.20.1",
		LoaderType:       ModuleForge,
		LibraryDir:       "libraries",
		Rules:            linuxContext(),
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildClasspathLiteLoaderSlot(t *testing.T) {
	got, err := BuildClasspath(ClasspathInput{
		VersionJarPath:   filepath.Join("versions", "1.12.2", "1.12.2.jar"),
		MinecraftVersion: "1.12.2",
		LoaderType:       ModuleForge,
		LiteLoaderPath:   filepath.Join("libraries", "liteloader-1.12.2.jar"),
		LibraryDir:       "libraries",
		Rules:            linuxContext(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("versions", "1.12.2", "1.12.2.jar"),
		filepath.Join("libraries", "liteloader-1.12.2.jar"),
	}, got)
}
