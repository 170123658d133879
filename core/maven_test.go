package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMavenID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MavenID
		wantErr bool
	}{
		{
			name:  "plain artifact",
			input: "com.google.guava:guava:21.0",
			want:  MavenID{Group: "com.google.guava", Artifact: "guava", Version: "21.0", Extension: "jar"},
		},
		{
			name:  "with classifier",
			input: "org.lwjgl:lwjgl:3.3.1:natives-macos-arm64",
			want:  MavenID{Group: "org.lwjgl", Artifact: "lwjgl", Version: "3.3.1", Classifier: "natives-macos-arm64", Extension: "jar"},
		},
		{
			name:  "with extension",
			input: "net.minecraftforge:forge:1.18.2-40.1.0:universal@zip",
			want:  MavenID{Group: "net.minecraftforge", Artifact: "forge", Version: "1.18.2-40.1.0", Classifier: "universal", Extension: "zip"},
		},
		{
			name:    "too few segments",
			input:   "guava:21.0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMavenID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMavenIDPath(t *testing.T) {
	id := MavenID{Group: "org.lwjgl", Artifact: "lwjgl", Version: "3.3.1", Extension: "jar"}
	assert.Equal(t, "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", id.Path())

	id.Classifier = "natives-linux"
	assert.Equal(t, "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar", id.Path())
}

func TestMavenIDString(t *testing.T) {
	id, err := ParseMavenID("net.minecraftforge:forge:40.1.0:universal@zip")
	assert.NoError(t, err)
	assert.Equal(t, "net.minecraftforge:forge:40.1.0:universal@zip", id.String())

	plain, err := ParseMavenID("com.google.guava:guava:21.0")
	assert.NoError(t, err)
	assert.Equal(t, "com.google.guava:guava:21.0", plain.String())
}

func TestLibraryIdentity(t *testing.T) {
	assert.Equal(t, "com.google.guava:guava", LibraryIdentity("com.google.guava:guava:18.0"))
	assert.Equal(t, "com.google.guava:guava", LibraryIdentity("com.google.guava:guava:21.0"))
	assert.Equal(t, "a:b", LibraryIdentity("a:b:1.0:natives-linux@zip"))
	// Malformed identifiers fall back to the raw string.
	assert.Equal(t, "not-maven", LibraryIdentity("not-maven"))
}

func TestParseNativesSuffix(t *testing.T) {
	tests := []struct {
		classifier string
		want       NativesSuffix
		ok         bool
	}{
		{"natives-macos-arm64", NativesSuffix{OS: "macos", Arch: "arm64"}, true},
		{"natives-windows-x86", NativesSuffix{OS: "windows", Arch: "x86"}, true},
		{"natives-linux", NativesSuffix{OS: "linux", Arch: ""}, true},
		{"natives-osx", NativesSuffix{OS: "osx", Arch: ""}, true},
		{"sources", NativesSuffix{}, false},
		{"natives-", NativesSuffix{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.classifier, func(t *testing.T) {
			got, ok := ParseNativesSuffix(tt.classifier)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
