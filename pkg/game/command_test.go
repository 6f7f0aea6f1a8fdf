package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

func testDescriptor() *mojang.Descriptor {
	return &mojang.Descriptor{
		ID:        "1.21.0",
		MainClass: "net.minecraft.client.main.Main",
		Assets:    "17",
		Type:      "release",
		Libraries: []mojang.Library{
			{
				Name: "com.mojang:brigadier:1.2.9",
				Downloads: mojang.LibraryDownloads{
					Artifact: &mojang.Artifact{Path: "com/mojang/brigadier/1.2.9/brigadier-1.2.9.jar"},
				},
			},
			{Name: "org.lwjgl:lwjgl:3.3.3"},
		},
	}
}

func testOptions(root string) Options {
	resolver := &compat.Resolver{
		Host:          compat.HostInfo{OS: "linux", Arch: "amd64"},
		RosettaCutoff: compat.DefaultRosettaCutoff,
	}
	return Options{
		Username:  "steve",
		UUID:      "123e4567-e89b-12d3-a456-426614174000",
		Token:     "null",
		VersionID: "1.21.0",
		Root:      root,
		GameDir:   filepath.Join(root, "game"),
		JavaPath:  "/usr/bin/java",
		Profile:   resolver.Resolve("1.21.0"),
	}
}

func TestBuildCommandShape(t *testing.T) {
	root := t.TempDir()
	argv, err := BuildCommand(testDescriptor(), testOptions(root))
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/java", argv[0])

	joined := strings.Join(argv, " ")
	assert.NotContains(t, joined, "${", "unsubstituted placeholder left in command")
	assert.Contains(t, joined, "-Dminecraft.launcher.brand="+LauncherBrand)
	assert.Contains(t, joined, "-Dminecraft.launcher.version="+LauncherVersion)
	assert.Contains(t, joined, "-Djava.library.path="+mojang.NativesDir(root, "1.21.0"))

	mainIdx := indexOf(argv, "net.minecraft.client.main.Main")
	require.GreaterOrEqual(t, mainIdx, 1, "main class missing")
	for _, flag := range argv[1:mainIdx] {
		assert.False(t, strings.HasPrefix(flag, "--username"), "game args before main class")
	}
}

func TestBuildCommandClasspath(t *testing.T) {
	root := t.TempDir()
	argv, err := BuildCommand(testDescriptor(), testOptions(root))
	require.NoError(t, err)

	cpIdx := indexOf(argv, "-cp")
	require.GreaterOrEqual(t, cpIdx, 1)
	cp := argv[cpIdx+1]

	entries := strings.Split(cp, string(os.PathListSeparator))
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0], "brigadier-1.2.9.jar")
	assert.Contains(t, entries[1], filepath.Join("org", "lwjgl", "lwjgl", "3.3.3", "lwjgl-3.3.3.jar"))
	assert.Equal(t, mojang.ClientJarPath(root, "1.21.0"), entries[2])
}

func TestBuildCommandGameArgs(t *testing.T) {
	root := t.TempDir()
	opts := testOptions(root)
	argv, err := BuildCommand(testDescriptor(), opts)
	require.NoError(t, err)

	assertFlagValue(t, argv, "--username", "steve")
	assertFlagValue(t, argv, "--version", "1.21.0")
	assertFlagValue(t, argv, "--gameDir", opts.GameDir)
	assertFlagValue(t, argv, "--assetsDir", mojang.AssetsRoot(root))
	assertFlagValue(t, argv, "--assetIndex", "17")
	assertFlagValue(t, argv, "--uuid", opts.UUID)
	assertFlagValue(t, argv, "--accessToken", "null")
	assertFlagValue(t, argv, "--userType", "mojang")
	assertFlagValue(t, argv, "--versionType", "release")
}

func TestBuildCommandMissingMainClass(t *testing.T) {
	desc := testDescriptor()
	desc.MainClass = ""
	_, err := BuildCommand(desc, testOptions(t.TempDir()))
	require.Error(t, err)
}

func TestBuildCommandNoLibraries(t *testing.T) {
	desc := testDescriptor()
	desc.Libraries = nil
	_, err := BuildCommand(desc, testOptions(t.TempDir()))
	require.Error(t, err)
}

func indexOf(argv []string, want string) int {
	for i, v := range argv {
		if v == want {
			return i
		}
	}
	return -1
}

func assertFlagValue(t *testing.T, argv []string, flag, want string) {
	t.Helper()
	idx := indexOf(argv, flag)
	if idx < 0 || idx+1 >= len(argv) {
		t.Errorf("flag %s missing from command", flag)
		return
	}
	assert.Equal(t, want, argv[idx+1], flag)
}
