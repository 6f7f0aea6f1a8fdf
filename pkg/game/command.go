package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

// Launcher identity reported to the game via JVM properties.
const (
	LauncherBrand   = "dream-launcher"
	LauncherVersion = "1.0"
)

// Options describe one launch request.
type Options struct {
	// Username is the player name shown in game.
	Username string

	// UUID is the session identifier.
	UUID string

	// Token is the auth token. Offline launches pass a dummy value.
	Token string

	// VersionID is the version to start.
	VersionID string

	// Root is the install root.
	Root string

	// GameDir is the working directory the game writes saves and
	// settings to.
	GameDir string

	// JavaPath is the runtime binary to invoke.
	JavaPath string

	// Profile is the resolved compatibility profile for VersionID.
	Profile compat.Profile
}

// BuildCommand assembles the full argv for a launch: runtime binary,
// substituted JVM flags, main class and game arguments.
func BuildCommand(desc *mojang.Descriptor, opts Options) ([]string, error) {
	if desc.MainClass == "" {
		return nil, fmt.Errorf("descriptor for %s has no main class", opts.VersionID)
	}

	cp, err := classpath(desc, opts.Root, opts.VersionID)
	if err != nil {
		return nil, err
	}

	subs := map[string]string{
		"${natives_directory}": mojang.NativesDir(opts.Root, opts.VersionID),
		"${launcher_name}":     LauncherBrand,
		"${launcher_version}":  LauncherVersion,
		"${classpath}":         cp,
	}

	argv := []string{opts.JavaPath}
	for _, flag := range opts.Profile.JVMFlags {
		argv = append(argv, substitute(flag, subs))
	}
	argv = append(argv, desc.MainClass)
	argv = append(argv, gameArgs(desc, opts)...)
	return argv, nil
}

// classpath joins every library artifact plus the client jar with the
// platform's path-list separator.
func classpath(desc *mojang.Descriptor, root, versionID string) (string, error) {
	var entries []string
	libRoot := mojang.LibrariesRoot(root)
	for _, lib := range desc.Libraries {
		if a := lib.Downloads.Artifact; a != nil && a.Path != "" {
			entries = append(entries, joinArtifact(libRoot, a.Path))
			continue
		}
		if path, ok := mojang.LibraryPath(root, lib.Name); ok {
			entries = append(entries, path)
		}
	}
	entries = append(entries, mojang.ClientJarPath(root, versionID))
	if len(entries) == 1 {
		return "", fmt.Errorf("descriptor for %s lists no libraries", versionID)
	}
	return strings.Join(entries, string(os.PathListSeparator)), nil
}

func joinArtifact(libRoot, relPath string) string {
	return libRoot + string(os.PathSeparator) + strings.ReplaceAll(relPath, "/", string(os.PathSeparator))
}

// gameArgs builds the offline-mode game argument list.
func gameArgs(desc *mojang.Descriptor, opts Options) []string {
	versionType := desc.Type
	if versionType == "" {
		versionType = "release"
	}
	return []string{
		"--username", opts.Username,
		"--version", opts.VersionID,
		"--gameDir", opts.GameDir,
		"--assetsDir", mojang.AssetsRoot(opts.Root),
		"--assetIndex", desc.Assets,
		"--uuid", opts.UUID,
		"--accessToken", opts.Token,
		"--userType", "mojang",
		"--versionType", versionType,
	}
}

// substitute replaces every placeholder occurrence in a flag.
func substitute(flag string, subs map[string]string) string {
	for key, val := range subs {
		flag = strings.ReplaceAll(flag, key, val)
	}
	return flag
}
