package mojang

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultInstallRoot returns the platform's conventional game data
// directory.
func DefaultInstallRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, ".minecraft")
		}
		return filepath.Join(home, ".minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// VersionDir returns the directory holding one version's descriptor
// and client jar.
func VersionDir(root, versionID string) string {
	return filepath.Join(root, "versions", versionID)
}

// DescriptorPath returns the on-disk path of a version's install
// descriptor.
func DescriptorPath(root, versionID string) string {
	return filepath.Join(VersionDir(root, versionID), versionID+".json")
}

// ClientJarPath returns the on-disk path of a version's client jar.
func ClientJarPath(root, versionID string) string {
	return filepath.Join(VersionDir(root, versionID), versionID+".jar")
}

// NativesDir returns the directory native libraries are extracted to
// for one version.
func NativesDir(root, versionID string) string {
	return filepath.Join(VersionDir(root, versionID), "natives")
}

// LibrariesRoot returns the shared library tree.
func LibrariesRoot(root string) string {
	return filepath.Join(root, "libraries")
}

// AssetsRoot returns the shared asset tree.
func AssetsRoot(root string) string {
	return filepath.Join(root, "assets")
}

// ManifestCachePath returns where the fetched version manifest is
// cached for offline reuse.
func ManifestCachePath(root string) string {
	return filepath.Join(root, "cache", "version_manifest_v2.json")
}

// LibraryPath maps a maven coordinate ("org.lwjgl:lwjgl:3.3.0") to its
// jar path under the library tree. Returns false for malformed names.
func LibraryPath(root, name string) (string, bool) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return "", false
	}
	group, artifact, version := parts[0], parts[1], parts[2]
	groupPath := filepath.Join(strings.Split(group, ".")...)
	jar := artifact + "-" + version + ".jar"
	return filepath.Join(LibrariesRoot(root), groupPath, artifact, version, jar), true
}
