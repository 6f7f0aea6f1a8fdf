package natives

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LibrarySet names the native libraries the patcher manages and the
// version their arm64 builds are pinned to.
type LibrarySet struct {
	// Version is the library release carrying arm64 natives.
	Version string `yaml:"version"`

	// Group is the maven group the libraries live under.
	Group string `yaml:"group"`

	// Libraries are the artifact names to fetch and rewrite.
	Libraries []string `yaml:"libraries"`
}

// DefaultLibrarySet returns the LWJGL 3.3.0 set, the first release
// with complete macOS arm64 natives.
func DefaultLibrarySet() LibrarySet {
	return LibrarySet{
		Version: "3.3.0",
		Group:   "org.lwjgl",
		Libraries: []string{
			"lwjgl",
			"lwjgl-glfw",
			"lwjgl-jemalloc",
			"lwjgl-openal",
			"lwjgl-opengl",
			"lwjgl-stb",
			"lwjgl-tinyfd",
		},
	}
}

// LoadLibrarySet loads a library set override from a yaml file.
// Missing fields fall back to the defaults.
func LoadLibrarySet(path string) (LibrarySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LibrarySet{}, fmt.Errorf("read library set: %w", err)
	}

	set := DefaultLibrarySet()
	if err := yaml.Unmarshal(data, &set); err != nil {
		return LibrarySet{}, fmt.Errorf("parse library set: %w", err)
	}
	if err := set.Validate(); err != nil {
		return LibrarySet{}, fmt.Errorf("validate library set: %w", err)
	}
	return set, nil
}

// Validate checks the set and fills defaults for omitted fields.
func (s *LibrarySet) Validate() error {
	if s.Version == "" {
		s.Version = DefaultLibrarySet().Version
	}
	if s.Group == "" {
		s.Group = DefaultLibrarySet().Group
	}
	if len(s.Libraries) == 0 {
		return fmt.Errorf("libraries list is empty")
	}
	return nil
}
