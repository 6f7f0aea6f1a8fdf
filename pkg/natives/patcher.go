// Package natives repairs installs whose descriptors reference native
// libraries that were never published for the running CPU
// architecture. It downloads architecture-specific replacement
// artifacts into the library tree and rewrites the version's install
// descriptor so its natives classifiers point at them.
//
// The patcher mutates exactly the native-library classifier entries
// for the running OS and nothing else: the descriptor is edited as a
// raw JSON document so every field the patcher does not touch survives
// the round trip. Callers must serialize installs of the same version
// themselves; the patcher takes no cross-process lock.
package natives

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FrogdreamStudios/launcher/pkg/fetch"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

// DefaultRegistryURL is the public package registry the replacement
// artifacts are fetched from.
const DefaultRegistryURL = "https://repo1.maven.org/maven2"

// Config controls which artifacts the patcher targets.
type Config struct {
	// RegistryURL is the artifact registry base URL.
	RegistryURL string

	// Set is the managed native library set.
	Set LibrarySet

	// OSClassifier is the classifier OS name ("macos").
	OSClassifier string

	// NativesKey is the descriptor "natives" map key for the running
	// OS ("osx" in Mojang descriptors).
	NativesKey string

	// Arch is the architecture suffix ("arm64").
	Arch string
}

// DefaultConfig targets macOS arm64, the one combination with a known
// natives gap.
func DefaultConfig() Config {
	return Config{
		RegistryURL:  DefaultRegistryURL,
		Set:          DefaultLibrarySet(),
		OSClassifier: "macos",
		NativesKey:   "osx",
		Arch:         "arm64",
	}
}

// Classifier returns the architecture-specific classifier name the
// configuration targets, e.g. "natives-macos-arm64".
func (c Config) Classifier() string {
	return "natives-" + c.OSClassifier + "-" + c.Arch
}

// Patcher fetches replacement natives and rewrites descriptors.
type Patcher struct {
	cfg     Config
	fetcher *fetch.Client
	log     *slog.Logger
}

// NewPatcher builds a patcher.
func NewPatcher(cfg Config, fetcher *fetch.Client, log *slog.Logger) *Patcher {
	if cfg.RegistryURL == "" {
		cfg.RegistryURL = DefaultRegistryURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Patcher{cfg: cfg, fetcher: fetcher, log: log}
}

func (p *Patcher) classifier() string {
	return p.cfg.Classifier()
}

// osClassifier returns the plain OS classifier this patch supersedes,
// e.g. "natives-macos".
func (p *Patcher) osClassifier() string {
	return "natives-" + p.cfg.OSClassifier
}

// artifactName returns the replacement jar filename for a library.
func (p *Patcher) artifactName(lib string) string {
	return fmt.Sprintf("%s-%s-%s.jar", lib, p.cfg.Set.Version, p.classifier())
}

// artifactURL returns the registry URL for a library's replacement
// natives jar.
func (p *Patcher) artifactURL(lib string) string {
	groupPath := strings.ReplaceAll(p.cfg.Set.Group, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		p.cfg.RegistryURL, groupPath, lib, p.cfg.Set.Version, p.artifactName(lib))
}

// artifactPath returns where the replacement jar lives in the library
// tree.
func (p *Patcher) artifactPath(root, lib string) string {
	groupDirs := filepath.Join(strings.Split(p.cfg.Set.Group, ".")...)
	return filepath.Join(mojang.LibrariesRoot(root), groupDirs, lib, p.cfg.Set.Version, p.artifactName(lib))
}

// EnsurePatched makes a version launchable on the configured
// architecture: it fetches any missing replacement natives and
// rewrites the version's descriptor. Idempotent — artifacts already on
// disk are not fetched again and a patched descriptor is unchanged by
// a second pass.
func (p *Patcher) EnsurePatched(ctx context.Context, root, versionID string) error {
	for _, lib := range p.cfg.Set.Libraries {
		dest := p.artifactPath(root, lib)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		p.log.Info("downloading replacement natives", "library", lib, "arch", p.cfg.Arch)
		if err := p.fetcher.Download(ctx, p.artifactURL(lib), dest); err != nil {
			// Only artifacts actually on the class path at launch time
			// matter; a missing optional one is not fatal.
			p.log.Warn("natives artifact fetch failed, skipping", "library", lib, "error", err)
		}
	}

	return p.patchDescriptor(root, versionID)
}

// patchDescriptor rewrites the natives classifier entries of every
// managed library in the version's install descriptor. A missing or
// unreadable descriptor is a hard failure: without it the version
// cannot launch at all.
func (p *Patcher) patchDescriptor(root, versionID string) error {
	path := mojang.DescriptorPath(root, versionID)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read install descriptor %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse install descriptor %s: %w", path, err)
	}

	libs, ok := doc["libraries"].([]any)
	if !ok {
		return fmt.Errorf("install descriptor %s has no libraries array", path)
	}

	changed := false
	for _, raw := range libs {
		lib, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := lib["name"].(string)
		if !strings.HasPrefix(name, p.cfg.Set.Group+":") {
			continue
		}
		if p.patchLibrary(lib, name) {
			changed = true
		}
	}

	if !changed {
		return nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode install descriptor: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write install descriptor %s: %w", path, err)
	}
	p.log.Info("install descriptor patched", "version", versionID, "arch", p.cfg.Arch)
	return nil
}

// patchLibrary rewrites one library entry in place. Returns true when
// anything changed.
func (p *Patcher) patchLibrary(lib map[string]any, name string) bool {
	changed := false
	artifact := artifactFromName(name)

	// Rewrite the per-OS natives classifier name.
	if natives, ok := lib["natives"].(map[string]any); ok {
		if current, ok := natives[p.cfg.NativesKey].(string); ok && current != p.classifier() {
			natives[p.cfg.NativesKey] = p.classifier()
			changed = true
		}
	}

	// Replace the superseded download classifier entry. Hash and size
	// are cleared so the next verified download refreshes them.
	downloads, ok := lib["downloads"].(map[string]any)
	if !ok {
		return changed
	}
	classifiers, ok := downloads["classifiers"].(map[string]any)
	if !ok {
		return changed
	}
	old, ok := classifiers[p.osClassifier()].(map[string]any)
	if !ok {
		return changed
	}

	oldPath, _ := old["path"].(string)
	classifiers[p.classifier()] = map[string]any{
		"path": strings.Replace(oldPath, p.osClassifier()+".jar", p.classifier()+".jar", 1),
		"sha1": "",
		"size": 0,
		"url":  p.artifactURL(artifact),
	}
	delete(classifiers, p.osClassifier())
	return true
}

// artifactFromName extracts the artifact id from a maven coordinate.
func artifactFromName(name string) string {
	parts := strings.Split(name, ":")
	if len(parts) < 2 {
		return name
	}
	return parts[1]
}
