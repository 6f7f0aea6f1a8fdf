package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/FrogdreamStudios/launcher/pkg/fetch"
)

// DefaultManifestURL is the public version manifest endpoint.
const DefaultManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// fallbackManifest is returned when the manifest can neither be
// fetched nor loaded from cache, so listing commands still produce a
// well-formed document.
var fallbackManifest = VersionManifest{
	Latest: LatestVersions{Release: "1.21.4", Snapshot: "24w51a"},
}

// Client fetches and caches version metadata.
type Client struct {
	fetcher     *fetch.Client
	manifestURL string
	log         *slog.Logger
}

// NewClient builds a metadata client. manifestURL may be empty to use
// the public endpoint.
func NewClient(fetcher *fetch.Client, manifestURL string, log *slog.Logger) *Client {
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{fetcher: fetcher, manifestURL: manifestURL, log: log}
}

// VersionManifest fetches the global version manifest, caching it
// under the install root. On network failure the cached copy is used;
// with no cache either, the static fallback document is returned so
// callers always get a well-formed manifest.
func (c *Client) VersionManifest(ctx context.Context, root string) (*VersionManifest, error) {
	var manifest VersionManifest
	if err := c.fetcher.GetJSON(ctx, c.manifestURL, &manifest); err != nil {
		c.log.Warn("version manifest fetch failed, trying cache", "error", err)
		cached, cacheErr := c.cachedManifest(root)
		if cacheErr != nil {
			c.log.Warn("no cached manifest", "error", cacheErr)
			fallback := fallbackManifest
			return &fallback, nil
		}
		return cached, nil
	}

	if err := c.cacheManifest(root, &manifest); err != nil {
		c.log.Warn("caching version manifest failed", "error", err)
	}
	return &manifest, nil
}

// Descriptor fetches one version's install descriptor from its
// manifest entry URL.
func (c *Client) Descriptor(ctx context.Context, info VersionInfo) (*Descriptor, []byte, error) {
	body, err := c.fetcher.Get(ctx, info.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch descriptor for %s: %w", info.ID, err)
	}
	var desc Descriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, nil, fmt.Errorf("decode descriptor for %s: %w", info.ID, err)
	}
	return &desc, body, nil
}

// LoadDescriptor reads a version's descriptor from disk.
func LoadDescriptor(root, versionID string) (*Descriptor, error) {
	data, err := os.ReadFile(DescriptorPath(root, versionID))
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	return &desc, nil
}

// DownloadArtifact fetches an artifact to a destination path, skipping
// the fetch when the file already exists.
func (c *Client) DownloadArtifact(ctx context.Context, url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	return c.fetcher.Download(ctx, url, dest)
}

func (c *Client) cachedManifest(root string) (*VersionManifest, error) {
	data, err := os.ReadFile(ManifestCachePath(root))
	if err != nil {
		return nil, err
	}
	var manifest VersionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse cached manifest: %w", err)
	}
	return &manifest, nil
}

func (c *Client) cacheManifest(root string, manifest *VersionManifest) error {
	path := ManifestCachePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
