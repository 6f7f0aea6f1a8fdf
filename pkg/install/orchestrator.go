// Package install drives version installs. The primary path delegates
// to the game installer; a known failure signature (a native artifact
// never published for the running architecture) switches to a manual
// recovery path that fetches the version metadata and client artifact
// directly and repairs the install descriptor.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

// Installer performs a standard version install.
type Installer interface {
	Install(ctx context.Context, root, versionID string) error
}

// Patcher repairs an install for the running architecture.
type Patcher interface {
	EnsurePatched(ctx context.Context, root, versionID string) error
}

// Orchestrator runs installs with automatic recovery.
type Orchestrator struct {
	installer Installer
	patcher   Patcher
	meta      *mojang.Client
	resolver  *compat.Resolver

	// archClassifier is the natives classifier token whose presence in
	// a failure message marks it as recoverable.
	archClassifier string

	log *slog.Logger
}

// NewOrchestrator builds an orchestrator around the given collaborators.
func NewOrchestrator(installer Installer, patcher Patcher, meta *mojang.Client, resolver *compat.Resolver, archClassifier string, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		installer:      installer,
		patcher:        patcher,
		meta:           meta,
		resolver:       resolver,
		archClassifier: archClassifier,
		log:            log,
	}
}

// Install installs a version under root. When the version requires
// architecture emulation, a delegated-install failure caused by a
// missing architecture-specific native artifact triggers the manual
// recovery path; an already-installed condition is normalized to
// success; everything else propagates unmodified.
func (o *Orchestrator) Install(ctx context.Context, root, versionID string) error {
	err := o.installer.Install(ctx, root, versionID)
	if err == nil {
		return nil
	}

	switch ClassifyError(err, o.archClassifier) {
	case FailureAlreadyInstalled:
		o.log.Info("version already installed", "version", versionID)
		return nil
	case FailureNativesMissing:
		if !o.resolver.Resolve(versionID).NeedsRosetta {
			return err
		}
		o.log.Info("delegated install failed on missing natives, recovering manually",
			"version", versionID, "error", err)
		return o.recover(ctx, root, versionID)
	default:
		return err
	}
}

// recover performs the manual install path: manifest lookup, descriptor
// and client artifact fetch, then the architecture patch.
func (o *Orchestrator) recover(ctx context.Context, root, versionID string) error {
	manifest, err := o.meta.VersionManifest(ctx, root)
	if err != nil {
		return NewError(ErrorCodeNetworkFailure, "fetch version manifest").WithCause(err)
	}

	info, ok := manifest.Find(versionID)
	if !ok {
		return NewError(ErrorCodeVersionNotFound, "version not in manifest").
			WithContext("version", versionID)
	}

	desc, err := o.ensureDescriptor(ctx, root, info)
	if err != nil {
		return err
	}
	if err := o.ensureClientJar(ctx, root, versionID, desc); err != nil {
		return err
	}

	if err := o.patcher.EnsurePatched(ctx, root, versionID); err != nil {
		return NewError(ErrorCodeManifestCorrupt, "patch install descriptor").
			WithContext("version", versionID).
			WithCause(err)
	}

	o.log.Info("manual install recovery complete", "version", versionID)
	return nil
}

// ensureDescriptor fetches and persists the version's install
// descriptor unless it is already on disk.
func (o *Orchestrator) ensureDescriptor(ctx context.Context, root string, info mojang.VersionInfo) (*mojang.Descriptor, error) {
	path := mojang.DescriptorPath(root, info.ID)
	if _, err := os.Stat(path); err == nil {
		desc, err := mojang.LoadDescriptor(root, info.ID)
		if err != nil {
			return nil, NewError(ErrorCodeManifestCorrupt, "load install descriptor").
				WithContext("path", path).
				WithCause(err)
		}
		return desc, nil
	}

	desc, raw, err := o.meta.Descriptor(ctx, info)
	if err != nil {
		return nil, NewError(ErrorCodeNetworkFailure, "fetch install descriptor").
			WithContext("version", info.ID).
			WithCause(err)
	}
	if err := writeFile(path, raw); err != nil {
		return nil, fmt.Errorf("persist install descriptor: %w", err)
	}
	return desc, nil
}

// ensureClientJar fetches the client executable artifact unless it is
// already on disk.
func (o *Orchestrator) ensureClientJar(ctx context.Context, root, versionID string, desc *mojang.Descriptor) error {
	url := desc.Downloads.Client.URL
	if url == "" {
		return NewError(ErrorCodeManifestCorrupt, "descriptor has no client download").
			WithContext("version", versionID)
	}
	dest := mojang.ClientJarPath(root, versionID)
	if err := o.meta.DownloadArtifact(ctx, url, dest); err != nil {
		return NewError(ErrorCodeNetworkFailure, "fetch client artifact").
			WithContext("version", versionID).
			WithCause(err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
