// Package game is the vanilla installer and launch-command builder the
// orchestration layer drives: it materializes a version's descriptor,
// client jar, libraries and natives on disk, and assembles the java
// command line to start it.
package game

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
	"github.com/FrogdreamStudios/launcher/pkg/install"
	"github.com/FrogdreamStudios/launcher/pkg/mojang"
)

// nativesKey maps a GOOS value to the descriptor "natives" map key.
var nativesKey = map[string]string{
	"darwin":  "osx",
	"linux":   "linux",
	"windows": "windows",
}

// Installer performs standard vanilla installs.
type Installer struct {
	meta     *mojang.Client
	resolver *compat.Resolver
	host     compat.HostInfo
	log      *slog.Logger
}

// NewInstaller builds an installer for the current host.
func NewInstaller(meta *mojang.Client, resolver *compat.Resolver, log *slog.Logger) *Installer {
	if log == nil {
		log = slog.Default()
	}
	return &Installer{
		meta:     meta,
		resolver: resolver,
		host:     resolver.Host,
		log:      log,
	}
}

// Install materializes a version under root: descriptor, client jar,
// libraries and extracted natives. Fails typed when the version is
// already installed or when a required architecture-specific natives
// artifact was never published.
func (i *Installer) Install(ctx context.Context, root, versionID string) error {
	if _, err := os.Stat(mojang.NativesDir(root, versionID)); err == nil {
		return install.NewError(install.ErrorCodeAlreadyInstalled, "natives directory already present").
			WithContext("version", versionID)
	}

	manifest, err := i.meta.VersionManifest(ctx, root)
	if err != nil {
		return install.NewError(install.ErrorCodeNetworkFailure, "fetch version manifest").WithCause(err)
	}
	info, ok := manifest.Find(versionID)
	if !ok {
		return install.NewError(install.ErrorCodeVersionNotFound, "version not in manifest").
			WithContext("version", versionID)
	}

	desc, err := i.ensureDescriptor(ctx, root, info)
	if err != nil {
		return err
	}

	if desc.Downloads.Client.URL != "" {
		dest := mojang.ClientJarPath(root, versionID)
		if err := i.meta.DownloadArtifact(ctx, desc.Downloads.Client.URL, dest); err != nil {
			return install.NewError(install.ErrorCodeNetworkFailure, "fetch client artifact").
				WithContext("version", versionID).
				WithCause(err)
		}
	}

	if err := i.installLibraries(ctx, root, versionID, desc); err != nil {
		return err
	}

	i.log.Info("version installed", "version", versionID)
	return nil
}

func (i *Installer) ensureDescriptor(ctx context.Context, root string, info mojang.VersionInfo) (*mojang.Descriptor, error) {
	path := mojang.DescriptorPath(root, info.ID)
	if _, err := os.Stat(path); err == nil {
		return mojang.LoadDescriptor(root, info.ID)
	}
	desc, raw, err := i.meta.Descriptor(ctx, info)
	if err != nil {
		return nil, install.NewError(install.ErrorCodeNetworkFailure, "fetch install descriptor").
			WithContext("version", info.ID).
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, err
	}
	return desc, nil
}

// installLibraries fetches every library artifact plus the per-OS
// natives jars, then extracts the natives into the version's natives
// directory.
func (i *Installer) installLibraries(ctx context.Context, root, versionID string, desc *mojang.Descriptor) error {
	key := nativesKey[i.host.OS]
	libRoot := mojang.LibrariesRoot(root)

	var nativesJars []string
	for _, lib := range desc.Libraries {
		if a := lib.Downloads.Artifact; a != nil && a.URL != "" {
			dest := filepath.Join(libRoot, filepath.FromSlash(a.Path))
			if err := i.meta.DownloadArtifact(ctx, a.URL, dest); err != nil {
				return install.NewError(install.ErrorCodeNetworkFailure, "fetch library").
					WithContext("library", lib.Name).
					WithCause(err)
			}
		}

		classifier := i.nativesClassifier(lib, key)
		if classifier == "" {
			continue
		}
		art := lib.Downloads.Classifiers[classifier]
		if art == nil {
			return install.NewError(install.ErrorCodeNativesMissing, "no published natives artifact").
				WithContext("library", lib.Name).
				WithContext("classifier", classifier)
		}
		dest := filepath.Join(libRoot, filepath.FromSlash(art.Path))
		if art.URL != "" {
			if err := i.meta.DownloadArtifact(ctx, art.URL, dest); err != nil {
				return install.NewError(install.ErrorCodeNetworkFailure, "fetch natives").
					WithContext("library", lib.Name).
					WithCause(err)
			}
		}
		nativesJars = append(nativesJars, dest)
	}

	nativesDir := mojang.NativesDir(root, versionID)
	for _, jar := range nativesJars {
		if err := extractNatives(jar, nativesDir); err != nil {
			return fmt.Errorf("extract natives from %s: %w", filepath.Base(jar), err)
		}
	}
	return nil
}

// nativesClassifier returns the classifier the running host needs for a
// library, or "" when the library has no natives for this OS. On Apple
// Silicon the architecture-specific classifier is required even if the
// descriptor still names the plain OS one; descriptors that never
// published it fail typed, which is the signature the orchestrator's
// recovery path keys on.
func (i *Installer) nativesClassifier(lib mojang.Library, key string) string {
	classifier, ok := lib.Natives[key]
	if !ok {
		return ""
	}
	if i.host.IsAppleSilicon() {
		suffix := "-" + i.host.Arch
		if !strings.HasSuffix(classifier, suffix) {
			classifier += suffix
		}
	}
	return classifier
}

// extractNatives unpacks the platform binaries from a natives jar.
func extractNatives(jar, dir string) error {
	r, err := zip.OpenReader(jar)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		if err := extractFile(f, filepath.Join(dir, filepath.Base(f.Name))); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
