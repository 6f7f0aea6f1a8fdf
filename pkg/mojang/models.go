// Package mojang models the version metadata documents the launcher
// reads: the global version manifest and the per-version install
// descriptor. Only the fields this core reads are typed; components
// that rewrite a descriptor on disk work on the raw document instead
// so unknown fields survive the round trip.
package mojang

// VersionManifest is the global index of available versions.
type VersionManifest struct {
	Latest   LatestVersions `json:"latest"`
	Versions []VersionInfo  `json:"versions"`
}

// LatestVersions names the current release and snapshot.
type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionInfo is one manifest entry.
type VersionInfo struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	ReleaseTime string `json:"releaseTime,omitempty"`
}

// Find returns the entry for a version id.
func (m *VersionManifest) Find(id string) (VersionInfo, bool) {
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return VersionInfo{}, false
}

// IDs returns all version ids in manifest order (newest first).
func (m *VersionManifest) IDs() []string {
	ids := make([]string, 0, len(m.Versions))
	for _, v := range m.Versions {
		ids = append(ids, v.ID)
	}
	return ids
}

// Descriptor is the read-side view of a per-version install
// descriptor: main class, asset index, client download and library
// list. Mutating code must not marshal this type back to disk.
type Descriptor struct {
	ID               string     `json:"id"`
	MainClass        string     `json:"mainClass"`
	Assets           string     `json:"assets"`
	AssetIndex       AssetIndex `json:"assetIndex"`
	Downloads        Downloads  `json:"downloads"`
	Libraries        []Library  `json:"libraries"`
	Type             string     `json:"type"`
	MinecraftArgs    string     `json:"minecraftArguments,omitempty"`
	JavaVersionBlock *struct {
		MajorVersion int `json:"majorVersion"`
	} `json:"javaVersion,omitempty"`
}

// AssetIndex identifies the asset index a version uses.
type AssetIndex struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Downloads holds the version's primary artifacts.
type Downloads struct {
	Client Artifact `json:"client"`
}

// Library is one classpath or natives dependency.
type Library struct {
	Name      string            `json:"name"`
	Downloads LibraryDownloads  `json:"downloads"`
	Natives   map[string]string `json:"natives,omitempty"`
}

// LibraryDownloads holds a library's artifact and per-OS classifiers.
type LibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

// Artifact is one downloadable file.
type Artifact struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url"`
}
