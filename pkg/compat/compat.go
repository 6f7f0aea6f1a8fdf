// Package compat maps game version identifiers to the runtime
// requirements a launch needs: the Java major version, whether the
// process must run under x86_64 emulation on Apple Silicon, and the
// JVM flags to pass. Resolution is pure and total: malformed
// identifiers never fail, they degrade toward broader compatibility
// (older Java, emulation on).
package compat

import "runtime"

// Java major versions shipped with the launcher.
const (
	JavaLegacy = 8
	JavaModern = 17
	JavaLatest = 21
)

// Numeric cutoffs for runtime selection.
var (
	java21Cutoff = Version{1, 20, 5}
	java17Cutoff = Version{1, 17, 0}
	g1gcCutoff   = Version{1, 13, 0}
)

// DefaultRosettaCutoff is the first release with native arm64 support.
// Versions before it need x86_64 emulation on Apple Silicon. The exact
// boundary is still awaiting product confirmation (1.19.0 vs 1.20.2);
// 1.19.0 is what every shipped launcher build used, so it stays the
// default until that lands. Override per Resolver when testing the
// other candidate.
var DefaultRosettaCutoff = Version{1, 19, 0}

// Snapshots dated 23w or later ship arm64 natives and run on Java 21.
const modernSnapshotYear = 23

// HostInfo identifies the CPU/OS combination resolution runs on.
type HostInfo struct {
	OS   string // GOOS value
	Arch string // GOARCH value
}

// CurrentHost returns the running host.
func CurrentHost() HostInfo {
	return HostInfo{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// IsAppleSilicon reports whether the host can and may need to emulate
// x86_64 binaries.
func (h HostInfo) IsAppleSilicon() bool {
	return h.OS == "darwin" && h.Arch == "arm64"
}

// Profile is the derived runtime requirement set for one version
// identifier. It carries no identity beyond its inputs and is
// recomputed on every resolution.
type Profile struct {
	// JavaMajor is the minimum Java major version the release runs on.
	JavaMajor int

	// NeedsRosetta is true when the release must run under x86_64
	// emulation on this host.
	NeedsRosetta bool

	// JVMFlags are the runtime flags to pass, in order. Placeholder
	// values (${natives_directory}, ${classpath}, ...) are substituted
	// by the command builder.
	JVMFlags []string
}

// Resolver computes compatibility profiles. The zero value is not
// usable; construct with NewResolver and override fields as needed.
type Resolver struct {
	Host          HostInfo
	RosettaCutoff Version
}

// NewResolver returns a resolver for the current host with the default
// Rosetta cutoff.
func NewResolver() *Resolver {
	return &Resolver{
		Host:          CurrentHost(),
		RosettaCutoff: DefaultRosettaCutoff,
	}
}

// Resolve maps a version identifier to its compatibility profile.
// Never fails: unparseable identifiers fall back to Java 8 and, on
// Apple Silicon, to emulation.
func (r *Resolver) Resolve(versionID string) Profile {
	major := r.javaMajor(versionID)
	return Profile{
		JavaMajor:    major,
		NeedsRosetta: r.needsRosetta(versionID),
		JVMFlags:     jvmFlags(versionID, major),
	}
}

func (r *Resolver) javaMajor(versionID string) int {
	if isLegacyTag(versionID) {
		return JavaLegacy
	}
	if year, ok := snapshotYear(versionID); ok && year >= modernSnapshotYear {
		return JavaLatest
	}
	if base, ok := isPrereleaseTag(versionID); ok && base.AtLeast(java21Cutoff) {
		return JavaLatest
	}
	if isExperimentalTag(versionID) {
		return JavaLatest
	}

	v, ok := ParseVersion(versionID)
	if !ok {
		// Safe minimum: an old runtime starts old releases and refuses
		// new ones loudly, the reverse crashes at class-load time.
		return JavaLegacy
	}
	switch {
	case v.AtLeast(java21Cutoff):
		return JavaLatest
	case v.AtLeast(java17Cutoff):
		return JavaModern
	default:
		return JavaLegacy
	}
}

func (r *Resolver) needsRosetta(versionID string) bool {
	if !r.Host.IsAppleSilicon() {
		return false
	}
	if isLegacyTag(versionID) {
		return true
	}
	if year, ok := snapshotYear(versionID); ok && year >= modernSnapshotYear {
		return false
	}
	if base, ok := isPrereleaseTag(versionID); ok {
		return base.Before(r.RosettaCutoff)
	}
	// Experimental tags get no exemption of their own: only their
	// numeric base decides, so "1.18_experimental-..." still emulates.
	v, ok := ParseVersion(versionID)
	if !ok {
		// Safe but slow: emulation runs everything, native arm64 only
		// runs releases that ship arm64 natives.
		return true
	}
	return v.Before(r.RosettaCutoff)
}

// jvmFlags assembles the ordered flag list for a release. The leading
// placeholders are always present; module flags track the Java major
// and the heap pair tracks the numeric version.
func jvmFlags(versionID string, javaMajor int) []string {
	flags := []string{
		"-Djava.library.path=${natives_directory}",
		"-Dminecraft.launcher.brand=${launcher_name}",
		"-Dminecraft.launcher.version=${launcher_version}",
		"-cp",
		"${classpath}",
	}

	if javaMajor >= JavaModern {
		flags = append(flags,
			"--add-opens=java.base/java.nio=ALL-UNNAMED",
			"--add-opens=java.base/sun.nio.ch=ALL-UNNAMED",
		)
	}
	if javaMajor >= JavaLatest {
		flags = append(flags,
			"--add-exports=java.base/sun.security.util=ALL-UNNAMED",
			"--add-exports=java.base/sun.security.x509=ALL-UNNAMED",
		)
	}

	if useG1Heap(versionID, javaMajor) {
		flags = append(flags, "-Xmx2G", "-XX:+UseG1GC")
	} else {
		flags = append(flags, "-Xmx1G")
	}
	return flags
}

// useG1Heap decides the heap/GC pair. Numeric versions compare against
// the 1.13.0 cutoff; identifiers with no numeric version (snapshots,
// experimental tags) follow the runtime generation instead.
func useG1Heap(versionID string, javaMajor int) bool {
	if v, ok := ParseVersion(versionID); ok {
		return v.AtLeast(g1gcCutoff)
	}
	return javaMajor >= JavaModern
}
