package compat

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed numeric release identifier (major.minor.patch).
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v >= other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch >= other.Patch
}

// Before reports whether v < other.
func (v Version) Before(other Version) bool {
	return !v.AtLeast(other)
}

// versionSuffixes are trailing markers stripped before numeric parsing.
// Covers pre-releases ("1.21.2-pre1"), release candidates ("1.21-rc1"),
// experimental snapshots ("1.21_experimental-snapshot-1") and combat
// tests ("1.16_combat-6").
var versionSuffixes = []string{
	"-pre",
	"-rc",
	"_experimental",
	"_combat",
	" pre-release",
	" release candidate",
}

// ParseVersion parses a numeric release identifier, tolerating the
// suffix and prefix noise real identifiers carry. Patch defaults to 0
// when absent. Returns false for identifiers with no leading
// major.minor pair (snapshots, alpha/beta tags, garbage).
func ParseVersion(id string) (Version, bool) {
	clean := strings.ToLower(strings.TrimSpace(id))
	clean = strings.TrimPrefix(clean, "minecraft ")

	for _, suffix := range versionSuffixes {
		if pos := strings.Index(clean, suffix); pos >= 0 {
			clean = clean[:pos]
			break
		}
	}

	parts := strings.Split(clean, ".")
	if len(parts) < 2 {
		return Version{}, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, false
	}

	patch := 0
	if len(parts) > 2 {
		patch = leadingDigits(parts[2])
	}

	return Version{Major: major, Minor: minor, Patch: patch}, true
}

// leadingDigits parses the numeric head of a patch component like
// "2-pre1", ignoring whatever trails it.
func leadingDigits(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// snapshotYear extracts the two-digit year prefix from a dated
// snapshot tag such as "24w14a" or "23w31a". Returns false when the
// identifier is not a dated snapshot.
func snapshotYear(id string) (int, bool) {
	lower := strings.ToLower(id)
	if len(lower) < 5 || !strings.Contains(lower, "w") {
		return 0, false
	}
	year, err := strconv.Atoi(lower[0:2])
	if err != nil {
		return 0, false
	}
	// The week digit must follow the "w" separator for this to be a
	// dated tag rather than a word that happens to contain a w.
	if lower[2] != 'w' {
		return 0, false
	}
	return year, true
}

// isLegacyTag reports whether an identifier is a historical alpha,
// beta, classic or pre-classic tag ("a1.2.6", "b1.7.3", "c0.30",
// "rd-132211", "inf-20100618").
func isLegacyTag(id string) bool {
	lower := strings.ToLower(strings.TrimSpace(id))
	if strings.HasPrefix(lower, "rd-") || strings.HasPrefix(lower, "inf-") {
		return true
	}
	if len(lower) < 2 {
		return false
	}
	switch lower[0] {
	case 'a', 'b', 'c':
		return lower[1] >= '0' && lower[1] <= '9'
	}
	return false
}

// isPrereleaseTag reports whether the identifier carries a pre-release
// or release-candidate marker, and returns its parsed base version.
func isPrereleaseTag(id string) (Version, bool) {
	lower := strings.ToLower(id)
	if !strings.Contains(lower, "-pre") && !strings.Contains(lower, "-rc") &&
		!strings.Contains(lower, "pre-release") && !strings.Contains(lower, "release candidate") {
		return Version{}, false
	}
	base, ok := ParseVersion(lower)
	return base, ok
}

// isExperimentalTag matches experimental and snapshot-marked
// identifiers such as "1.21_experimental-snapshot-1".
func isExperimentalTag(id string) bool {
	lower := strings.ToLower(id)
	return strings.Contains(lower, "experimental") || strings.Contains(lower, "snapshot")
}
