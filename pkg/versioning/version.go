// Package versioning holds the two independent version layers of the
// document model: per-node integer versions checked by a Gate before
// rendering, and document-level semantic versions that decide migration
// eligibility.
package versioning

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a semantic version following SemVer 2.0.0.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// String returns the string representation of the version.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Parse parses a full major.minor.patch version, with an optional leading
// "v". Partial versions such as "1.0" are rejected.
func Parse(version string) (*Version, error) {
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("invalid version string %q: %w", version, err)
	}
	return fromSemver(sv), nil
}

// MustParse is like Parse but panics on error. For constants.
func MustParse(version string) Version {
	v, err := Parse(version)
	if err != nil {
		panic(err)
	}
	return *v
}

func fromSemver(sv *semver.Version) *Version {
	return &Version{
		Major:      int(sv.Major()),
		Minor:      int(sv.Minor()),
		Patch:      int(sv.Patch()),
		Prerelease: sv.Prerelease(),
		Build:      sv.Metadata(),
	}
}

func (v Version) semver() *semver.Version {
	return semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), v.Prerelease, v.Build)
}

// Compare returns -1 if v < other, 0 if equal, 1 if v > other. Pre-release
// versions sort before their release; build metadata is ignored.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

// IsCompatibleWith reports whether a consumer at v can read data produced
// at other: majors match and v's (minor, patch) is at least other's.
func (v Version) IsCompatibleWith(other Version) bool {
	if v.Major != other.Major {
		return false
	}
	return compareTriple(v, other) >= 0
}

// CanMigrateTo reports whether target is at or ahead of v, comparing
// (major, minor, patch) only.
func (v Version) CanMigrateTo(target Version) bool {
	return compareTriple(v, target) <= 0
}

// Satisfies reports whether v matches a constraint such as ">= 1.2, < 2".
func (v Version) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	return c.Check(v.semver()), nil
}

// IsZero reports whether v is the zero value.
func (v Version) IsZero() bool { return v == Version{} }

// MarshalText encodes v as its string form, so JSON and YAML carry "1.2.3".
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(data []byte) error {
	p, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = *p
	return nil
}

// IncrementMajor returns a new version with major incremented.
func (v Version) IncrementMajor() Version {
	return Version{Major: v.Major + 1}
}

// IncrementMinor returns a new version with minor incremented.
func (v Version) IncrementMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// IncrementPatch returns a new version with patch incremented.
func (v Version) IncrementPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

func compareTriple(a, b Version) int {
	for _, d := range [][2]int{{a.Major, b.Major}, {a.Minor, b.Minor}, {a.Patch, b.Patch}} {
		switch {
		case d[0] < d[1]:
			return -1
		case d[0] > d[1]:
			return 1
		}
	}
	return 0
}
