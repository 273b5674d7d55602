// Package schemaver holds the semantic schema version of a definition set
// and the two files it is persisted in: the hand-editable canonical version
// and the machine-written stamp of the last successful regeneration.
package schemaver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/schemagen/errors"
)

// Version is a three-part schema version, totally ordered by
// (major, minor, patch).
type Version struct {
	Major uint64 `toml:"major"`
	Minor uint64 `toml:"minor"`
	Patch uint64 `toml:"patch"`
}

// Parse reads a strict "major.minor.patch" version.
// Prerelease and build metadata are rejected.
func Parse(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "invalid schema version %q", s)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, errors.Newf("invalid schema version %q: prerelease and metadata are not allowed", s)
	}
	return Version{Major: sv.Major(), Minor: sv.Minor(), Patch: sv.Patch()}, nil
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or higher than o.
func (v Version) Compare(o Version) int {
	return v.semver().Compare(o.semver())
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.semver().LessThan(o.semver())
}

// Apply increments the highest requested axis by one and leaves the other
// axes untouched. A bump with no axis set returns v unchanged.
func (v Version) Apply(b Bump) Version {
	switch {
	case b.Major:
		v.Major++
	case b.Minor:
		v.Minor++
	case b.Patch:
		v.Patch++
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump is a staleness vote: which version axes a generator wants incremented.
type Bump struct {
	Major bool
	Minor bool
	Patch bool
}

// Or combines two votes axis by axis.
func (b Bump) Or(o Bump) Bump {
	return Bump{
		Major: b.Major || o.Major,
		Minor: b.Minor || o.Minor,
		Patch: b.Patch || o.Patch,
	}
}

// Any reports whether at least one axis is requested.
func (b Bump) Any() bool {
	return b.Major || b.Minor || b.Patch
}

func (b Bump) String() string {
	switch {
	case b.Major:
		return "major"
	case b.Minor:
		return "minor"
	case b.Patch:
		return "patch"
	default:
		return "none"
	}
}
