package addonbump

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrVersionNotFound is returned when no version attribute is found in the addon tag.
	ErrVersionNotFound = errors.New("unable to determine current version")
	// ErrInvalidVersion is returned for strings that are not major.minor.micro.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrUnknownKind is returned for increment kinds other than micro and minor.
	ErrUnknownKind = errors.New("unknown version type")
)

// addonVersionPattern matches the version attribute of the opening <addon> tag.
// The attributes may span several lines but the match never crosses the
// closing '>', so versions of child elements such as <import> are ignored.
var addonVersionPattern = regexp.MustCompile(`<addon\b[^>]*?\bversion="(\d+\.\d+\.\d+)"`)

// IncrementKind selects which version component is bumped.
type IncrementKind string

const (
	// Micro bumps the third component.
	Micro IncrementKind = "micro"
	// Minor bumps the second component and resets the third.
	Minor IncrementKind = "minor"
)

// IncrementKinds lists the accepted kinds in CLI order.
var IncrementKinds = []IncrementKind{Micro, Minor}

// ParseIncrementKind validates a version type argument.
func ParseIncrementKind(s string) (IncrementKind, error) {
	k := IncrementKind(s)
	if slices.Contains(IncrementKinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("%w %q: must be %q or %q", ErrUnknownKind, s, Micro, Minor)
}

// Version is a three-part major.minor.micro version.
type Version struct {
	Major int
	Minor int
	Micro int
}

// String returns the dot-joined form, e.g. "1.2.3".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// ParseVersion parses exactly three dot-separated non-negative integers.
// Prerelease and build suffixes are rejected.
func ParseVersion(s string) (Version, error) {
	canonical := "v" + s
	if !semver.IsValid(canonical) || semver.Canonical(canonical) != canonical {
		return Version{}, fmt.Errorf("%w %q: want major.minor.micro", ErrInvalidVersion, s)
	}

	parts := strings.Split(s, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Micro: nums[2]}, nil
}

// Increment returns the next version for kind. Micro bumps the third
// component; Minor bumps the second and resets the third to zero.
func (v Version) Increment(kind IncrementKind) (Version, error) {
	switch kind {
	case Micro:
		v.Micro++
	case Minor:
		v.Minor++
		v.Micro = 0
	default:
		return v, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return v, nil
}

// IncrementVersion parses version, increments it by kind and formats the result.
func IncrementVersion(version string, kind IncrementKind) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	next, err := v.Increment(kind)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// CurrentVersion extracts the version from the <addon> tag of an addon.xml.in
// document. It returns ErrVersionNotFound when the tag carries no
// version="X.Y.Z" attribute.
func CurrentVersion(content string) (string, error) {
	m := addonVersionPattern.FindStringSubmatch(content)
	if m == nil {
		return "", ErrVersionNotFound
	}
	return m[1], nil
}
