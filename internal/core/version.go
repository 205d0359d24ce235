package core

import (
	"strings"

	semver "github.com/Masterminds/semver/v3"
	debversion "github.com/knqyf263/go-deb-version"
)

// VersionOrder is the default VersionOrderPort. Module versions are
// not guaranteed to be semver ("1.0-beta-2", date stamps), so the
// comparison tries semver first and falls back to the Debian version
// ordering, which is total over arbitrary strings. Stateless, safe for
// concurrent use.
type VersionOrder struct{}

// NewVersionOrder returns the default version ordering.
func NewVersionOrder() VersionOrder {
	return VersionOrder{}
}

func (VersionOrder) Compare(a string, b string) int {
	if a == b {
		return 0
	}
	av, aErr := semver.NewVersion(a)
	bv, bErr := semver.NewVersion(b)
	if aErr == nil && bErr == nil {
		return av.Compare(bv)
	}
	ad, aErr := debversion.NewVersion(a)
	bd, bErr := debversion.NewVersion(b)
	if aErr == nil && bErr == nil {
		return ad.Compare(bd)
	}
	return strings.Compare(a, b)
}
