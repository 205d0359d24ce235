package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionOrderSemver(t *testing.T) {
	order := NewVersionOrder()
	require.Positive(t, order.Compare("1.2.0", "1.1.9"))
	require.Negative(t, order.Compare("2.0.0-rc.1", "2.0.0"))
	require.Zero(t, order.Compare("1.0.0", "1.0.0"))
	require.Positive(t, order.Compare("1.0", "1.0-beta-2"))
}

func TestVersionOrderNonSemverFallback(t *testing.T) {
	order := NewVersionOrder()
	// Four-segment versions are not semver; the Debian ordering still
	// ranks them numerically per segment.
	require.Negative(t, order.Compare("1.0.0.2", "1.0.0.10"))
	require.Positive(t, order.Compare("1.0.0.10", "1.0.0.9"))
}
