package core

import (
	"fmt"
	"sort"

	"metarules/internal/shared"
	"metarules/internal/types"
)

// DetectOverlaps runs the structural capability check on a finished
// component. Two variants with identical capability sets are the
// intended exclusive-alternative idiom and pass silently. Partially
// overlapping sets are flagged with an advisory, because attribute
// matching alone cannot disambiguate them at selection time; the
// resolution algorithm is expected to fail such a selection with an
// ambiguous-variant error rather than this stage failing the
// component.
func DetectOverlaps(c *types.Component) []types.Advisory {
	var advisories []types.Advisory
	for i := 0; i < len(c.Variants); i++ {
		for j := i + 1; j < len(c.Variants); j++ {
			a, b := c.Variants[i], c.Variants[j]
			overlap := capabilityOverlap(a, b)
			if overlap == "" {
				continue
			}
			advisories = append(advisories, types.Advisory{
				Code: types.AdvisoryCapabilityOverlap,
				Message: fmt.Sprintf("variants %s and %s both provide capability %s but their capability sets differ",
					a.Name, b.Name, overlap),
			})
		}
	}
	return advisories
}

// capabilityOverlap returns one shared capability key when the two
// variants' capability sets partially overlap, or empty when the sets
// are disjoint, empty, or identical.
func capabilityOverlap(a *types.Variant, b *types.Variant) string {
	if len(a.Capabilities) == 0 || len(b.Capabilities) == 0 {
		return ""
	}
	setA := capabilityKeys(a)
	setB := capabilityKeys(b)

	var sharedKeys []string
	identical := len(setA) == len(setB)
	for key := range setA {
		if _, ok := setB[key]; ok {
			sharedKeys = append(sharedKeys, key)
		} else {
			identical = false
		}
	}
	if len(sharedKeys) == 0 {
		return ""
	}
	if identical && len(sharedKeys) == len(setB) {
		return ""
	}
	sort.Strings(sharedKeys)
	return sharedKeys[0]
}

func capabilityKeys(v *types.Variant) map[string]struct{} {
	keys := make(map[string]struct{}, len(v.Capabilities))
	for _, capability := range v.Capabilities {
		keys[shared.CapabilityKey(capability)] = struct{}{}
	}
	return keys
}
