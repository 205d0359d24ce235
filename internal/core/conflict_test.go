package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"metarules/internal/types"
)

func capability(name string) types.Capability {
	return types.Capability{Group: "org.example", Name: name, Version: "1.0.0"}
}

func TestIdenticalCapabilitySetsAreExclusiveAlternatives(t *testing.T) {
	component := &types.Component{
		ID: types.ModuleIdentity{Group: "org.example", Name: "lib", Version: "1.0.0"},
		Variants: []*types.Variant{
			{Name: "jdk8", Capabilities: []types.Capability{capability("core")}},
			{Name: "jdk17", Capabilities: []types.Capability{capability("core")}},
		},
	}
	require.Empty(t, DetectOverlaps(component))
}

func TestPartialOverlapIsFlagged(t *testing.T) {
	component := &types.Component{
		ID: types.ModuleIdentity{Group: "org.example", Name: "lib", Version: "1.0.0"},
		Variants: []*types.Variant{
			{Name: "runtime", Capabilities: []types.Capability{capability("core")}},
			{Name: "runtime-native-x86", Capabilities: []types.Capability{capability("core"), capability("native")}},
		},
	}
	advisories := DetectOverlaps(component)
	require.Len(t, advisories, 1)
	require.Equal(t, types.AdvisoryCapabilityOverlap, advisories[0].Code)
	require.Contains(t, advisories[0].Message, "org.example:core")
}

func TestDisjointOrEmptyCapabilitySetsPass(t *testing.T) {
	component := &types.Component{
		ID: types.ModuleIdentity{Group: "org.example", Name: "lib", Version: "1.0.0"},
		Variants: []*types.Variant{
			{Name: "api"},
			{Name: "runtime", Capabilities: []types.Capability{capability("core")}},
			{Name: "docs", Capabilities: []types.Capability{capability("documentation")}},
		},
	}
	require.Empty(t, DetectOverlaps(component))
}

// mockSelector stands in for the external resolution algorithm: when a
// flagged component is selected without a disambiguating attribute
// request, selection fails with the ambiguous-variant error. The
// detector itself never raises it.
func mockSelector(component *types.Component, requestedAttributes map[string]string) error {
	if len(requestedAttributes) > 0 {
		return nil
	}
	for _, advisory := range component.Advisories {
		if advisory.Code == types.AdvisoryCapabilityOverlap {
			names := make([]string, 0, len(component.Variants))
			for _, variant := range component.Variants {
				names = append(names, variant.Name)
			}
			return NewAmbiguousVariantError(component.ID, names)
		}
	}
	return nil
}

func TestSelectionBoundaryFailsOnUndisambiguatedOverlap(t *testing.T) {
	component := &types.Component{
		ID: types.ModuleIdentity{Group: "org.example", Name: "lib", Version: "1.0.0"},
		Variants: []*types.Variant{
			{Name: "runtime", Capabilities: []types.Capability{capability("core")}},
			{Name: "runtime-native-x86", Capabilities: []types.Capability{capability("core"), capability("native")}},
		},
	}
	component.Advisories = DetectOverlaps(component)
	component.Freeze()

	err := mockSelector(component, nil)
	require.Error(t, err)
	require.True(t, IsAmbiguousVariantError(err))

	require.NoError(t, mockSelector(component, map[string]string{"arch": "x86-64"}))
}
