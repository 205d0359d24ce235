package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"metarules/internal/adapters"
	"metarules/internal/core"
	"metarules/internal/types"
)

func flatInput(name string) Input {
	return Input{
		Format: types.FormatFlat,
		Document: types.RawDocument{
			Identity: types.ModuleIdentity{Group: "org.example", Name: name, Version: "1.0.0"},
			Flat: &types.FlatDocument{
				Dependencies: []types.FlatDependency{
					{Group: "org.example", Name: "base", Version: "2.0"},
				},
			},
		},
	}
}

func TestProcessFreezesAndAttachesDefaultScheme(t *testing.T) {
	service := NewService(core.NewRegistry())
	outcome := service.Process(t.Context(), flatInput("lib"))
	require.NoError(t, outcome.Err)
	require.True(t, outcome.Component.Frozen())
	require.Equal(t, core.DefaultStatusScheme, outcome.Component.StatusScheme)
	require.Len(t, outcome.Component.Variants, 2)
}

func TestProcessAllIsolatesFailures(t *testing.T) {
	registry := core.NewRegistry()
	require.NoError(t, registry.Register(
		core.NewRule("fail-tool", nil, func(mctx *core.ComponentContext) error {
			_, err := mctx.AddVariant("runtime")
			return err
		}),
		core.ScopeModule("org.example", "tool"),
		types.OriginSettings,
	))
	service := NewService(registry)

	inputs := []Input{
		flatInput("lib"),
		flatInput("tool"),
		{Format: types.FormatExtended, Document: types.RawDocument{
			Identity: types.ModuleIdentity{Group: "org.example", Name: "broken", Version: "1.0.0"},
		}},
	}
	outcomes := service.ProcessAll(t.Context(), inputs)
	require.Len(t, outcomes, 3)

	require.NoError(t, outcomes[0].Err)
	require.True(t, outcomes[0].Component.Frozen())

	// The rule collides with the derived runtime variant and fails
	// only this component.
	require.Error(t, outcomes[1].Err)
	require.True(t, core.IsDuplicateVariantError(outcomes[1].Err))
	require.Nil(t, outcomes[1].Component)

	require.Error(t, outcomes[2].Err)
	require.True(t, core.IsMetadataMappingError(outcomes[2].Err))
}

func TestProcessAllStatusSchemeMutationMidChain(t *testing.T) {
	registry := core.NewRegistry()
	require.NoError(t, registry.Register(
		core.NewRule("promote", nil, func(mctx *core.ComponentContext) error {
			return mctx.SetStatus("milestone")
		}),
		core.ScopeAll(),
		types.OriginSettings,
	))
	require.NoError(t, registry.Register(
		core.NewRule("custom-scheme", nil, func(mctx *core.ComponentContext) error {
			return mctx.SetStatusScheme([]string{"snapshot", "milestone", "ga"})
		}),
		core.ScopeAll(),
		types.OriginSettings,
	))
	service := NewService(registry)

	outcome := service.Process(t.Context(), flatInput("lib"))
	require.NoError(t, outcome.Err)
	require.Equal(t, "milestone", outcome.Component.Status())
	require.Equal(t, []string{"snapshot", "milestone", "ga"}, outcome.Component.StatusScheme)
}

func TestProcessAllSharesCacheAcrossWorkers(t *testing.T) {
	registry := core.NewRegistry()
	require.NoError(t, registry.Register(
		core.NewCacheableRule("stamp", map[string]string{"key": "value"}, func(mctx *core.ComponentContext) error {
			return mctx.SetComponentAttribute("stamped", "true")
		}),
		core.ScopeAll(),
		types.OriginSettings,
	))
	service := NewService(registry)
	cache := service.Cache.(*adapters.MemoryMutationCache)

	inputs := []Input{flatInput("lib"), flatInput("tool"), flatInput("agent")}
	outcomes := service.ProcessAll(t.Context(), inputs)
	for _, outcome := range outcomes {
		require.NoError(t, outcome.Err)
		require.Equal(t, "true", outcome.Component.Attributes["stamped"])
	}
	// Distinct identities are distinct cache keys.
	require.Equal(t, 3, cache.Len())

	// Reprocessing an identical identity replays the recorded log.
	again := service.Process(t.Context(), flatInput("lib"))
	require.NoError(t, again.Err)
	require.Equal(t, 3, cache.Len())
}

func TestProcessAllCancelledContext(t *testing.T) {
	service := NewService(core.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := service.ProcessAll(ctx, []Input{flatInput("lib"), flatInput("tool")})
	for _, outcome := range outcomes {
		require.ErrorIs(t, outcome.Err, context.Canceled)
		require.Nil(t, outcome.Component)
	}
}

func TestProcessAdvisoriesSurviveFreeze(t *testing.T) {
	registry := core.NewRegistry()
	require.NoError(t, registry.Register(
		core.NewRule("add-native", nil, func(mctx *core.ComponentContext) error {
			vctx, err := mctx.AddVariantFrom("runtime-native-x86", "runtime")
			if err != nil {
				return err
			}
			if err := mctx.WithVariant("runtime", func(base *core.VariantContext) error {
				return base.AddCapability(types.Capability{Group: "org.example", Name: "core", Version: "1.0.0"})
			}); err != nil {
				return err
			}
			if err := vctx.AddCapability(types.Capability{Group: "org.example", Name: "core", Version: "1.0.0"}); err != nil {
				return err
			}
			return vctx.AddCapability(types.Capability{Group: "org.example", Name: "native", Version: "1.0.0"})
		}),
		core.ScopeAll(),
		types.OriginSettings,
	))
	service := NewService(registry)

	outcome := service.Process(t.Context(), flatInput("lib"))
	require.NoError(t, outcome.Err)
	require.Len(t, outcome.Component.Advisories, 1)
	require.Equal(t, types.AdvisoryCapabilityOverlap, outcome.Component.Advisories[0].Code)
	require.True(t, outcome.Component.Frozen())
}
