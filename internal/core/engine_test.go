package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"metarules/internal/types"
)

type recordingCache struct {
	entries map[string][]byte
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]byte{}}
}

func (c *recordingCache) Get(key []byte) ([]byte, bool, error) {
	value, ok := c.entries[string(key)]
	return value, ok, nil
}

func (c *recordingCache) Put(key []byte, value []byte) error {
	if _, ok := c.entries[string(key)]; !ok {
		c.entries[string(key)] = value
	}
	return nil
}

func TestEngineAppliesAllScopeBeforeSpecific(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewRule("specific", nil, func(mctx *ComponentContext) error {
			return mctx.SetComponentAttribute("origin", "specific")
		}),
		ScopeModule("org.example", "lib"),
		types.OriginSettings,
	))
	require.NoError(t, registry.Register(
		NewRule("general", nil, func(mctx *ComponentContext) error {
			return mctx.SetComponentAttribute("origin", "general")
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	component := testComponent()
	_, err := NewEngine(registry).Apply(t.Context(), component)
	require.NoError(t, err)

	// Specific registrations run after all-scope ones so specific
	// corrections override general ones.
	require.Equal(t, "specific", component.Attributes["origin"])
}

func TestEngineCacheableRuleReplaysFromCache(t *testing.T) {
	executions := 0
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewCacheableRule("add-native", map[string]string{"arch": "x86-64"}, func(mctx *ComponentContext) error {
			executions++
			vctx, err := mctx.AddVariantFrom("runtime-native", "runtime")
			if err != nil {
				return err
			}
			return vctx.SetAttribute("arch", "x86-64")
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	engine := Engine{Registry: registry, Cache: newRecordingCache()}

	first := testComponent()
	_, err := engine.Apply(t.Context(), first)
	require.NoError(t, err)

	second := testComponent()
	_, err = engine.Apply(t.Context(), second)
	require.NoError(t, err)

	require.Equal(t, 1, executions)
	if diff := cmp.Diff(first.Variants, second.Variants); diff != "" {
		t.Fatalf("cached replay diverged from execution (-want +got):\n%s", diff)
	}
}

func TestEngineCacheKeyIncludesPayload(t *testing.T) {
	executions := 0
	mkRule := func(arch string) Rule {
		return NewCacheableRule("add-native", map[string]string{"arch": arch}, func(mctx *ComponentContext) error {
			executions++
			return mctx.SetComponentAttribute("arch", arch)
		})
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register(mkRule("x86-64"), ScopeAll(), types.OriginSettings))
	require.NoError(t, registry.Register(mkRule("arm64"), ScopeAll(), types.OriginSettings))

	engine := Engine{Registry: registry, Cache: newRecordingCache()}
	_, err := engine.Apply(t.Context(), testComponent())
	require.NoError(t, err)

	// Same rule id, different payload: both must execute.
	require.Equal(t, 2, executions)
}

// divergentCache misses on the first lookup and afterwards claims a
// conflicting stored value, simulating a racing writer that recorded a
// different effect for the same key.
type divergentCache struct {
	lookups   int
	divergent []byte
}

func (c *divergentCache) Get([]byte) ([]byte, bool, error) {
	c.lookups++
	if c.lookups == 1 {
		return nil, false, nil
	}
	return c.divergent, true, nil
}

func (c *divergentCache) Put([]byte, []byte) error { return nil }

func TestEngineDivergentCachedEffectIsIsolationViolation(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewCacheableRule("set-status", nil, func(mctx *ComponentContext) error {
			return mctx.SetStatus("release")
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	engine := Engine{Registry: registry, Cache: &divergentCache{divergent: []byte("ops:\n    - kind: setStatus\n      value: integration\n")}}
	_, err := engine.Apply(t.Context(), testComponent())
	require.Error(t, err)
	require.True(t, IsIsolationViolationError(err))
}

func TestEngineRuleErrorBecomesComponentRuleFailure(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewRule("broken", nil, func(*ComponentContext) error {
			return errors.New("boom")
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	_, err := NewEngine(registry).Apply(t.Context(), testComponent())
	require.Error(t, err)
	require.True(t, IsComponentRuleFailure(err))
}

func TestEngineKeepsMutationErrorKinds(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewRule("dup", nil, func(mctx *ComponentContext) error {
			_, err := mctx.AddVariant("runtime")
			return err
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	_, err := NewEngine(registry).Apply(t.Context(), testComponent())
	require.Error(t, err)
	require.True(t, IsDuplicateVariantError(err))
}

func TestEngineRevalidatesStatusAfterSchemeEdit(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(
		NewRule("set-status", nil, func(mctx *ComponentContext) error {
			return mctx.SetStatus("milestone")
		}),
		ScopeAll(),
		types.OriginSettings,
	))
	require.NoError(t, registry.Register(
		NewRule("narrow-scheme", nil, func(mctx *ComponentContext) error {
			return mctx.SetStatusScheme([]string{"integration", "release"})
		}),
		ScopeAll(),
		types.OriginSettings,
	))

	_, err := NewEngine(registry).Apply(t.Context(), testComponent())
	require.Error(t, err)
	require.True(t, IsInvalidStatusError(err))
}

func TestEngineRejectsFrozenComponent(t *testing.T) {
	component := testComponent()
	component.Freeze()
	_, err := NewEngine(NewRegistry()).Apply(t.Context(), component)
	require.Error(t, err)
	require.True(t, IsMutationOutsideRuleError(err))
}
