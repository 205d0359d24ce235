package core

import (
	"bytes"
	"context"
	"crypto/sha256"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"metarules/internal/ports"
	"metarules/internal/types"
)

// Engine applies the registry's matching rules to a component, in the
// documented order, with per-rule status re-validation. When a Cache
// is attached, cacheable rules are keyed by (rule id, configuration
// payload, component identity) and satisfied by replaying the recorded
// mutation log instead of re-executing rule logic.
type Engine struct {
	Registry *Registry
	Cache    ports.MutationCachePort
}

func NewEngine(registry *Registry) Engine {
	return Engine{Registry: registry}
}

// Apply runs every matching rule against the component, mutating it in
// place. On error the component's resolution is failed; the error
// never affects sibling components. Apply does not freeze the
// component; the pipeline freezes it after conflict detection.
func (e Engine) Apply(ctx context.Context, component *types.Component) (*types.Component, error) {
	if e.Registry == nil || component == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("engine requires a registry and a component")
	}
	if component.Frozen() {
		return nil, NewMutationOutsideRuleError(component.ID, "")
	}
	regs, err := e.Registry.registrationsFor(ctx, component.ID)
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.applyRegistration(ctx, component, reg); err != nil {
			return nil, err
		}
		// Scheme edits must leave an already-assigned status valid.
		if err := ValidateStatus(component); err != nil {
			return nil, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("component", component.ID.String()).
		Int("rules", len(regs)).
		Msg("rule application completed")
	return component, nil
}

func (e Engine) applyRegistration(ctx context.Context, component *types.Component, reg Registration) error {
	var key []byte
	if reg.Rule.Cacheable() && e.Cache != nil {
		key = cacheKey(reg, component.ID)
		value, ok, err := e.Cache.Get(key)
		if err != nil {
			return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
		}
		if ok {
			var recorded types.MutationLog
			if err := yaml.Unmarshal(value, &recorded); err != nil {
				return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
			}
			if err := ReplayLog(component, reg.Rule.ID(), recorded); err != nil {
				return err
			}
			log.Ctx(ctx).Debug().
				Str("rule", reg.Rule.ID()).
				Str("component", component.ID.String()).
				Msg("replayed cached mutation log")
			return nil
		}
	}

	mctx := newComponentContext(component, reg.Rule.ID())
	err := reg.Rule.Execute(mctx)
	mctx.finish()
	if err != nil {
		if isTaxonomyError(err) {
			return err
		}
		return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
	}

	if key != nil {
		value, err := yaml.Marshal(mctx.log())
		if err != nil {
			return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
		}
		existing, ok, err := e.Cache.Get(key)
		if err != nil {
			return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
		}
		if ok {
			if !bytes.Equal(existing, value) {
				return NewIsolationViolationError(component.ID, reg.Rule.ID())
			}
			return nil
		}
		if err := e.Cache.Put(key, value); err != nil {
			return NewComponentRuleFailure(component.ID, reg.Rule.ID(), err)
		}
	}
	return nil
}

// cacheKey derives the cache-key tuple (rule identity, configuration
// payload, component identity+version) as an opaque digest.
func cacheKey(reg Registration, id types.ModuleIdentity) []byte {
	h := sha256.New()
	h.Write([]byte(reg.Rule.ID()))
	h.Write([]byte{0})
	h.Write(reg.Payload)
	h.Write([]byte{0})
	h.Write([]byte(id.String()))
	return h.Sum(nil)
}

// isTaxonomyError reports whether the error already carries component
// coordinates from the mutation API, in which case wrapping it as a
// generic rule failure would only obscure the kind.
func isTaxonomyError(err error) bool {
	return IsDuplicateVariantError(err) ||
		IsNoSuchVariantError(err) ||
		IsMutationOutsideRuleError(err) ||
		IsInvalidStatusError(err)
}
