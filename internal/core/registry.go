package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"metarules/internal/policies"
	"metarules/internal/types"
)

// Rule is a registered metadata transformation: a value of
// configuration data plus a function from a component to mutations.
// Both the inline-closure form (NewRule) and the isolated-type form
// (implementing this interface directly) are the same thing; they
// differ only in how the configuration payload is constructed.
//
// Configuration must return a plain serializable value. Captured live
// references to the registry, other components, or I/O layers violate
// rule isolation and break caching; registration fails when the
// payload cannot be serialized.
type Rule interface {
	ID() string
	Cacheable() bool
	Configuration() any
	Execute(mctx *ComponentContext) error
}

type funcRule struct {
	id        string
	cacheable bool
	config    any
	fn        func(*ComponentContext) error
}

func (r funcRule) ID() string                           { return r.id }
func (r funcRule) Cacheable() bool                      { return r.cacheable }
func (r funcRule) Configuration() any                   { return r.config }
func (r funcRule) Execute(mctx *ComponentContext) error { return r.fn(mctx) }

// NewRule wraps a closure as a non-cacheable rule.
func NewRule(id string, config any, fn func(*ComponentContext) error) Rule {
	return funcRule{id: id, config: config, fn: fn}
}

// NewCacheableRule wraps a closure as a cacheable rule. The caller
// asserts the closure is side-effect-free and idempotent for a given
// (id, config, component identity) key.
func NewCacheableRule(id string, config any, fn func(*ComponentContext) error) Rule {
	return funcRule{id: id, cacheable: true, config: config, fn: fn}
}

// Scope limits a registration to one component module. The zero value
// matches all components.
type Scope struct {
	Group string
	Name  string
}

// ScopeAll matches every component.
func ScopeAll() Scope {
	return Scope{}
}

// ScopeModule matches one (group, name) pair across all versions.
func ScopeModule(group string, name string) Scope {
	return Scope{Group: group, Name: name}
}

// All reports whether the scope matches every component.
func (s Scope) All() bool {
	return s.Group == "" && s.Name == ""
}

// Matches reports whether the scope covers the identity.
func (s Scope) Matches(id types.ModuleIdentity) bool {
	return s.All() || (s.Group == id.Group && s.Name == id.Name)
}

// Registration is one rule registration: the rule, its scope, its
// declaration origin, and the serialized configuration payload captured
// at registration time.
type Registration struct {
	Rule    Rule
	Scope   Scope
	Origin  types.RuleOrigin
	Payload []byte

	seq int
}

// Registry holds the ordered rule registrations for one resolution
// run. It is populated during the configuration phase, sealed, and
// then read freely by concurrent rule applications.
type Registry struct {
	mode   types.PrecedenceMode
	regs   []Registration
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// SetPrecedence selects the origin merge policy. Must be called before
// the registry is sealed.
func (r *Registry) SetPrecedence(mode types.PrecedenceMode) error {
	if r.sealed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("registry is sealed")
	}
	if err := policies.ValidateMode(mode); err != nil {
		return err
	}
	r.mode = mode
	return nil
}

// Register adds a rule registration. The rule's configuration payload
// is serialized immediately; a payload that cannot be serialized is an
// isolation violation and fails the registration.
func (r *Registry) Register(rule Rule, scope Scope, origin types.RuleOrigin) error {
	if r.sealed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("registry is sealed")
	}
	if rule == nil || rule.ID() == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("rule with non-empty id is required")
	}
	switch origin {
	case types.OriginSettings, types.OriginProject:
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown rule origin: %s", origin))
	}
	payload, err := yaml.Marshal(rule.Configuration())
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("rule %s configuration payload is not a serializable value", rule.ID())).
			WithCause(err)
	}
	r.regs = append(r.regs, Registration{
		Rule:    rule,
		Scope:   scope,
		Origin:  origin,
		Payload: payload,
		seq:     len(r.regs),
	})
	return nil
}

// Seal marks the registration table immutable. Concurrent component
// pipelines may read a sealed registry without synchronization.
func (r *Registry) Seal() {
	r.sealed = true
}

// registrationsFor selects and orders the registrations that apply to
// one component: origin precedence first, then all-scope registrations
// before module-specific ones so specific corrections can override
// general ones, registration order within each class.
func (r *Registry) registrationsFor(ctx context.Context, id types.ModuleIdentity) ([]Registration, error) {
	var matched []Registration
	projectDeclared := false
	for _, reg := range r.regs {
		if !reg.Scope.Matches(id) {
			continue
		}
		matched = append(matched, reg)
		if reg.Origin == types.OriginProject {
			projectDeclared = true
		}
	}
	selection, err := policies.SelectOrigins(r.mode, projectDeclared)
	if err != nil {
		return nil, err
	}
	if selection.Warn {
		log.Ctx(ctx).Warn().
			Str("component", id.String()).
			Msg("project rule registrations shadowed by settings precedence; both will run")
	}

	var selected []Registration
	for _, reg := range matched {
		if reg.Origin == types.OriginSettings && !selection.IncludeSettings {
			continue
		}
		if reg.Origin == types.OriginProject && !selection.IncludeProject {
			continue
		}
		selected = append(selected, reg)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.Scope.All() != b.Scope.All() {
			return a.Scope.All()
		}
		if a.Origin != b.Origin {
			return a.Origin == types.OriginSettings
		}
		return a.seq < b.seq
	})
	return selected, nil
}
