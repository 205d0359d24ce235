package core

import (
	"fmt"
	"path"

	"metarules/internal/types"
)

// ComponentContext is the mutation surface handed to a rule. Every
// successful call is recorded as a MutationOp and applied to the
// component's variant table immediately, so later calls validate
// against the then-current state. The ordered op log is the rule's
// entire effect: replaying it onto the same input reproduces the same
// final state, which is what the mutation cache stores.
type ComponentContext struct {
	component *types.Component
	ruleID    string
	active    bool
	ops       []types.MutationOp
}

func newComponentContext(component *types.Component, ruleID string) *ComponentContext {
	return &ComponentContext{component: component, ruleID: ruleID, active: true}
}

// finish closes the context. Mutation calls after finish fail.
func (m *ComponentContext) finish() {
	m.active = false
}

func (m *ComponentContext) log() types.MutationLog {
	return types.MutationLog{Ops: append([]types.MutationOp(nil), m.ops...)}
}

// Component exposes the component under mutation for read access
// (identity, current attributes). Rules must not retain the pointer.
func (m *ComponentContext) Component() *types.Component {
	return m.component
}

func (m *ComponentContext) record(op types.MutationOp) error {
	if !m.active || m.component.Frozen() {
		return NewMutationOutsideRuleError(m.component.ID, m.ruleID)
	}
	if err := applyOp(m.component, m.ruleID, op); err != nil {
		return err
	}
	m.ops = append(m.ops, op)
	return nil
}

// AllVariants runs fn against every variant existing at call time.
// Variants the rule adds afterwards are not revisited.
func (m *ComponentContext) AllVariants(fn func(*VariantContext) error) error {
	if !m.active {
		return NewMutationOutsideRuleError(m.component.ID, m.ruleID)
	}
	names := make([]string, 0, len(m.component.Variants))
	for _, variant := range m.component.Variants {
		names = append(names, variant.Name)
	}
	for _, name := range names {
		if err := fn(&VariantContext{ctx: m, name: name}); err != nil {
			return err
		}
	}
	return nil
}

// WithVariant runs fn against the named variant.
func (m *ComponentContext) WithVariant(name string, fn func(*VariantContext) error) error {
	if !m.active {
		return NewMutationOutsideRuleError(m.component.ID, m.ruleID)
	}
	if m.component.Variant(name) == nil {
		return NewNoSuchVariantError(m.component.ID, m.ruleID, name)
	}
	return fn(&VariantContext{ctx: m, name: name})
}

// AddVariant creates a new empty variant.
func (m *ComponentContext) AddVariant(name string) (*VariantContext, error) {
	if err := m.record(types.MutationOp{Kind: types.OpAddVariant, Variant: name}); err != nil {
		return nil, err
	}
	return &VariantContext{ctx: m, name: name}, nil
}

// AddVariantFrom creates a new variant seeded with a deep copy of the
// base variant's attributes, capabilities, dependencies, constraints,
// and files.
func (m *ComponentContext) AddVariantFrom(name string, base string) (*VariantContext, error) {
	if err := m.record(types.MutationOp{Kind: types.OpAddVariant, Variant: name, Base: base}); err != nil {
		return nil, err
	}
	return &VariantContext{ctx: m, name: name}, nil
}

// SetStatus sets the component-level status attribute.
func (m *ComponentContext) SetStatus(value string) error {
	return m.record(types.MutationOp{Kind: types.OpSetStatus, Value: value})
}

// SetStatusScheme replaces the component's status scheme, ordered
// least to most mature. The engine re-validates the current status
// against the new scheme after the rule finishes.
func (m *ComponentContext) SetStatusScheme(values []string) error {
	return m.record(types.MutationOp{Kind: types.OpSetStatusScheme, Values: append([]string(nil), values...)})
}

// SetBelongsTo sets the virtual-platform identity used for version
// alignment across sibling components.
func (m *ComponentContext) SetBelongsTo(id types.ModuleIdentity) error {
	return m.record(types.MutationOp{Kind: types.OpSetBelongsTo, Identity: &id})
}

// SetComponentAttribute sets a component-level attribute.
func (m *ComponentContext) SetComponentAttribute(key string, value string) error {
	return m.record(types.MutationOp{Kind: types.OpSetComponentAttribute, Key: key, Value: value})
}

// VariantContext addresses one variant by name through its owning
// ComponentContext.
type VariantContext struct {
	ctx  *ComponentContext
	name string
}

func (v *VariantContext) Name() string {
	return v.name
}

// SetAttribute sets one variant attribute. Last write wins on key
// collision, within one rule and across rules.
func (v *VariantContext) SetAttribute(key string, value string) error {
	return v.ctx.record(types.MutationOp{Kind: types.OpSetVariantAttribute, Variant: v.name, Key: key, Value: value})
}

// AddCapability adds a capability, replacing the version of an
// existing capability with the same group and name.
func (v *VariantContext) AddCapability(c types.Capability) error {
	return v.ctx.record(types.MutationOp{Kind: types.OpAddCapability, Variant: v.name, Capability: &c})
}

// RemoveCapability removes every capability with the given group and
// name, regardless of version.
func (v *VariantContext) RemoveCapability(group string, name string) error {
	return v.ctx.record(types.MutationOp{
		Kind:       types.OpRemoveCapability,
		Variant:    v.name,
		Capability: &types.Capability{Group: group, Name: name},
	})
}

// AddDependency appends a dependency to the variant's ordered list.
func (v *VariantContext) AddDependency(dep types.Dependency) error {
	return v.ctx.record(types.MutationOp{Kind: types.OpAddDependency, Variant: v.name, Dependency: &dep})
}

// RemoveDependency removes every dependency targeting the module.
func (v *VariantContext) RemoveDependency(group string, name string) error {
	return v.ctx.record(types.MutationOp{
		Kind:       types.OpRemoveDependency,
		Variant:    v.name,
		Dependency: &types.Dependency{Group: group, Name: name},
	})
}

// AddConstraint appends a dependency constraint.
func (v *VariantContext) AddConstraint(constraint types.DependencyConstraint) error {
	return v.ctx.record(types.MutationOp{Kind: types.OpAddConstraint, Variant: v.name, Constraint: &constraint})
}

// RemoveConstraint removes every constraint targeting the module.
func (v *VariantContext) RemoveConstraint(group string, name string) error {
	return v.ctx.record(types.MutationOp{
		Kind:       types.OpRemoveConstraint,
		Variant:    v.name,
		Constraint: &types.DependencyConstraint{Group: group, Name: name},
	})
}

// RemoveAllFiles clears the variant's file set. Required before
// redefining files on a variant copied from a base, otherwise the
// base's files stay attached alongside the new ones.
func (v *VariantContext) RemoveAllFiles() error {
	return v.ctx.record(types.MutationOp{Kind: types.OpRemoveAllFiles, Variant: v.name})
}

// AddFile attaches a file by path, possibly relative to the metadata
// document's location.
func (v *VariantContext) AddFile(filePath string) error {
	return v.ctx.record(types.MutationOp{
		Kind:    types.OpAddFile,
		Variant: v.name,
		File:    &types.VariantFile{Name: path.Base(filePath), URL: filePath},
	})
}

// AddClassifiedFile attaches a file carrying a classifier.
func (v *VariantContext) AddClassifiedFile(filePath string, classifier string) error {
	return v.ctx.record(types.MutationOp{
		Kind:    types.OpAddFile,
		Variant: v.name,
		File:    &types.VariantFile{Name: path.Base(filePath), URL: filePath, Classifier: classifier},
	})
}

// ReplayLog applies a mutation log recorded by ruleID onto a
// component, yielding the same final state as the rule execution that
// produced it.
func ReplayLog(component *types.Component, ruleID string, log types.MutationLog) error {
	if component.Frozen() {
		return NewMutationOutsideRuleError(component.ID, ruleID)
	}
	for _, op := range log.Ops {
		if err := applyOp(component, ruleID, op); err != nil {
			return err
		}
	}
	return nil
}

// applyOp applies one op to the component's variant table. Ops that
// address a variant fail when the variant is absent; failures carry
// the rule the op was recorded under.
func applyOp(c *types.Component, ruleID string, op types.MutationOp) error {
	switch op.Kind {
	case types.OpAddVariant:
		if c.Variant(op.Variant) != nil {
			return NewDuplicateVariantError(c.ID, ruleID, op.Variant)
		}
		if op.Base != "" {
			base := c.Variant(op.Base)
			if base == nil {
				return NewNoSuchVariantError(c.ID, ruleID, op.Base)
			}
			copied := base.DeepCopy()
			copied.Name = op.Variant
			c.Variants = append(c.Variants, copied)
			return nil
		}
		c.Variants = append(c.Variants, &types.Variant{Name: op.Variant})
		return nil
	case types.OpSetStatus:
		if c.Attributes == nil {
			c.Attributes = map[string]string{}
		}
		c.Attributes[types.AttributeStatus] = op.Value
		return nil
	case types.OpSetStatusScheme:
		c.StatusScheme = append([]string(nil), op.Values...)
		return nil
	case types.OpSetBelongsTo:
		id := *op.Identity
		c.BelongsTo = &id
		return nil
	case types.OpSetComponentAttribute:
		if c.Attributes == nil {
			c.Attributes = map[string]string{}
		}
		c.Attributes[op.Key] = op.Value
		return nil
	}

	variant := c.Variant(op.Variant)
	if variant == nil {
		return NewNoSuchVariantError(c.ID, ruleID, op.Variant)
	}
	switch op.Kind {
	case types.OpSetVariantAttribute:
		if variant.Attributes == nil {
			variant.Attributes = map[string]string{}
		}
		variant.Attributes[op.Key] = op.Value
	case types.OpAddCapability:
		for i, existing := range variant.Capabilities {
			if existing.Group == op.Capability.Group && existing.Name == op.Capability.Name {
				variant.Capabilities[i] = *op.Capability
				return nil
			}
		}
		variant.Capabilities = append(variant.Capabilities, *op.Capability)
	case types.OpRemoveCapability:
		kept := variant.Capabilities[:0]
		for _, existing := range variant.Capabilities {
			if existing.Group == op.Capability.Group && existing.Name == op.Capability.Name {
				continue
			}
			kept = append(kept, existing)
		}
		variant.Capabilities = kept
	case types.OpAddDependency:
		variant.Dependencies = append(variant.Dependencies, op.Dependency.DeepCopy())
	case types.OpRemoveDependency:
		kept := variant.Dependencies[:0]
		for _, dep := range variant.Dependencies {
			if dep.Matches(op.Dependency.Group, op.Dependency.Name) {
				continue
			}
			kept = append(kept, dep)
		}
		variant.Dependencies = kept
	case types.OpAddConstraint:
		variant.Constraints = append(variant.Constraints, op.Constraint.DeepCopy())
	case types.OpRemoveConstraint:
		kept := variant.Constraints[:0]
		for _, constraint := range variant.Constraints {
			if constraint.Matches(op.Constraint.Group, op.Constraint.Name) {
				continue
			}
			kept = append(kept, constraint)
		}
		variant.Constraints = kept
	case types.OpRemoveAllFiles:
		variant.Files = nil
	case types.OpAddFile:
		variant.Files = append(variant.Files, *op.File)
	default:
		return fmt.Errorf("unknown mutation op kind: %s", op.Kind)
	}
	return nil
}
