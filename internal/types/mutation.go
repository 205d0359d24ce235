package types

// MutationOpKind enumerates the recorded mutation operations. The set
// is closed: a rule can only affect a component through these ops,
// which is what makes a rule's effect serializable and replayable.
type MutationOpKind string

const (
	OpAddVariant            MutationOpKind = "addVariant"
	OpSetVariantAttribute   MutationOpKind = "setVariantAttribute"
	OpAddCapability         MutationOpKind = "addCapability"
	OpRemoveCapability      MutationOpKind = "removeCapability"
	OpAddDependency         MutationOpKind = "addDependency"
	OpRemoveDependency      MutationOpKind = "removeDependency"
	OpAddConstraint         MutationOpKind = "addConstraint"
	OpRemoveConstraint      MutationOpKind = "removeConstraint"
	OpRemoveAllFiles        MutationOpKind = "removeAllFiles"
	OpAddFile               MutationOpKind = "addFile"
	OpSetStatus             MutationOpKind = "setStatus"
	OpSetStatusScheme       MutationOpKind = "setStatusScheme"
	OpSetBelongsTo          MutationOpKind = "setBelongsTo"
	OpSetComponentAttribute MutationOpKind = "setComponentAttribute"
)

// MutationOp is one recorded edit in a rule's application log. Fields
// beyond Kind are populated per kind; unused fields stay zero so the
// yaml encoding is stable for cache keys and values.
type MutationOp struct {
	Kind    MutationOpKind `yaml:"kind"`
	Variant string         `yaml:"variant,omitempty"`
	Base    string         `yaml:"base,omitempty"`
	Key     string         `yaml:"key,omitempty"`
	Value   string         `yaml:"value,omitempty"`
	Values  []string       `yaml:"values,omitempty"`

	Capability *Capability           `yaml:"capability,omitempty"`
	Dependency *Dependency           `yaml:"dependency,omitempty"`
	Constraint *DependencyConstraint `yaml:"constraint,omitempty"`
	File       *VariantFile          `yaml:"file,omitempty"`
	Identity   *ModuleIdentity       `yaml:"identity,omitempty"`
}

// MutationLog is the ordered effect of one rule application on one
// component. Replaying the log onto the same input component yields
// the same final state as executing the rule.
type MutationLog struct {
	Ops []MutationOp `yaml:"ops"`
}
