package types

// MetadataFormat identifies the shape of a published metadata document
// before normalization.
type MetadataFormat string

const (
	// FormatExtended is the variant-aware format; variants, attributes,
	// capabilities, and files map near-verbatim into the model.
	FormatExtended MetadataFormat = "extended"

	// FormatFlat is the single-dependency-list descriptor with scope
	// markers but no native variant concept.
	FormatFlat MetadataFormat = "flat"

	// FormatConfigurations is the named-configuration format with
	// configuration inheritance but no attribute concept.
	FormatConfigurations MetadataFormat = "configurations"
)

// RuleOrigin records where a rule registration was declared.
type RuleOrigin string

const (
	// OriginSettings marks registrations declared at the aggregation
	// (settings) level, shared across all build units.
	OriginSettings RuleOrigin = "settings"

	// OriginProject marks registrations declared by an individual
	// build unit.
	OriginProject RuleOrigin = "project"
)

// PrecedenceMode selects how settings-level and project-level rule
// registrations for the same component are merged.
type PrecedenceMode string

const (
	// PrecedencePreferProject makes project registrations fully replace
	// settings registrations for a component once the project declares
	// any. This is the default.
	PrecedencePreferProject PrecedenceMode = "preferProject"

	// PrecedencePreferSettings runs settings registrations in addition
	// to project ones, logging a warning for the shadowed declaration.
	PrecedencePreferSettings PrecedenceMode = "preferSettings"

	// PrecedenceEnforceSettings makes any project registration matching
	// a component a hard error before rule application starts.
	PrecedenceEnforceSettings PrecedenceMode = "enforceSettings"
)

// FlatScope is the declared scope of a dependency in a flat descriptor.
type FlatScope string

const (
	FlatScopeCompile  FlatScope = "compile"
	FlatScopeRuntime  FlatScope = "runtime"
	FlatScopeProvided FlatScope = "provided"
	FlatScopeTest     FlatScope = "test"
)
