package types

// RawDocument is the already-structured intermediate representation of
// a published metadata document. Parsing raw bytes into this shape is
// the format layer's concern; the adapters only translate it into the
// normalized component model. Exactly one of the format sections is
// expected to be populated, matching the declared format.
type RawDocument struct {
	Identity   ModuleIdentity    `yaml:"identity"`
	Attributes map[string]string `yaml:"attributes,omitempty"`

	Extended       *ExtendedDocument       `yaml:"extended,omitempty"`
	Flat           *FlatDocument           `yaml:"flat,omitempty"`
	Configurations *ConfigurationsDocument `yaml:"configurations,omitempty"`
}

// ExtendedDocument is the variant-aware published shape.
type ExtendedDocument struct {
	Variants []ExtendedVariant `yaml:"variants"`
}

// ExtendedVariant maps near-verbatim to a model Variant.
type ExtendedVariant struct {
	Name         string                 `yaml:"name"`
	Attributes   map[string]string      `yaml:"attributes,omitempty"`
	Capabilities []Capability           `yaml:"capabilities,omitempty"`
	Dependencies []Dependency           `yaml:"dependencies,omitempty"`
	Constraints  []DependencyConstraint `yaml:"constraints,omitempty"`
	Files        []VariantFile          `yaml:"files,omitempty"`
}

// FlatDependency is one entry of a flat descriptor's single dependency
// list.
type FlatDependency struct {
	Group    string    `yaml:"group"`
	Name     string    `yaml:"name"`
	Version  string    `yaml:"version,omitempty"`
	Scope    FlatScope `yaml:"scope,omitempty"`
	Optional bool      `yaml:"optional,omitempty"`

	Excludes []ExcludeRule `yaml:"excludes,omitempty"`
}

// FlatDocument is the flat descriptor shape: one dependency list with
// scope markers and a primary artifact, no variant concept.
type FlatDocument struct {
	Dependencies []FlatDependency `yaml:"dependencies,omitempty"`
	Files        []VariantFile    `yaml:"files,omitempty"`
}

// RawConfiguration is one named configuration of a configuration-list
// document. Extends names base configurations whose dependencies and
// files are inherited.
type RawConfiguration struct {
	Name         string           `yaml:"name"`
	Extends      []string         `yaml:"extends,omitempty"`
	Dependencies []FlatDependency `yaml:"dependencies,omitempty"`
	Files        []VariantFile    `yaml:"files,omitempty"`
}

// ConfigurationsDocument is the named-configuration shape with
// inheritance and no attribute concept.
type ConfigurationsDocument struct {
	Configurations []RawConfiguration `yaml:"configurations"`
}
