package types

// AttributeStatus is the only component-level attribute with
// resolution-time semantics: it feeds the maturity selector.
const AttributeStatus = "status"

// ModuleIdentity is the (group, name, version) coordinate triple of one
// resolved module version.
type ModuleIdentity struct {
	Group   string `yaml:"group"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

func (id ModuleIdentity) String() string {
	return id.Group + ":" + id.Name + ":" + id.Version
}

// Module returns the version-independent (group, name) pair.
func (id ModuleIdentity) Module() (string, string) {
	return id.Group, id.Name
}

// Capability identifies a provided contract. Within one resolution at
// most one variant per distinct (group, name) may be selected across
// the whole graph.
type Capability struct {
	Group   string `yaml:"group"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

func (c Capability) String() string {
	return c.Group + ":" + c.Name + ":" + c.Version
}

// VariantFile is a location descriptor for one artifact of a variant.
// URL may be relative to the metadata document's own location.
type VariantFile struct {
	Name       string `yaml:"name"`
	URL        string `yaml:"url"`
	Classifier string `yaml:"classifier,omitempty"`
}

// Variant is one selectable alternative of a component. The resolution
// algorithm picks at most one variant per component per context.
type Variant struct {
	Name         string                 `yaml:"name"`
	Attributes   map[string]string      `yaml:"attributes,omitempty"`
	Capabilities []Capability           `yaml:"capabilities,omitempty"`
	Dependencies []Dependency           `yaml:"dependencies,omitempty"`
	Constraints  []DependencyConstraint `yaml:"constraints,omitempty"`
	Files        []VariantFile          `yaml:"files,omitempty"`
}

// DeepCopy returns a variant sharing no mutable state with the
// receiver. Used by the add-variant-from-base mutation so later edits
// to either side stay independent.
func (v *Variant) DeepCopy() *Variant {
	out := &Variant{Name: v.Name}
	if v.Attributes != nil {
		out.Attributes = make(map[string]string, len(v.Attributes))
		for k, val := range v.Attributes {
			out.Attributes[k] = val
		}
	}
	out.Capabilities = append([]Capability(nil), v.Capabilities...)
	out.Dependencies = make([]Dependency, 0, len(v.Dependencies))
	for _, dep := range v.Dependencies {
		out.Dependencies = append(out.Dependencies, dep.DeepCopy())
	}
	out.Constraints = make([]DependencyConstraint, 0, len(v.Constraints))
	for _, constraint := range v.Constraints {
		out.Constraints = append(out.Constraints, constraint.DeepCopy())
	}
	out.Files = append([]VariantFile(nil), v.Files...)
	return out
}

// Advisory is an informational flag attached by the conflict detector.
// Advisories never fail a component; the resolution algorithm decides
// whether the flagged structure is selectable.
type Advisory struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
}

// AdvisoryCapabilityOverlap flags sibling variants whose capability
// sets partially overlap, which attribute matching alone cannot
// disambiguate.
const AdvisoryCapabilityOverlap = "capability-overlap"

// Component is one resolved module version's normalized metadata. It is
// mutable while rules run and frozen before it is handed to the
// resolution algorithm.
type Component struct {
	ID           ModuleIdentity    `yaml:"identity"`
	Attributes   map[string]string `yaml:"attributes,omitempty"`
	StatusScheme []string          `yaml:"statusScheme,omitempty"`
	BelongsTo    *ModuleIdentity   `yaml:"belongsTo,omitempty"`
	Variants     []*Variant        `yaml:"variants"`
	Advisories   []Advisory        `yaml:"advisories,omitempty"`

	frozen bool
}

// Status returns the component-level status attribute, empty when
// unset.
func (c *Component) Status() string {
	return c.Attributes[AttributeStatus]
}

// Variant returns the named variant, or nil when absent.
func (c *Component) Variant(name string) *Variant {
	for _, variant := range c.Variants {
		if variant.Name == name {
			return variant
		}
	}
	return nil
}

// Freeze marks the component immutable. Mutation attempts after Freeze
// fail; freezing twice is a no-op.
func (c *Component) Freeze() {
	c.frozen = true
}

// Frozen reports whether the component has been frozen.
func (c *Component) Frozen() bool {
	return c.frozen
}
