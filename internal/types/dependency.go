package types

// VersionSpec is the version specification carried by a dependency or
// constraint: a required lower bound, a soft preference, a strict pin,
// and rejected versions. All fields are optional.
type VersionSpec struct {
	Requires string   `yaml:"requires,omitempty"`
	Prefers  string   `yaml:"prefers,omitempty"`
	Strictly string   `yaml:"strictly,omitempty"`
	Rejects  []string `yaml:"rejects,omitempty"`
}

// Empty reports whether the spec constrains nothing.
func (s VersionSpec) Empty() bool {
	return s.Requires == "" && s.Prefers == "" && s.Strictly == "" && len(s.Rejects) == 0
}

func (s VersionSpec) deepCopy() VersionSpec {
	s.Rejects = append([]string(nil), s.Rejects...)
	return s
}

// ExcludeRule marks a transitive (group, name) module as excluded from
// one dependency's subtree. An empty field matches anything.
type ExcludeRule struct {
	Group string `yaml:"group,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// Dependency is an edge contribution from a variant to a target module.
type Dependency struct {
	Group   string      `yaml:"group"`
	Name    string      `yaml:"name"`
	Version VersionSpec `yaml:"version,omitempty"`

	// TargetCapabilities overrides the implicit target capability so
	// the edge requests a specific contract of the target component.
	TargetCapabilities []Capability  `yaml:"targetCapabilities,omitempty"`
	Excludes           []ExcludeRule `yaml:"excludes,omitempty"`
}

// DeepCopy returns a dependency sharing no mutable state with the
// receiver.
func (d Dependency) DeepCopy() Dependency {
	d.Version = d.Version.deepCopy()
	d.TargetCapabilities = append([]Capability(nil), d.TargetCapabilities...)
	d.Excludes = append([]ExcludeRule(nil), d.Excludes...)
	return d
}

// Matches reports whether the dependency targets the given module.
func (d Dependency) Matches(group string, name string) bool {
	return d.Group == group && d.Name == name
}

// DependencyConstraint influences version selection for a target module
// without contributing an edge to the graph.
type DependencyConstraint struct {
	Group   string      `yaml:"group"`
	Name    string      `yaml:"name"`
	Version VersionSpec `yaml:"version,omitempty"`
	Reason  string      `yaml:"reason,omitempty"`
}

// DeepCopy returns a constraint sharing no mutable state with the
// receiver.
func (c DependencyConstraint) DeepCopy() DependencyConstraint {
	c.Version = c.Version.deepCopy()
	return c
}

// Matches reports whether the constraint targets the given module.
func (c DependencyConstraint) Matches(group string, name string) bool {
	return c.Group == group && c.Name == name
}
