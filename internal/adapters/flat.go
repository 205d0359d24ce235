package adapters

import (
	"metarules/internal/types"
)

// Derived variant names for the flat descriptor format. The format has
// no native variant concept, so exactly these two are produced.
const (
	FlatVariantCompile = "compile"
	FlatVariantRuntime = "runtime"
)

// AttributeUsage is the variant attribute distinguishing the derived
// flat variants for downstream matching.
const AttributeUsage = "usage"

// normalizeFlat derives the fixed two-variant set from a flat
// descriptor. The compile variant carries compile and provided scoped
// dependencies; the runtime variant carries compile and runtime scoped
// ones. Optional dependencies are omitted rather than guessed, and
// test scoped entries never escape the producing build.
func normalizeFlat(doc types.RawDocument) (*types.Component, error) {
	component := newComponent(doc)

	compile := &types.Variant{
		Name:       FlatVariantCompile,
		Attributes: map[string]string{AttributeUsage: FlatVariantCompile},
		Files:      append([]types.VariantFile(nil), doc.Flat.Files...),
	}
	runtime := &types.Variant{
		Name:       FlatVariantRuntime,
		Attributes: map[string]string{AttributeUsage: FlatVariantRuntime},
		Files:      append([]types.VariantFile(nil), doc.Flat.Files...),
	}

	for _, entry := range doc.Flat.Dependencies {
		if entry.Optional {
			continue
		}
		scope := entry.Scope
		if scope == "" {
			scope = types.FlatScopeCompile
		}
		switch scope {
		case types.FlatScopeCompile:
			compile.Dependencies = append(compile.Dependencies, flatToDependency(entry))
			runtime.Dependencies = append(runtime.Dependencies, flatToDependency(entry))
		case types.FlatScopeProvided:
			compile.Dependencies = append(compile.Dependencies, flatToDependency(entry))
		case types.FlatScopeRuntime:
			runtime.Dependencies = append(runtime.Dependencies, flatToDependency(entry))
		case types.FlatScopeTest:
			// test scope is internal to the producing build
		}
	}

	component.Variants = append(component.Variants, compile, runtime)
	return component, nil
}
