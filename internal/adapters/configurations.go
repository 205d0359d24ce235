package adapters

import (
	"fmt"

	"metarules/internal/core"
	"metarules/internal/types"
)

// normalizeConfigurations maps the named-configuration format onto one
// variant per configuration, inheritance flattened first. A referenced
// base configuration that does not exist, or an inheritance cycle,
// fails the mapping.
func normalizeConfigurations(doc types.RawDocument) (*types.Component, error) {
	component := newComponent(doc)

	byName := map[string]types.RawConfiguration{}
	for _, configuration := range doc.Configurations.Configurations {
		if configuration.Name == "" {
			return nil, core.NewMetadataMappingError(doc.Identity, "configuration with empty name")
		}
		if _, ok := byName[configuration.Name]; ok {
			return nil, core.NewMetadataMappingError(doc.Identity, fmt.Sprintf("configuration %q declared twice", configuration.Name))
		}
		byName[configuration.Name] = configuration
	}

	for _, configuration := range doc.Configurations.Configurations {
		flattened, err := flattenConfiguration(doc.Identity, byName, configuration.Name, map[string]bool{})
		if err != nil {
			return nil, err
		}
		variant := &types.Variant{
			Name:  configuration.Name,
			Files: flattened.files,
		}
		for _, entry := range flattened.dependencies {
			variant.Dependencies = append(variant.Dependencies, flatToDependency(entry))
		}
		component.Variants = append(component.Variants, variant)
	}
	return component, nil
}

type flattenedConfiguration struct {
	dependencies []types.FlatDependency
	files        []types.VariantFile
}

// flattenConfiguration resolves configuration inheritance depth-first:
// inherited entries precede the configuration's own, duplicates keep
// the first occurrence.
func flattenConfiguration(id types.ModuleIdentity, byName map[string]types.RawConfiguration, name string, visiting map[string]bool) (flattenedConfiguration, error) {
	configuration, ok := byName[name]
	if !ok {
		return flattenedConfiguration{}, core.NewMetadataMappingError(id, fmt.Sprintf("configuration extends unknown base %q", name))
	}
	if visiting[name] {
		return flattenedConfiguration{}, core.NewMetadataMappingError(id, fmt.Sprintf("configuration inheritance cycle through %q", name))
	}
	visiting[name] = true
	defer delete(visiting, name)

	var out flattenedConfiguration
	seenDeps := map[string]struct{}{}
	seenFiles := map[string]struct{}{}
	appendEntries := func(deps []types.FlatDependency, files []types.VariantFile) {
		for _, dep := range deps {
			key := dep.Group + ":" + dep.Name
			if _, ok := seenDeps[key]; ok {
				continue
			}
			seenDeps[key] = struct{}{}
			out.dependencies = append(out.dependencies, dep)
		}
		for _, file := range files {
			if _, ok := seenFiles[file.URL]; ok {
				continue
			}
			seenFiles[file.URL] = struct{}{}
			out.files = append(out.files, file)
		}
	}

	for _, base := range configuration.Extends {
		flattened, err := flattenConfiguration(id, byName, base, visiting)
		if err != nil {
			return flattenedConfiguration{}, err
		}
		appendEntries(flattened.dependencies, flattened.files)
	}
	appendEntries(configuration.Dependencies, configuration.Files)
	return out, nil
}
