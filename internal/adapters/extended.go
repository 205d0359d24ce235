package adapters

import (
	"fmt"

	"metarules/internal/core"
	"metarules/internal/types"
)

// normalizeExtended maps the variant-aware format near-verbatim:
// every document variant becomes a model variant with its attributes,
// capabilities, dependencies, constraints, and files.
func normalizeExtended(doc types.RawDocument) (*types.Component, error) {
	component := newComponent(doc)
	seen := map[string]struct{}{}
	for _, raw := range doc.Extended.Variants {
		if raw.Name == "" {
			return nil, core.NewMetadataMappingError(doc.Identity, "variant with empty name")
		}
		if _, ok := seen[raw.Name]; ok {
			return nil, core.NewMetadataMappingError(doc.Identity, fmt.Sprintf("variant %q declared twice", raw.Name))
		}
		seen[raw.Name] = struct{}{}

		variant := &types.Variant{
			Name:         raw.Name,
			Capabilities: append([]types.Capability(nil), raw.Capabilities...),
			Files:        append([]types.VariantFile(nil), raw.Files...),
		}
		if len(raw.Attributes) > 0 {
			variant.Attributes = make(map[string]string, len(raw.Attributes))
			for key, value := range raw.Attributes {
				variant.Attributes[key] = value
			}
		}
		for _, dep := range raw.Dependencies {
			variant.Dependencies = append(variant.Dependencies, dep.DeepCopy())
		}
		for _, constraint := range raw.Constraints {
			variant.Constraints = append(variant.Constraints, constraint.DeepCopy())
		}
		component.Variants = append(component.Variants, variant)
	}
	return component, nil
}
