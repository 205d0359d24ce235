package adapters

import (
	"fmt"

	"metarules/internal/core"
	"metarules/internal/types"
)

// Normalize translates an already-structured metadata document into a
// fresh mutable Component with the format-defined variant set. The
// returned component is never shared or reused across module versions.
func Normalize(doc types.RawDocument, format types.MetadataFormat) (*types.Component, error) {
	if doc.Identity.Group == "" || doc.Identity.Name == "" || doc.Identity.Version == "" {
		return nil, core.NewMetadataMappingError(doc.Identity, "document identity is incomplete")
	}
	switch format {
	case types.FormatExtended:
		if doc.Extended == nil {
			return nil, core.NewMetadataMappingError(doc.Identity, "missing extended section")
		}
		return normalizeExtended(doc)
	case types.FormatFlat:
		if doc.Flat == nil {
			return nil, core.NewMetadataMappingError(doc.Identity, "missing flat section")
		}
		return normalizeFlat(doc)
	case types.FormatConfigurations:
		if doc.Configurations == nil {
			return nil, core.NewMetadataMappingError(doc.Identity, "missing configurations section")
		}
		return normalizeConfigurations(doc)
	default:
		return nil, core.NewMetadataMappingError(doc.Identity, fmt.Sprintf("unknown metadata format %q", format))
	}
}

func newComponent(doc types.RawDocument) *types.Component {
	component := &types.Component{ID: doc.Identity}
	if len(doc.Attributes) > 0 {
		component.Attributes = make(map[string]string, len(doc.Attributes))
		for key, value := range doc.Attributes {
			component.Attributes[key] = value
		}
	}
	return component
}

// flatToDependency maps a flat document dependency entry onto the
// model shape; the single version string is a required bound.
func flatToDependency(entry types.FlatDependency) types.Dependency {
	return types.Dependency{
		Group:    entry.Group,
		Name:     entry.Name,
		Version:  types.VersionSpec{Requires: entry.Version},
		Excludes: append([]types.ExcludeRule(nil), entry.Excludes...),
	}
}
