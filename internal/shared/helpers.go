// Package shared provides common utility functions used across multiple
// packages in the metarules codebase.
package shared

import (
	"fmt"
	"strings"

	"metarules/internal/types"
)

// ParseModuleIdentity splits a "group:name:version" coordinate string
// into a ModuleIdentity.
func ParseModuleIdentity(value string) (types.ModuleIdentity, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return types.ModuleIdentity{}, fmt.Errorf("invalid module coordinates (want group:name:version): %s", value)
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return types.ModuleIdentity{}, fmt.Errorf("invalid module coordinates (empty segment): %s", value)
		}
	}
	return types.ModuleIdentity{
		Group:   strings.TrimSpace(parts[0]),
		Name:    strings.TrimSpace(parts[1]),
		Version: strings.TrimSpace(parts[2]),
	}, nil
}

// ParseModule splits a "group:name" pair, the version-independent form
// used for rule scopes.
func ParseModule(value string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid module (want group:name): %s", value)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// CapabilityKey returns the version-independent identity of a
// capability, the granularity at which exclusivity applies.
func CapabilityKey(c types.Capability) string {
	return c.Group + ":" + c.Name
}
