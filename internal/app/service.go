package app

import (
	"metarules/internal/adapters"
	"metarules/internal/core"
	"metarules/internal/ports"
)

// Service wires the per-component pipeline: format adapter, rule
// engine, status scheme, conflict detector. The registry is populated
// by the configuration surface before any component is processed.
type Service struct {
	Registry  *core.Registry
	Cache     ports.MutationCachePort
	Versions  ports.VersionOrderPort
	Documents ports.DocumentSourcePort

	// MaxWorkers caps the component worker pool; zero means one worker
	// per available core.
	MaxWorkers int
}

func NewService(registry *core.Registry) Service {
	return Service{
		Registry:  registry,
		Cache:     adapters.NewMemoryMutationCache(),
		Versions:  core.NewVersionOrder(),
		Documents: adapters.NewDocumentFileAdapter(),
	}
}
