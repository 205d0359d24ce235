package app

import (
	"context"
	"runtime"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"metarules/internal/adapters"
	"metarules/internal/core"
	"metarules/internal/types"
)

// Input is one component identity's structured metadata document plus
// its declared format.
type Input struct {
	Document types.RawDocument
	Format   types.MetadataFormat
}

// Outcome is the per-component result: either a frozen component with
// its advisory flags, or a typed failure. A failure never aborts or
// corrupts sibling components; the caller decides whether any single
// failure aborts the whole resolution.
type Outcome struct {
	Identity  types.ModuleIdentity
	Component *types.Component
	Err       error
}

// Process runs the strictly sequential pipeline for one component:
// normalize, apply rules, attach status semantics, detect capability
// overlaps, freeze.
func (s Service) Process(ctx context.Context, in Input) Outcome {
	assert.NotEmpty(ctx, string(in.Format), "metadata format must be set")
	component, err := adapters.Normalize(in.Document, in.Format)
	if err != nil {
		return Outcome{Identity: in.Document.Identity, Err: err}
	}

	engine := core.Engine{Registry: s.Registry, Cache: s.Cache}
	component, err = engine.Apply(ctx, component)
	if err != nil {
		return Outcome{Identity: in.Document.Identity, Err: err}
	}

	if len(component.StatusScheme) == 0 {
		component.StatusScheme = append([]string(nil), core.DefaultStatusScheme...)
	}
	if err := core.ValidateStatus(component); err != nil {
		return Outcome{Identity: component.ID, Err: err}
	}

	component.Advisories = append(component.Advisories, core.DetectOverlaps(component)...)
	component.Freeze()

	log.Ctx(ctx).Debug().
		Str("component", component.ID.String()).
		Int("variants", len(component.Variants)).
		Int("advisories", len(component.Advisories)).
		Msg("component pipeline completed")
	return Outcome{Identity: component.ID, Component: component}
}

// ProcessAll fans the per-component pipelines out on a worker pool.
// Components share no mutable state, so each runs independently; the
// registry is sealed first and read without synchronization, and the
// mutation cache is the only shared write target.
func (s Service) ProcessAll(ctx context.Context, inputs []Input) []Outcome {
	s.Registry.Seal()

	workers := s.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(inputs))
	p := pool.New().WithMaxGoroutines(workers)
	for i := range inputs {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Identity: inputs[i].Document.Identity, Err: err}
				return
			}
			outcomes[i] = s.Process(ctx, inputs[i])
		})
	}
	p.Wait()
	return outcomes
}
