package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"metarules/internal/ports"
	"metarules/internal/types"
)

// DefaultStatusScheme is the scheme attached to components that do not
// declare one, ordered least to most mature.
var DefaultStatusScheme = []string{"integration", "milestone", "release"}

// StatusAny is the synthetic marker that matches every candidate
// regardless of maturity (latest.any).
const StatusAny = "any"

// ValidateStatus checks the component invariant that a set status is a
// member of the component's current scheme. Components without a
// declared scheme are checked against the default scheme.
func ValidateStatus(c *types.Component) error {
	status := c.Status()
	if status == "" {
		return nil
	}
	scheme := c.StatusScheme
	if len(scheme) == 0 {
		scheme = DefaultStatusScheme
	}
	if schemeIndex(scheme, status) < 0 {
		return NewInvalidStatusError(c.ID, status, scheme)
	}
	return nil
}

// Candidate is one selectable version with its published status.
type Candidate struct {
	Version string `yaml:"version"`
	Status  string `yaml:"status"`
}

// StatusResolver implements latest.<status> selection over a candidate
// list using the resolver's version ordering.
type StatusResolver struct {
	Versions ports.VersionOrderPort
}

func NewStatusResolver(versions ports.VersionOrderPort) StatusResolver {
	return StatusResolver{Versions: versions}
}

// ResolveLatest returns the highest-versioned candidate whose status is
// at least as mature as requested. The requested status must be a
// scheme member or StatusAny. Version ties break toward the
// latest-declared candidate. Candidates are expected to carry scheme
// statuses; a stray status is a data error, not a silent skip.
func (r StatusResolver) ResolveLatest(scheme []string, candidates []Candidate, requested string) (Candidate, error) {
	if r.Versions == nil {
		return Candidate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("status resolver requires a version ordering")
	}
	if len(scheme) == 0 {
		scheme = DefaultStatusScheme
	}
	threshold := -1
	if requested != StatusAny {
		threshold = schemeIndex(scheme, requested)
		if threshold < 0 {
			return Candidate{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("%s: requested %q not in scheme %v", prefixInvalidStatus, requested, scheme))
		}
	}

	var best *Candidate
	for i := range candidates {
		candidate := candidates[i]
		index := schemeIndex(scheme, candidate.Status)
		if index < 0 {
			return Candidate{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("%s: candidate %s has status %q not in scheme %v", prefixInvalidStatus, candidate.Version, candidate.Status, scheme))
		}
		if index < threshold {
			continue
		}
		if best == nil || r.Versions.Compare(candidate.Version, best.Version) >= 0 {
			best = &candidate
		}
	}
	if best == nil {
		return Candidate{}, NewNoMatchingVersionError(requested)
	}
	return *best, nil
}

func schemeIndex(scheme []string, status string) int {
	for i, value := range scheme {
		if value == status {
			return i
		}
	}
	return -1
}
