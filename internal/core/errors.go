package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"metarules/internal/types"
)

// The error taxonomy uses errbuilder codes plus stable message
// prefixes. Callers that need to distinguish kinds use the Is*
// predicates rather than matching raw strings.
const (
	prefixMetadataMapping    = "metadata mapping failed"
	prefixDuplicateVariant   = "duplicate variant"
	prefixNoSuchVariant      = "no such variant"
	prefixMutationOutside    = "mutation outside rule"
	prefixInvalidStatus      = "invalid status"
	prefixNoMatchingVersion  = "no matching version"
	prefixRuleFailure        = "rule application failed"
	prefixIsolationViolation = "rule isolation violation"
	prefixAmbiguousVariant   = "ambiguous variant selection"
)

// NewMetadataMappingError reports a raw document the adapter cannot
// normalize. Fatal for that component only.
func NewMetadataMappingError(id types.ModuleIdentity, detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s: %s", prefixMetadataMapping, id, detail))
}

// NewDuplicateVariantError reports an addVariant call for a name that
// already exists, with the rule that issued it.
func NewDuplicateVariantError(id types.ModuleIdentity, ruleID string, name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("%s: %s in %s%s", prefixDuplicateVariant, name, id, ruleSuffix(ruleID)))
}

// NewNoSuchVariantError reports a withVariant call for an absent name,
// with the rule that issued it.
func NewNoSuchVariantError(id types.ModuleIdentity, ruleID string, name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %s in %s%s", prefixNoSuchVariant, name, id, ruleSuffix(ruleID)))
}

// NewMutationOutsideRuleError reports a mutation call on a context
// whose rule application has already finished, or on a frozen
// component. ruleID is empty when the component is not under any rule.
func NewMutationOutsideRuleError(id types.ModuleIdentity, ruleID string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: component %s is not under rule application%s", prefixMutationOutside, id, ruleSuffix(ruleID)))
}

// ruleSuffix renders the rule identity carried by mutation-API errors.
func ruleSuffix(ruleID string) string {
	if ruleID == "" {
		return ""
	}
	return fmt.Sprintf(" (rule %s)", ruleID)
}

// NewInvalidStatusError reports a status value that is not a member of
// the component's current status scheme.
func NewInvalidStatusError(id types.ModuleIdentity, status string, scheme []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %q not in scheme %v for %s", prefixInvalidStatus, status, scheme, id))
}

// NewNoMatchingVersionError reports a latest.<status> request no
// candidate satisfies.
func NewNoMatchingVersionError(requested string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: no candidate with status %q or more mature", prefixNoMatchingVersion, requested))
}

// NewComponentRuleFailure wraps a rule execution error with the rule
// identity and component coordinates. The component's resolution is
// failed; sibling components are unaffected.
func NewComponentRuleFailure(id types.ModuleIdentity, ruleID string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s: rule %s on %s", prefixRuleFailure, ruleID, id)).
		WithCause(cause)
}

// NewIsolationViolationError reports a cacheable rule whose recorded
// effect diverged from a prior recording for the same key.
func NewIsolationViolationError(id types.ModuleIdentity, ruleID string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s: rule %s produced divergent effects for %s", prefixIsolationViolation, ruleID, id))
}

// NewAmbiguousVariantError is raised by the resolution algorithm, not
// by this core, when attribute matching cannot pick between variants
// flagged by the conflict detector. The constructor lives here so the
// selection boundary shares one taxonomy.
func NewAmbiguousVariantError(id types.ModuleIdentity, variants []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s offers %s", prefixAmbiguousVariant, id, strings.Join(variants, ", ")))
}

func IsMetadataMappingError(err error) bool  { return hasPrefix(err, prefixMetadataMapping) }
func IsDuplicateVariantError(err error) bool { return hasPrefix(err, prefixDuplicateVariant) }
func IsNoSuchVariantError(err error) bool    { return hasPrefix(err, prefixNoSuchVariant) }
func IsMutationOutsideRuleError(err error) bool {
	return hasPrefix(err, prefixMutationOutside)
}
func IsInvalidStatusError(err error) bool      { return hasPrefix(err, prefixInvalidStatus) }
func IsNoMatchingVersionError(err error) bool  { return hasPrefix(err, prefixNoMatchingVersion) }
func IsComponentRuleFailure(err error) bool    { return hasPrefix(err, prefixRuleFailure) }
func IsIsolationViolationError(err error) bool { return hasPrefix(err, prefixIsolationViolation) }
func IsAmbiguousVariantError(err error) bool   { return hasPrefix(err, prefixAmbiguousVariant) }

// ErrorMessage extracts the builder message when err is an errbuilder
// error, falling back to Error().
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func hasPrefix(err error, prefix string) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(ErrorMessage(err), prefix)
}
