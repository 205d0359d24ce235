package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"metarules/internal/types"
)

// OriginSelection is the outcome of merging settings-level and
// project-level registrations for one component.
type OriginSelection struct {
	IncludeSettings bool
	IncludeProject  bool

	// Warn is set when shadowing occurred that the caller should log.
	Warn bool
}

// SelectOrigins applies the precedence mode to a component for which
// projectDeclared reports whether the build unit registered any rule
// matching it. An empty mode means the default preferProject.
func SelectOrigins(mode types.PrecedenceMode, projectDeclared bool) (OriginSelection, error) {
	if mode == "" {
		mode = types.PrecedencePreferProject
	}
	switch mode {
	case types.PrecedencePreferProject:
		if projectDeclared {
			return OriginSelection{IncludeProject: true}, nil
		}
		return OriginSelection{IncludeSettings: true}, nil
	case types.PrecedencePreferSettings:
		return OriginSelection{
			IncludeSettings: true,
			IncludeProject:  projectDeclared,
			Warn:            projectDeclared,
		}, nil
	case types.PrecedenceEnforceSettings:
		if projectDeclared {
			return OriginSelection{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("project rule registration forbidden by enforceSettings precedence")
		}
		return OriginSelection{IncludeSettings: true}, nil
	default:
		return OriginSelection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown precedence mode: %s", mode))
	}
}

// ValidateMode rejects precedence modes outside the supported set.
// An empty mode is valid and means the default.
func ValidateMode(mode types.PrecedenceMode) error {
	switch mode {
	case "", types.PrecedencePreferProject, types.PrecedencePreferSettings, types.PrecedenceEnforceSettings:
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown precedence mode: %s", mode))
	}
}
