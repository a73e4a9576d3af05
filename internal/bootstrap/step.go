package bootstrap

import (
	"fmt"
	"strings"
)

// Step is the unit of orchestration requested by the caller. Each step
// implies the ones before it in the chain build -> run -> init -> seed.
type Step int

const (
	// StepBuild builds the postgres image from the local build context
	StepBuild Step = iota

	// StepRun launches a container from the image with the dev port mapping
	StepRun

	// StepInit applies the schema initialization SQL to the database
	StepInit

	// StepSeed applies dummy data on top of an initialized schema
	StepSeed
)

// String returns the lowercase step name used by the CLI and in events
func (s Step) String() string {
	switch s {
	case StepBuild:
		return "build"
	case StepRun:
		return "run"
	case StepInit:
		return "init"
	case StepSeed:
		return "seed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ParseStep converts a step name into a Step
func ParseStep(name string) (Step, error) {
	switch strings.ToLower(name) {
	case "build":
		return StepBuild, nil
	case "run":
		return StepRun, nil
	case "init":
		return StepInit, nil
	case "seed":
		return StepSeed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStep, name)
	}
}
