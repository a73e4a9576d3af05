package bootstrap

import "fmt"

// Action is one entry in a resolved plan, in execution order
type Action string

const (
	ActionBuild  Action = "build"
	ActionLaunch Action = "launch"
	ActionInit   Action = "init"
	ActionSeed   Action = "seed"
)

// Plan is the work a single step resolves to, given the runtime state
// observed at resolution time
type Plan struct {
	Step Step

	// Build is set when the target image must be built first
	Build bool

	// Launch is set when a container must be freshly launched
	Launch bool

	// Init is set when the init SQL batch runs
	Init bool

	// Seed is set when the seed SQL batch runs, always after init
	Seed bool

	// Reuse is the already-running container serving this step, when one
	// was found. Nothing is launched and no cleanup ever applies to it.
	Reuse *ContainerDescriptor
}

// Actions returns the plan as an ordered action list
func (p Plan) Actions() []Action {
	var actions []Action
	if p.Build {
		actions = append(actions, ActionBuild)
	}
	if p.Launch {
		actions = append(actions, ActionLaunch)
	}
	if p.Init {
		actions = append(actions, ActionInit)
	}
	if p.Seed {
		actions = append(actions, ActionSeed)
	}
	return actions
}

// Resolve maps a requested step onto the actions still needed, based on a
// snapshot of runtime state. Build is unconditional for StepBuild; every
// other step skips whatever the snapshot proves already exists. A running
// container from the target image always satisfies the launch requirement,
// so a second container is never started alongside it.
func Resolve(step Step, ref ImageRef, images []ImageDescriptor, containers []ContainerDescriptor) (Plan, error) {
	imageExists := false
	for _, img := range images {
		if ref.MatchesImage(img) {
			imageExists = true
			break
		}
	}

	var running *ContainerDescriptor
	for i := range containers {
		if ref.MatchesContainer(containers[i]) {
			running = &containers[i]
			break
		}
	}

	switch step {
	case StepBuild:
		return Plan{Step: step, Build: true}, nil

	case StepRun:
		if running != nil {
			return Plan{Step: step, Reuse: running}, nil
		}
		return Plan{Step: step, Build: !imageExists, Launch: true}, nil

	case StepInit:
		if running != nil {
			return Plan{Step: step, Init: true, Reuse: running}, nil
		}
		return Plan{Step: step, Build: !imageExists, Launch: true, Init: true}, nil

	case StepSeed:
		// Seed re-applies init first, on fresh and reused containers
		// alike. The init SQL is written to be safely re-appliable.
		if running != nil {
			return Plan{Step: step, Init: true, Seed: true, Reuse: running}, nil
		}
		return Plan{Step: step, Build: !imageExists, Launch: true, Init: true, Seed: true}, nil

	default:
		return Plan{}, fmt.Errorf("%w: step(%d)", ErrUnknownStep, int(step))
	}
}
