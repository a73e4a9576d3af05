package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ref := ImageRef{Name: "pgbox-postgres", Tag: "latest"}

	image := ImageDescriptor{ID: "sha256:abc", RepoTags: []string{"pgbox-postgres:latest"}}
	otherImage := ImageDescriptor{ID: "sha256:def", RepoTags: []string{"postgres:16-alpine"}}
	running := ContainerDescriptor{ID: "c1", Image: "pgbox-postgres"}
	otherContainer := ContainerDescriptor{ID: "c2", Image: "redis:7"}

	tests := []struct {
		name       string
		step       Step
		images     []ImageDescriptor
		containers []ContainerDescriptor
		want       []Action
		wantReuse  bool
	}{
		{
			name: "build on empty state",
			step: StepBuild,
			want: []Action{ActionBuild},
		},
		{
			name:   "build always rebuilds",
			step:   StepBuild,
			images: []ImageDescriptor{image},
			want:   []Action{ActionBuild},
		},
		{
			name:       "build ignores running container",
			step:       StepBuild,
			images:     []ImageDescriptor{image},
			containers: []ContainerDescriptor{running},
			want:       []Action{ActionBuild},
		},
		{
			name: "run on empty state",
			step: StepRun,
			want: []Action{ActionBuild, ActionLaunch},
		},
		{
			name:   "run with image present",
			step:   StepRun,
			images: []ImageDescriptor{image},
			want:   []Action{ActionLaunch},
		},
		{
			name:       "run with container running",
			step:       StepRun,
			images:     []ImageDescriptor{image},
			containers: []ContainerDescriptor{running},
			want:       nil,
			wantReuse:  true,
		},
		{
			name: "init on empty state",
			step: StepInit,
			want: []Action{ActionBuild, ActionLaunch, ActionInit},
		},
		{
			name:   "init with image present",
			step:   StepInit,
			images: []ImageDescriptor{image},
			want:   []Action{ActionLaunch, ActionInit},
		},
		{
			name:       "init with container running",
			step:       StepInit,
			images:     []ImageDescriptor{image},
			containers: []ContainerDescriptor{running},
			want:       []Action{ActionInit},
			wantReuse:  true,
		},
		{
			name: "seed on empty state",
			step: StepSeed,
			want: []Action{ActionBuild, ActionLaunch, ActionInit, ActionSeed},
		},
		{
			name:   "seed with image present",
			step:   StepSeed,
			images: []ImageDescriptor{image},
			want:   []Action{ActionLaunch, ActionInit, ActionSeed},
		},
		{
			name:       "seed with container running re-applies init",
			step:       StepSeed,
			images:     []ImageDescriptor{image},
			containers: []ContainerDescriptor{running},
			want:       []Action{ActionInit, ActionSeed},
			wantReuse:  true,
		},
		{
			name:       "foreign images and containers are ignored",
			step:       StepRun,
			images:     []ImageDescriptor{otherImage},
			containers: []ContainerDescriptor{otherContainer},
			want:       []Action{ActionBuild, ActionLaunch},
		},
		{
			name:       "container matched by full reference",
			step:       StepRun,
			containers: []ContainerDescriptor{{ID: "c3", Image: "pgbox-postgres:latest"}},
			want:       nil,
			wantReuse:  true,
		},
		{
			name:   "image with same name different tag forces build",
			step:   StepRun,
			images: []ImageDescriptor{{ID: "sha256:old", RepoTags: []string{"pgbox-postgres:v1"}}},
			want:   []Action{ActionBuild, ActionLaunch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Resolve(tt.step, ref, tt.images, tt.containers)
			require.NoError(t, err)

			assert.Equal(t, tt.step, plan.Step)
			assert.Equal(t, tt.want, plan.Actions())
			if tt.wantReuse {
				require.NotNil(t, plan.Reuse)
			} else {
				assert.Nil(t, plan.Reuse)
			}
		})
	}
}

func TestResolve_ReuseNeverLaunches(t *testing.T) {
	ref := ImageRef{Name: "pgbox-postgres", Tag: "latest"}
	running := []ContainerDescriptor{{ID: "c1", Image: "pgbox-postgres"}}

	// With a matching container visible, no step may plan a launch.
	for _, step := range []Step{StepRun, StepInit, StepSeed} {
		plan, err := Resolve(step, ref, nil, running)
		require.NoError(t, err)
		assert.False(t, plan.Launch, "step %s planned a launch next to a running container", step)
		assert.False(t, plan.Build, "step %s planned a build next to a running container", step)
		require.NotNil(t, plan.Reuse)
		assert.Equal(t, "c1", plan.Reuse.ID)
	}
}

func TestResolve_UnknownStep(t *testing.T) {
	_, err := Resolve(Step(42), ImageRef{Name: "x"}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownStep)
}
