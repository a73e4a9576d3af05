package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RevCBH/pgbox/internal/events"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	// DefaultSettleDelay is how long a freshly launched container gets
	// before the first connection attempt. Nothing connects earlier.
	DefaultSettleDelay = 5 * time.Second

	// DefaultConnectAttempts bounds connect retries after the settle delay
	DefaultConnectAttempts = 3

	// DefaultConnectBackoff is the pause between connect attempts
	DefaultConnectBackoff = 2 * time.Second

	// KillTimeout bounds the compensating kill after a failure
	KillTimeout = 10 * time.Second
)

// Config holds the parameters for one orchestrator
type Config struct {
	// Image is the target image reference
	Image ImageRef

	// BuildContext is the directory passed to the image build
	BuildContext string

	// HostPort is published on the host; ContainerPort is the postgres
	// port inside the container
	HostPort      int
	ContainerPort int

	// DSN is the connection string for the bootstrapped database
	DSN string

	// InitSQL and SeedSQL are the opaque SQL payloads applied by the
	// init and seed actions
	InitSQL string
	SeedSQL string

	// SettleDelay is the fixed wait between a fresh launch and the first
	// connect attempt
	SettleDelay time.Duration

	// ConnectAttempts and ConnectBackoff bound the connect retry loop on
	// the fresh-launch path. A reused container gets a single attempt.
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

// Dependencies holds the injected collaborators
type Dependencies struct {
	Runtime  Runtime
	Database Database
	Bus      *events.Bus
	Logger   *slog.Logger
}

// Result describes the outcome of one bootstrap invocation
type Result struct {
	Step        Step
	Phase       Phase
	Actions     []Action
	ContainerID string
	Launched    bool
	Reused      bool
	Compensated bool
	Duration    time.Duration
}

// Orchestrator executes bootstrap steps against an injected runtime and
// database client
type Orchestrator struct {
	cfg     Config
	runtime Runtime
	db      Database
	bus     *events.Bus
	log     *slog.Logger
}

// New creates an orchestrator with the given configuration and dependencies
func New(cfg Config, deps Dependencies) *Orchestrator {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.ConnectAttempts == 0 {
		cfg.ConnectAttempts = DefaultConnectAttempts
	}
	if cfg.ConnectBackoff == 0 {
		cfg.ConnectBackoff = DefaultConnectBackoff
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:     cfg,
		runtime: deps.Runtime,
		db:      deps.Database,
		bus:     deps.Bus,
		log:     logger,
	}
}

// Execute runs one step end to end: resolve the step against fresh runtime
// state, perform the missing actions in order, and on a post-launch failure
// kill the container this invocation started before returning the error.
func (o *Orchestrator) Execute(ctx context.Context, step Step) (*Result, error) {
	start := time.Now()
	result := &Result{Step: step, Phase: PhaseResolving}

	o.emit(events.NewEvent(events.BootstrapStarted, step.String()))

	plan, err := o.resolve(ctx, step)
	if err != nil {
		return o.fail(result, start, err)
	}
	result.Actions = plan.Actions()
	if plan.Reuse != nil {
		result.Reused = true
		result.ContainerID = plan.Reuse.ID
		o.log.Info("reusing running container", "container", plan.Reuse.ID)
		o.emit(events.NewEvent(events.ContainerReused, step.String()).WithContainer(plan.Reuse.ID))
	}

	var handle Handle
	launched := false

	if plan.Build {
		result.Phase = PhaseBuilding
		o.emit(events.NewEvent(events.ImageBuildStarted, step.String()).WithPayload(o.cfg.Image.String()))
		o.log.Info("building image", "image", o.cfg.Image.String(), "context", o.cfg.BuildContext)
		if err := o.runtime.Build(ctx, o.cfg.BuildContext, o.cfg.Image.String()); err != nil {
			return o.fail(result, start, err)
		}
		o.emit(events.NewEvent(events.ImageBuilt, step.String()).WithPayload(o.cfg.Image.String()))
	}

	if plan.Launch {
		result.Phase = PhaseLaunching
		spec := LaunchSpec{
			Image:         o.cfg.Image.String(),
			HostPort:      o.cfg.HostPort,
			ContainerPort: o.cfg.ContainerPort,
		}
		o.log.Info("launching container", "image", spec.Image, "port", spec.HostPort)
		h, err := o.runtime.Launch(ctx, spec)
		if err != nil {
			return o.fail(result, start, err)
		}
		handle = h
		launched = true
		result.Launched = true
		result.ContainerID = h.ID
		o.emit(events.NewEvent(events.ContainerLaunched, step.String()).WithContainer(h.ID))
	}

	if plan.Init || plan.Seed {
		if err := o.applySQL(ctx, result, plan, launched); err != nil {
			if launched {
				return o.compensate(result, start, handle, err)
			}
			return o.fail(result, start, err)
		}
	}

	result.Phase = PhaseDone
	result.Duration = time.Since(start)
	o.emit(events.NewEvent(events.BootstrapCompleted, step.String()))
	return result, nil
}

// resolve snapshots runtime state and maps the step onto a plan
func (o *Orchestrator) resolve(ctx context.Context, step Step) (Plan, error) {
	images, err := o.runtime.Images(ctx)
	if err != nil {
		return Plan{}, err
	}
	containers, err := o.runtime.Containers(ctx)
	if err != nil {
		return Plan{}, err
	}
	return Resolve(step, o.cfg.Image, images, containers)
}

// applySQL runs the settle, connect, and execute phases. The settle delay
// and retry loop apply only after a fresh launch; a reused container gets a
// single immediate connect attempt.
func (o *Orchestrator) applySQL(ctx context.Context, result *Result, plan Plan, launched bool) error {
	if launched {
		result.Phase = PhaseSettling
		o.emit(events.NewEvent(events.DBSettling, plan.Step.String()).WithPayload(o.cfg.SettleDelay.String()))
		o.log.Debug("waiting for database to settle", "delay", o.cfg.SettleDelay)
		if err := sleepCtx(ctx, o.cfg.SettleDelay); err != nil {
			return err
		}
	}

	result.Phase = PhaseConnecting
	attempts := 1
	if launched {
		attempts = o.cfg.ConnectAttempts
	}
	session, err := o.connect(ctx, plan.Step, attempts)
	if err != nil {
		return err
	}
	defer session.Close(ctx)
	o.emit(events.NewEvent(events.DBConnected, plan.Step.String()))

	result.Phase = PhaseExecuting
	if plan.Init {
		if o.cfg.InitSQL == "" {
			return fmt.Errorf("%w: init", ErrMissingSQL)
		}
		if err := session.BatchExecute(ctx, o.cfg.InitSQL); err != nil {
			return &DatabaseError{Op: "init", Err: err}
		}
		o.log.Info("init sql applied")
		o.emit(events.NewEvent(events.SQLApplied, plan.Step.String()).WithPayload("init"))
	}
	if plan.Seed {
		if o.cfg.SeedSQL == "" {
			return fmt.Errorf("%w: seed", ErrMissingSQL)
		}
		if err := session.BatchExecute(ctx, o.cfg.SeedSQL); err != nil {
			return &DatabaseError{Op: "seed", Err: err}
		}
		o.log.Info("seed sql applied")
		o.emit(events.NewEvent(events.SQLApplied, plan.Step.String()).WithPayload("seed"))
	}
	return nil
}

// connect opens a session, retrying up to attempts times with a fixed
// backoff. The settle delay has already passed before the first attempt.
func (o *Orchestrator) connect(ctx context.Context, step Step, attempts int) (Session, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			o.emit(events.NewEvent(events.DBConnectRetry, step.String()).WithPayload(i + 1))
			if err := sleepCtx(ctx, o.cfg.ConnectBackoff); err != nil {
				return nil, err
			}
		}
		session, err := o.db.Connect(ctx, o.cfg.DSN)
		if err == nil {
			return session, nil
		}
		lastErr = err
		o.log.Debug("connect attempt failed", "attempt", i+1, "error", err)
	}
	return nil, &DatabaseError{Op: "connect", Err: lastErr}
}

// fail finalizes a failed invocation that has nothing to clean up
func (o *Orchestrator) fail(result *Result, start time.Time, err error) (*Result, error) {
	result.Phase = PhaseFailed
	result.Duration = time.Since(start)
	o.emit(events.NewEvent(events.BootstrapFailed, result.Step.String()).WithError(err))
	return result, err
}

// compensate kills the container this invocation launched, then surfaces
// the original failure. A kill failure is reported alongside the original
// error, never instead of it.
func (o *Orchestrator) compensate(result *Result, start time.Time, h Handle, cause error) (*Result, error) {
	o.log.Warn("bootstrap failed after launch, killing container", "container", h.ID, "error", cause)

	// The invoking context may already be cancelled when cleanup runs;
	// the kill still has to happen.
	killCtx, cancel := context.WithTimeout(context.Background(), KillTimeout)
	defer cancel()

	if killErr := o.runtime.Kill(killCtx, h); killErr != nil {
		result.Phase = PhaseFailed
		result.Duration = time.Since(start)
		err := &CompensationError{Cause: cause, CleanupErr: killErr}
		o.emit(events.NewEvent(events.BootstrapFailed, result.Step.String()).WithError(err))
		return result, err
	}

	result.Compensated = true
	result.Phase = PhaseFailedCompensated
	result.Duration = time.Since(start)
	o.emit(events.NewEvent(events.ContainerKilled, result.Step.String()).WithContainer(h.ID))
	o.emit(events.NewEvent(events.BootstrapFailed, result.Step.String()).WithError(cause))
	return result, cause
}

// emit publishes an event when a bus is wired
func (o *Orchestrator) emit(e events.Event) {
	if o.bus != nil {
		o.bus.Emit(e)
	}
}

// sleepCtx blocks for d or until ctx is cancelled
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
