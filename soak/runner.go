// Package soak drives rounds of randomized mutations against the task
// resource, verifying the oracle's predictions after every effective step.
// Exactly one request is in flight at any moment: every consistency check
// must be attributable to a precisely known prefix of actions.
package soak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tasksoak/checker"
	"tasksoak/config"
	"tasksoak/domain"
	"tasksoak/oracle"
	"tasksoak/randgen"
	"tasksoak/selector"
	"tasksoak/taskapi"
)

// Runner executes a soak run: Rounds × StepsPerRound effective steps.
type Runner struct {
	client   *taskapi.Client
	model    *oracle.Model
	sel      *selector.Selector
	check    *checker.Checker
	scenario Scenario

	rounds       int
	steps        int
	roundTimeout time.Duration
	seed         int64
	runID        string

	log *log.Logger
}

// New wires a Runner from cfg. A zero cfg.Seed is replaced with the clock;
// the effective seed is logged at run start so failures can be replayed.
func New(cfg config.Config, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scenario, err := ScenarioByName(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := randgen.New(seed)
	model := oracle.New(gen)

	opts := []taskapi.Option{taskapi.WithLogger(logger)}
	if cfg.TolerateMissingDelete {
		opts = append(opts, taskapi.WithTolerateMissingDelete())
	}
	client := taskapi.New(cfg.BaseURL, opts...)

	return &Runner{
		client:       client,
		model:        model,
		sel:          selector.New(scenario.weights(cfg.Actions), gen),
		check:        checker.New(client, model, scenario.CheckOrdering),
		scenario:     scenario,
		rounds:       cfg.Rounds,
		steps:        cfg.StepsPerRound,
		roundTimeout: cfg.RoundTimeout.Std(),
		seed:         seed,
		runID:        uuid.NewString(),
		log:          logger,
	}, nil
}

// Seed returns the seed the run draws from.
func (r *Runner) Seed() int64 { return r.seed }

// Run executes every round sequentially and aborts the whole run on the
// first consistency violation or unrecoverable error. A violation means the
// system under test is defective; rounds are never retried.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Infof("run %s started: scenario=%s rounds=%d steps=%d seed=%d",
		r.runID, r.scenario.Name, r.rounds, r.steps, r.seed)
	for round := 1; round <= r.rounds; round++ {
		if err := r.runRound(ctx, round); err != nil {
			var violation *domain.ConsistencyViolation
			if errors.As(err, &violation) {
				r.log.Errorf("run %s round %d: %v", r.runID, round, violation)
			} else {
				r.log.Errorf("run %s round %d aborted: %v", r.runID, round, err)
			}
			return err
		}
		r.log.Infof("round %d/%d complete", round, r.rounds)
	}
	r.log.Infof("run %s complete", r.runID)
	return nil
}

func (r *Runner) runRound(ctx context.Context, round int) error {
	ctx, cancel := context.WithTimeout(ctx, r.roundTimeout)
	defer cancel()

	if err := r.resetResource(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.seedRound(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for step := 1; step <= r.steps; step++ {
		if err := r.step(ctx); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}
	if r.scenario.CheckOrdering {
		if err := r.check.VerifyStableReads(ctx); err != nil {
			return err
		}
	}
	return nil
}

// resetResource deletes every task the server currently lists and clears
// the model. The id counter keeps climbing so ids never collide across
// rounds.
func (r *Runner) resetResource(ctx context.Context) error {
	tasks, err := r.client.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := r.client.Remove(ctx, t.ID); err != nil {
			return err
		}
	}
	r.model.Reset()
	r.log.Infof("reset: cleared %d tasks", len(tasks))
	return r.check.Verify(ctx)
}

func (r *Runner) seedRound(ctx context.Context) error {
	for i := 0; i < r.scenario.SeedCount; i++ {
		if err := r.insert(ctx); err != nil {
			return err
		}
	}
	if r.scenario.SeedCount > 0 {
		return r.check.Verify(ctx)
	}
	return nil
}

// step draws one plan, applies its mutations to the model and the resource
// in order, then verifies. Plans are always effective: infeasible draws are
// resolved inside the selector without consuming a step.
func (r *Runner) step(ctx context.Context) error {
	plan, ok := r.sel.Next(r.model)
	if !ok {
		return fmt.Errorf("no feasible action under configured weights")
	}
	for _, op := range plan.Ops {
		var err error
		switch op.Action {
		case selector.Insert:
			err = r.insert(ctx)
		case selector.Delete:
			err = r.delete(ctx, op.ID)
		case selector.Complete:
			err = r.setCompleted(ctx, op.ID, true)
		case selector.Reactivate:
			err = r.setCompleted(ctx, op.ID, false)
		}
		if err != nil {
			return err
		}
	}
	return r.check.Verify(ctx)
}

func (r *Runner) insert(ctx context.Context) error {
	t := r.model.Synthesize()
	r.model.Insert(t)
	if err := r.client.Create(ctx, t); err != nil {
		return err
	}
	r.action("insert id=%d priority=%s due=%s", t.ID, t.Priority, t.DueDate)
	return nil
}

func (r *Runner) delete(ctx context.Context, id int) error {
	if _, err := r.model.Delete(id); err != nil {
		// selector/model defect, not a backend one
		r.log.Errorf("harness defect: %v", err)
		return err
	}
	if err := r.client.Remove(ctx, id); err != nil {
		return err
	}
	r.action("delete id=%d", id)
	return nil
}

func (r *Runner) setCompleted(ctx context.Context, id int, value bool) error {
	if err := r.model.SetCompleted(id, value); err != nil {
		r.log.Errorf("harness defect: %v", err)
		return err
	}
	if err := r.client.UpdateCompleted(ctx, id, value); err != nil {
		return err
	}
	name := "complete"
	if !value {
		name = "reactivate"
	}
	r.action("%s id=%d", name, id)
	return nil
}

func (r *Runner) action(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.check.Record(msg)
	r.log.Info(msg)
}
