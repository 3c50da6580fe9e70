package engine

import (
	"context"
	"log/slog"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/validation"
)

// Orchestrator walks a resolved profile sequence against one target,
// running every selected check and publishing lifecycle events along
// the way. Fail-fast halts the whole run at the first failing check,
// across requirement and profile boundaries; ValidationEnd is
// published no matter how the run ends.
type Orchestrator struct {
	runner   *Runner
	reasoner validation.Reasoner
	bus      *EventBus
	logger   *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithReasoner wires the reasoner used for shape checks.
func WithReasoner(reasoner validation.Reasoner) OrchestratorOption {
	return func(o *Orchestrator) {
		o.reasoner = reasoner
	}
}

// WithLogger sets the run logger.
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSubscriber registers an event subscriber.
func WithSubscriber(s validation.Subscriber) OrchestratorOption {
	return func(o *Orchestrator) {
		o.bus.Subscribe(s)
	}
}

// NewOrchestrator creates an orchestrator. Without options it runs
// native checks only, publishes to no one and logs nowhere; diagnostics
// come through WithLogger or the event stream.
func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		bus:    NewEventBus(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.runner = NewRunner(o.reasoner, o.logger)
	return o
}

// Execute validates the target in vctx against the profile sequence.
// The returned result is vctx's result, finalized. A context
// cancellation ends the run early with the context's error; the
// partial result is still finalized and ValidationEnd still fires.
func (o *Orchestrator) Execute(ctx context.Context, profiles []*entities.Profile, vctx *validation.Context) (*validation.Result, error) {
	result := vctx.Result()
	settings := vctx.Settings()

	o.bus.Publish(validation.Event{Type: validation.ValidationStart, Result: result})
	defer func() {
		result.Finalize()
		o.bus.Publish(validation.Event{Type: validation.ValidationEnd, Result: result})
	}()

	if err := vctx.EnsureTargetAvailable(); err != nil {
		return result, err
	}

	halted := false
	for _, profile := range profiles {
		o.logger.Debug("validating against profile", "profile", profile.Identifier)
		o.bus.Publish(validation.Event{Type: validation.ProfileStart, Profile: profile})

		for _, req := range profile.Requirements() {
			if err := ctx.Err(); err != nil {
				o.bus.Publish(validation.Event{Type: validation.ProfileEnd, Profile: profile})
				return result, err
			}

			// Both gates use the same predicate as ComputeStats, so the
			// counted and executed sets always agree.
			if !req.Severity().Satisfies(settings.Threshold, settings.ExactSeverityOnly) {
				continue
			}
			checks := req.ChecksAtSeverity(settings.Threshold, settings.ExactSeverityOnly)
			if len(checks) == 0 {
				continue
			}

			o.bus.Publish(validation.Event{Type: validation.RequirementStart, Requirement: req})
			reqPassed := true

			for _, check := range checks {
				o.bus.Publish(validation.Event{Type: validation.CheckStart, Check: check})
				passed, issuesAdded := o.runner.Run(ctx, vctx, check)
				result.AddCheckOutcome(check, passed)
				o.bus.Publish(validation.Event{Type: validation.CheckEnd, Check: check, Passed: &passed})

				if !passed {
					o.logger.Debug("check failed", "check", check.Identifier(), "issues", issuesAdded)
					reqPassed = false
					if settings.AbortOnFirst {
						halted = true
						break
					}
				}
			}

			// A fail-fast halt goes straight to the run end: the aborted
			// requirement's outcome is recorded, but no RequirementEnd or
			// ProfileEnd is published, only ValidationEnd.
			result.AddRequirementOutcome(req, reqPassed)
			if halted {
				break
			}
			o.bus.Publish(validation.Event{Type: validation.RequirementEnd, Requirement: req, Passed: &reqPassed})
		}

		if halted {
			break
		}
		o.bus.Publish(validation.Event{Type: validation.ProfileEnd, Profile: profile})
	}

	return result, nil
}
