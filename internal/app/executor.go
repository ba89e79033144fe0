package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/testmaker/quizapi/internal/platform/logging"
)

// Write operations run as Validate → Perform → Verify → Archive → Respond.
// Nothing reaches the store before Verify accepts the prepared entity, and
// Archive is the single store call of the operation.

// ExecutionStep names a step of a write operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Operation string
	Step      ExecutionStep
	Cause     error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs write operations step by step with uniform logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the steps of a write. I is the request, E the prepared
// entity and O the response. Nil steps are skipped, except Perform.
type Operation[I, E, O any] struct {
	// Name identifies this operation for logging.
	Name string

	// Validate checks inputs before anything is read or written.
	Validate func(ctx context.Context, input I) error

	// Perform prepares the entity to persist (build or load-and-modify).
	Perform func(ctx context.Context, input I) (E, error)

	// Verify checks the prepared entity against its invariants.
	Verify func(ctx context.Context, input I, entity E) error

	// Archive persists the verified entity.
	Archive func(ctx context.Context, input I, entity E) error

	// Respond shapes the persisted entity for the caller.
	Respond func(ctx context.Context, input I, entity E) (O, error)
}

// Execute runs op against input.
func Execute[I, E, O any](ctx context.Context, exec *Executor, op Operation[I, E, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(step ExecutionStep, err error) (O, error) {
		level := slog.LevelWarn
		if step == StepArchive {
			level = slog.LevelError
		}

		logger.Log(ctx, level, "operation step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return zero, &ExecutionError{Operation: op.Name, Step: step, Cause: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, input); err != nil {
			return fail(StepValidate, err)
		}
	}

	entity, err := op.Perform(ctx, input)
	if err != nil {
		return fail(StepPerform, err)
	}

	if op.Verify != nil {
		if err := op.Verify(ctx, input, entity); err != nil {
			return fail(StepVerify, err)
		}
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, input, entity); err != nil {
			return fail(StepArchive, err)
		}
	}

	result := zero
	if op.Respond != nil {
		result, err = op.Respond(ctx, input, entity)
		if err != nil {
			return fail(StepRespond, err)
		}
	}

	logger.DebugContext(ctx, "operation completed",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
