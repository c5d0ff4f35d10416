package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// Stage names one step of a staged write. Bookmarks are persisted only after
// the analysed record has been verified, so a fetch or provider failure never
// leaves a half-built row behind.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePerform  Stage = "perform"
	StageVerify   Stage = "verify"
	StageArchive  Stage = "archive"
	StageRespond  Stage = "respond"
)

// StageError records where an operation stopped.
type StageError struct {
	Op    string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf reports the stage err stopped in.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}

// Operation is a write split into stages. Nil stages are skipped; a nil
// Verify or Respond passes the value through unchanged.
type Operation[I, O any] struct {
	Name string

	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (O, error)
	Verify   func(ctx context.Context, out O) (O, error)
	Archive  func(ctx context.Context, out O) error
	Respond  func(ctx context.Context, out O) (O, error)
}

// Executor runs staged operations with tracing and logging.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor creates an executor. A nil logger uses slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		logger: logger,
		tracer: otel.Tracer("github.com/jsamuelsen/bookmark-service/internal/app"),
	}
}

// Execute runs op against in. Each stage sees the previous stage's output.
func Execute[I, O any](ctx context.Context, exec *Executor, op Operation[I, O], in I) (O, error) {
	var zero O

	ctx, span := exec.tracer.Start(ctx, "app."+op.Name)
	defer span.End()

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(stage Stage, err error) (O, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stage))
		span.SetAttributes(attribute.String("app.stage", string(stage)))

		level := slog.LevelWarn
		if stage == StageArchive || stage == StageVerify {
			level = slog.LevelError
		}

		logger.Log(ctx, level, "operation stopped",
			slog.String("stage", string(stage)),
			slog.Any("error", err),
		)

		return zero, &StageError{Op: op.Name, Stage: stage, Err: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, in); err != nil {
			return fail(StageValidate, err)
		}
	}

	var (
		out O
		err error
	)

	if op.Perform != nil {
		if out, err = op.Perform(ctx, in); err != nil {
			return fail(StagePerform, err)
		}
	}

	span.AddEvent("performed")

	if op.Verify != nil {
		if out, err = op.Verify(ctx, out); err != nil {
			return fail(StageVerify, err)
		}
	}

	if op.Archive != nil {
		if err = op.Archive(ctx, out); err != nil {
			return fail(StageArchive, err)
		}
	}

	span.AddEvent("archived")

	if op.Respond != nil {
		if out, err = op.Respond(ctx, out); err != nil {
			return fail(StageRespond, err)
		}
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}
