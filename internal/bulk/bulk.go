// Package bulk validates many raw CPF inputs with bounded concurrency.
package bulk

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/betafcc/cpf/internal/platform/privacy"
	"github.com/betafcc/cpf/pkg/cpf"
	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
	"github.com/betafcc/cpf/pkg/validation"
)

// Result is the outcome for one input. Exactly one of Cpf and Err is set.
type Result struct {
	Input string
	Cpf   cpf.Cpf
	Err   error
}

// Valid reports whether the input produced a CPF.
func (r Result) Valid() bool {
	return r.Err == nil
}

// Checker runs bulk validations.
type Checker struct {
	workers int
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Checker.
type Option func(c *Checker)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Checker) {
		c.metrics = m
	}
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Checker) {
		c.tracer = t
	}
}

func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New returns a Checker running up to 8 validations at once unless
// WithWorkers says otherwise.
func New(opts ...Option) *Checker {
	c := &Checker{workers: 8}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("github.com/betafcc/cpf/bulk")
	}
	return c
}

// Check validates every input through cpf.From. Results keep input order;
// per-input failures are reported in Result.Err and never abort the batch.
//
// Errors: returns CodeInvalidInput when the batch is too large, or the
// context error if ctx is cancelled before all inputs are processed.
func (c *Checker) Check(ctx context.Context, inputs []string) (results []Result, err error) {
	ctx, span := c.tracer.Start(ctx, "bulk.Check",
		trace.WithAttributes(attribute.Int("cpf.batch_size", len(inputs))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := validation.CheckBulkSize(len(inputs)); err != nil {
		return nil, err
	}

	start := time.Now()
	results = make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		// each goroutine writes only its own slot
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkOne(i, input)
			if c.metrics != nil {
				c.metrics.observe(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.observeBatch(time.Since(start))
	}
	valid, invalid := Summary(results)
	span.SetAttributes(attribute.Int("cpf.valid", valid), attribute.Int("cpf.invalid", invalid))
	return results, nil
}

func (c *Checker) checkOne(idx int, input string) Result {
	if err := validation.CheckInputLength(input); err != nil {
		return Result{Input: input, Err: err}
	}
	parsed, err := cpf.From(input)
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("cpf rejected", "index", idx, "code", dErrors.CodeOf(err))
		}
		return Result{Input: input, Err: err}
	}
	if c.logger != nil {
		c.logger.Debug("cpf accepted", "index", idx, "cpf", privacy.MaskCPF(parsed.Format()))
	}
	return Result{Input: input, Cpf: parsed}
}

// Summary counts valid and invalid results.
func Summary(results []Result) (valid, invalid int) {
	for _, r := range results {
		if r.Valid() {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
