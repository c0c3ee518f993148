// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/uncertainty/pkg/logging"
)

// Solver defaults. The population and generation budget are sized for the
// low-dimensional searches that arise from measure supports (tens of
// coordinates, not thousands).
const (
	defaultSeed           = 1
	defaultPopulation     = 40
	defaultMaxGenerations = 1000
	defaultDifferential   = 0.8 // DE mutation factor F
	defaultCrossover      = 0.9 // DE crossover rate CR
)

// Option configures ImposeExpectation.
type Option func(*solverOptions)

type solverOptions struct {
	seed           int64
	population     int
	maxGenerations int
	parallelism    int
	logger         *slog.Logger
}

// WithSeed sets the RNG seed. The search is deterministic for a fixed
// seed and fixed inputs.
func WithSeed(seed int64) Option {
	return func(o *solverOptions) { o.seed = seed }
}

// WithPopulation sets the number of candidate position vectors kept per
// generation. Values below 4 are raised to 4 (the mutation scheme needs
// three distinct partners per candidate).
func WithPopulation(n int) Option {
	return func(o *solverOptions) { o.population = n }
}

// WithMaxGenerations caps the search. When the cap is reached without
// satisfying the tolerance, ImposeExpectation returns ErrInfeasible.
func WithMaxGenerations(n int) Option {
	return func(o *solverOptions) { o.maxGenerations = n }
}

// WithParallelism evaluates up to n candidates concurrently per
// generation. The objective function must be safe for concurrent calls
// when n > 1.
func WithParallelism(n int) Option {
	return func(o *solverOptions) { o.parallelism = n }
}

// WithLogger overrides the solver's logger. Progress is logged at Debug
// level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *solverOptions) { o.logger = logger }
}

func newSolverOptions(opts []Option) solverOptions {
	o := solverOptions{
		seed:           defaultSeed,
		population:     defaultPopulation,
		maxGenerations: defaultMaxGenerations,
		parallelism:    1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.population < 4 {
		o.population = 4
	}
	if o.maxGenerations < 1 {
		o.maxGenerations = 1
	}
	if o.parallelism < 1 {
		o.parallelism = 1
	}
	if o.logger == nil {
		o.logger = logging.Default().Slog()
	}
	return o
}

// ImposeExpectation searches for joint grid positions whose expectation of
// f lands within target.Tolerance of target.Mean, holding the joint
// weights and per-dimension point counts fixed.
//
// The search runs differential evolution over the flattened per-dimension
// support positions (one coordinate per support point, sum(counts) in
// total); each candidate is expanded to the joint grid in canonical order
// before scoring. Candidates are clamped to bounds; a nil bounds defaults
// to the unit hypercube [0, 1] per coordinate.
//
// Inputs:
//   - ctx: Cancellation is checked once per generation.
//   - target: Desired expectation and acceptable deviation.
//   - f: Objective over one joint coordinate tuple.
//   - counts: Per-dimension support point counts. All must be positive.
//   - bounds: Optional per-coordinate search bounds (nil for [0, 1]).
//   - weights: Joint grid weights, length = product of counts, in the
//     same canonical order Pack produces.
//
// Outputs:
//   - The joint grid positions (one tuple per grid point, canonical
//     order) of the best candidate found, ready to assign to a product
//     measure's coordinates.
//   - ErrInfeasible when the generation budget is exhausted without
//     reaching the tolerance; the error records the best deviation seen.
//
// Thread Safety: Safe for concurrent use; each call owns its RNG and
// population.
func ImposeExpectation(ctx context.Context, target ExpectTarget, f Func, counts []int, bounds *Bounds, weights []float64, opts ...Option) ([][]float64, error) {
	if f == nil {
		return nil, ErrNilObjective
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	total, err := GridSize(counts)
	if err != nil {
		return nil, err
	}
	if len(weights) != total {
		return nil, fmt.Errorf("%w: weights has %d elements, counts imply %d",
			ErrInvalidCounts, len(weights), total)
	}

	nvars := 0
	for _, n := range counts {
		nvars += n
	}
	if bounds == nil {
		bounds = unitBounds(nvars)
	} else if err := bounds.validate(nvars); err != nil {
		return nil, err
	}

	o := newSolverOptions(opts)

	ctx, span := otel.Tracer("uncertainty").Start(ctx, "stats.ImposeExpectation",
		trace.WithAttributes(
			attribute.Int("dimensions", len(counts)),
			attribute.Int("variables", nvars),
			attribute.Int("population", o.population),
			attribute.Float64("target", target.Mean),
			attribute.Float64("tolerance", target.Tolerance),
		),
	)
	defer span.End()

	s := &deSearch{
		f:       f,
		counts:  counts,
		weights: weights,
		bounds:  bounds,
		target:  target,
		opts:    o,
		rng:     rand.New(rand.NewSource(o.seed)),
	}

	best, deviation, gens, err := s.run(ctx)
	span.SetAttributes(
		attribute.Int("generations", gens),
		attribute.Float64("deviation", deviation),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "expectation search failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "expectation imposed")

	return s.expand(best), nil
}

// deSearch holds one differential evolution run (rand/1/bin scheme).
type deSearch struct {
	f       Func
	counts  []int
	weights []float64
	bounds  *Bounds
	target  ExpectTarget
	opts    solverOptions
	rng     *rand.Rand
}

// expand turns a flat candidate into joint grid tuples.
func (s *deSearch) expand(candidate []float64) [][]float64 {
	dims := make([][]float64, len(s.counts))
	off := 0
	for d, n := range s.counts {
		dims[d] = candidate[off : off+n]
		off += n
	}
	return Pack(dims)
}

// score is the deviation of a candidate's expectation from the target.
func (s *deSearch) score(candidate []float64) float64 {
	e := expectationOf(s.f, s.expand(candidate), s.weights)
	return math.Abs(e - s.target.Mean)
}

// scoreAll evaluates every candidate, concurrently when parallelism > 1.
func (s *deSearch) scoreAll(ctx context.Context, candidates [][]float64, scores []float64) error {
	if s.opts.parallelism == 1 {
		for i, c := range candidates {
			scores[i] = s.score(c)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.parallelism)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = s.score(c)
			return nil
		})
	}
	return g.Wait()
}

// run executes the evolution loop. Returns the best candidate, its
// deviation from the target, and the number of generations consumed.
func (s *deSearch) run(ctx context.Context) ([]float64, float64, int, error) {
	np := s.opts.population
	nvars := len(s.bounds.Lower)

	// Seed the population uniformly inside the bounds.
	pop := make([][]float64, np)
	for i := range pop {
		c := make([]float64, nvars)
		for j := range c {
			lo, hi := s.bounds.Lower[j], s.bounds.Upper[j]
			c[j] = lo + s.rng.Float64()*(hi-lo)
		}
		pop[i] = c
	}
	scores := make([]float64, np)
	if err := s.scoreAll(ctx, pop, scores); err != nil {
		return nil, 0, 0, err
	}

	bestIdx := 0
	for i, sc := range scores {
		if sc < scores[bestIdx] {
			bestIdx = i
		}
	}
	if scores[bestIdx] <= s.target.Tolerance {
		return pop[bestIdx], scores[bestIdx], 0, nil
	}

	trials := make([][]float64, np)
	trialScores := make([]float64, np)
	for i := range trials {
		trials[i] = make([]float64, nvars)
	}

	for gen := 1; gen <= s.opts.maxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, gen, err
		}

		// Mutation and crossover are sequential so the RNG stream stays
		// deterministic; only scoring fans out.
		for i := range pop {
			a, b, c := s.pickPartners(i, np)
			jrand := s.rng.Intn(nvars)
			trial := trials[i]
			for j := 0; j < nvars; j++ {
				if j == jrand || s.rng.Float64() < defaultCrossover {
					v := pop[a][j] + defaultDifferential*(pop[b][j]-pop[c][j])
					trial[j] = clamp(v, s.bounds.Lower[j], s.bounds.Upper[j])
				} else {
					trial[j] = pop[i][j]
				}
			}
		}
		if err := s.scoreAll(ctx, trials, trialScores); err != nil {
			return nil, 0, gen, err
		}

		for i := range pop {
			if trialScores[i] <= scores[i] {
				pop[i], trials[i] = trials[i], pop[i]
				scores[i] = trialScores[i]
				if scores[i] < scores[bestIdx] {
					bestIdx = i
				}
			}
		}

		if gen%100 == 0 {
			s.opts.logger.Debug("expectation search progress",
				"generation", gen,
				"deviation", scores[bestIdx],
				"tolerance", s.target.Tolerance,
			)
		}
		if scores[bestIdx] <= s.target.Tolerance {
			return pop[bestIdx], scores[bestIdx], gen, nil
		}
	}

	return nil, scores[bestIdx], s.opts.maxGenerations, fmt.Errorf(
		"%w: best deviation %g after %d generations (tolerance %g)",
		ErrInfeasible, scores[bestIdx], s.opts.maxGenerations, s.target.Tolerance)
}

// pickPartners draws three distinct population indices, all different
// from i.
func (s *deSearch) pickPartners(i, np int) (int, int, int) {
	a := i
	for a == i {
		a = s.rng.Intn(np)
	}
	b := i
	for b == i || b == a {
		b = s.rng.Intn(np)
	}
	c := i
	for c == i || c == a || c == b {
		c = s.rng.Intn(np)
	}
	return a, b, c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
