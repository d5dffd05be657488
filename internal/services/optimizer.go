package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// OptimizerResult is the winning trial of an exhaustive search.
type OptimizerResult struct {
	Start         domain.Coordinate
	ClusterCount  int // zero when the strategy does not cluster
	Route         domain.Route
	TotalDistance float64
	Trials        int
}

// Optimizer exhaustively evaluates candidate starting points (and, for the
// cluster strategy, cluster counts) and keeps the shortest route.
//
// Trials are independent and read only the shared immutable index, so they
// run on a bounded worker pool. The winner is chosen by (total distance,
// trial enumeration order): lowest distance wins and the first-enumerated
// trial wins ties, which makes the outcome independent of goroutine
// scheduling.
type Optimizer struct {
	Workers int
}

type trial struct {
	ordinal      int
	start        domain.Coordinate
	clusterCount int
	builder      ports.RouteBuilder
}

// BestStart evaluates every candidate starting point with a fixed builder.
func (o *Optimizer) BestStart(
	ctx context.Context,
	points []domain.Coordinate,
	index domain.DistanceIndex,
	builder ports.RouteBuilder,
) (OptimizerResult, error) {
	if builder == nil {
		return OptimizerResult{}, errors.New("optimize: route builder must not be nil")
	}
	return o.sweep(ctx, points, index, func(int) ports.RouteBuilder { return builder }, []int{0})
}

// BestClusterPlan additionally sweeps every cluster count in
// [minClusters, maxClusters], evaluating len(points) × K trials. The factory
// constructs the builder for one cluster count.
func (o *Optimizer) BestClusterPlan(
	ctx context.Context,
	points []domain.Coordinate,
	index domain.DistanceIndex,
	factory func(clusterCount int) ports.RouteBuilder,
	minClusters, maxClusters int,
) (OptimizerResult, error) {
	if factory == nil {
		return OptimizerResult{}, errors.New("optimize: builder factory must not be nil")
	}
	if minClusters < 1 || maxClusters < minClusters {
		return OptimizerResult{}, fmt.Errorf("optimize: invalid cluster range [%d, %d]", minClusters, maxClusters)
	}

	counts := make([]int, 0, maxClusters-minClusters+1)
	for k := minClusters; k <= maxClusters; k++ {
		counts = append(counts, k)
	}
	return o.sweep(ctx, points, index, factory, counts)
}

func (o *Optimizer) sweep(
	ctx context.Context,
	points []domain.Coordinate,
	index domain.DistanceIndex,
	factory func(clusterCount int) ports.RouteBuilder,
	clusterCounts []int,
) (OptimizerResult, error) {
	if len(points) == 0 {
		return OptimizerResult{}, errors.New("optimize: point set must not be empty")
	}

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Builders are shared across the starts of one cluster count, never
	// across counts, so each sweep keeps its own partition.
	trials := make([]trial, 0, len(points)*len(clusterCounts))
	for _, k := range clusterCounts {
		builder := factory(k)
		for _, start := range points {
			trials = append(trials, trial{
				ordinal:      len(trials),
				start:        start,
				clusterCount: k,
				builder:      builder,
			})
		}
	}

	var (
		mu          sync.Mutex
		best        OptimizerResult
		bestOrdinal = -1
		executed    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, t := range trials {
		// Cooperative cancellation: stop scheduling trials once the context
		// is done; completed trials keep their results.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			route, err := t.builder.BuildRoute(t.start, index)
			if err != nil {
				// An incomplete route is reportable, not fatal, but it can
				// never win the search.
				if errors.Is(err, ErrIncompleteRoute) {
					mu.Lock()
					executed++
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("optimize: trial start=%v clusters=%d: %w", t.start, t.clusterCount, err)
			}

			total := route.TotalDistance()

			mu.Lock()
			executed++
			if bestOrdinal < 0 ||
				total < best.TotalDistance ||
				(total == best.TotalDistance && t.ordinal < bestOrdinal) {
				bestOrdinal = t.ordinal
				best = OptimizerResult{
					Start:         t.start,
					ClusterCount:  t.clusterCount,
					Route:         route,
					TotalDistance: total,
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return OptimizerResult{}, err
	}

	best.Trials = executed
	if err := ctx.Err(); err != nil {
		// Interrupted: hand back the best result found so far with the
		// context error so callers can decide whether to use it.
		return best, err
	}
	if bestOrdinal < 0 {
		return OptimizerResult{}, errors.New("optimize: no trial produced a complete route")
	}
	return best, nil
}
