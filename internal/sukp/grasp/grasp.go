// Package grasp implements the parallel GRASP and GRASP+VNS metaheuristics:
// independent workers each running randomized-greedy construction plus a
// local-search or VNS pass, periodically syncing a shared best Bag, per
// spec §4.8.
package grasp

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/construct"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/localsearch"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
	"github.com/gosukp/sukp/internal/sukp/rng"
	"github.com/gosukp/sukp/internal/sukp/vns"
)

const (
	// SyncFreq is how often (in iterations) a worker compares its local
	// best against the shared best, per spec §4.8.
	SyncFreq = 10
	// TimeCheckFreq is how often a worker checks the deadline, per spec
	// §4.8.
	TimeCheckFreq = 10
)

// Variant selects between plain GRASP (construction + one best-improvement
// local search) and GRASP+VNS (construction + a full VNS loop).
type Variant int

const (
	Plain Variant = iota
	WithVNS
)

// Params configures a GRASP run.
type Params struct {
	Variant       Variant
	Neighborhood  move.Neighborhood // used only by Plain
	Flavor        move.Flavor
	RCLSize       int
	Alpha         float64
	MaxIterations int64 // per worker; 0 means unbounded (deadline-only)
	SearchParams  localsearch.Params
	VNSParams     vns.Params
}

// Diagnostics exposes the atomic counters spec §4.8 requires for the run's
// parameter summary.
type Diagnostics struct {
	Iterations   atomic.Int64
	Improvements atomic.Int64
}

// sharedBest is the mutex-guarded slot every worker compares against and
// may replace, per spec §5's "Mutex-protected" shared-resource policy.
type sharedBest struct {
	mu   sync.Mutex
	best *bag.Bag
}

func (s *sharedBest) maybeReplace(candidate *bag.Bag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil || candidate.Benefit() > s.best.Benefit() {
		s.best = candidate.Clone()
	}
}

func (s *sharedBest) snapshot() *bag.Bag {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil {
		return nil
	}
	return s.best.Clone()
}

// WorkerCount implements spec §4.8's sizing rule:
// min(hardware_parallelism, max(1, |deps|/100 + 1), |packages|), further
// capped to 2 when |packages| < 200.
func WorkerCount(inst *model.Instance) int {
	hw := runtime.GOMAXPROCS(0)
	byDeps := len(inst.Deps)/100 + 1
	if byDeps < 1 {
		byDeps = 1
	}
	n := hw
	if byDeps < n {
		n = byDeps
	}
	if len(inst.Packages) < n {
		n = len(inst.Packages)
	}
	if n < 1 {
		n = 1
	}
	if len(inst.Packages) < 200 && n > 2 {
		n = 2
	}
	return n
}

// Run launches WorkerCount(inst) workers until ctx is done, each seeded
// from an independent stream derived from provider, and returns the final
// shared-best Bag (nil if no worker ever produced a feasible one).
func Run(ctx context.Context, inst *model.Instance, provider *rng.Provider, p Params) (*bag.Bag, Diagnostics) {
	workers := WorkerCount(inst)
	streams := provider.Streams(workers)

	shared := &sharedBest{}
	var diag Diagnostics

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			runWorker(gctx, inst, streams[w], p, shared, &diag)
			return nil
		})
	}
	_ = g.Wait()

	return shared.snapshot(), diag
}

func runWorker(ctx context.Context, inst *model.Instance, r *rand.Rand, p Params, shared *sharedBest, diag *Diagnostics) {
	var localBest *bag.Bag
	var iter, improvements int64

	for {
		if p.MaxIterations > 0 && iter >= p.MaxIterations {
			if localBest != nil {
				shared.maybeReplace(localBest)
			}
			return
		}
		if iter%TimeCheckFreq == 0 {
			select {
			case <-ctx.Done():
				if localBest != nil {
					shared.maybeReplace(localBest)
				}
				return
			default:
			}
		}

		rclSize := p.RCLSize
		if rclSize <= 0 {
			rclSize = 8
		}
		candidate := construct.SemiRandom(ctx, inst, r, construct.SemiRandomParams{RCLSize: rclSize, Alpha: p.Alpha})

		promising := candidate.Size() < (inst.Capacity*95)/100
		if localBest != nil && candidate.Benefit() > localBest.Benefit() {
			promising = true
		}

		if promising {
			switch p.Variant {
			case WithVNS:
				candidate = vns.Run(ctx, inst, candidate, r, p.VNSParams)
			default:
				localsearch.Run(ctx, inst, candidate, p.Neighborhood, move.Best, r, p.SearchParams)
			}
		}

		if localBest == nil || candidate.Benefit() > localBest.Benefit() {
			localBest = candidate
			improvements++
			diag.Improvements.Add(1)
		}

		iter++
		diag.Iterations.Add(1)
		localBest.Params = ids.ParamString(p.Alpha, rclSize, iter, improvements)

		if iter%SyncFreq == 0 {
			shared.maybeReplace(localBest)
		}
	}
}

func finishAlgorithm(variant Variant) ids.Algorithm {
	if variant == WithVNS {
		return ids.GRASPVNS
	}
	return ids.GRASP
}

// StampAlgorithm sets the algorithm identifier and elapsed time on the
// given Bag after a Run, so the façade doesn't need to know GRASP's
// internals.
func StampAlgorithm(b *bag.Bag, variant Variant, start time.Time) {
	if b == nil {
		return
	}
	b.Algorithm = string(finishAlgorithm(variant))
	b.Elapsed = time.Since(start).Seconds()
}
