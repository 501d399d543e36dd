// Package solve implements the solver façade: given an instance, a
// wall-clock budget, a master seed, and a timestamp, it runs the full
// portfolio of constructive heuristics and metaheuristics and returns an
// ordered list of solutions, per spec §4.9.
package solve

import (
	"context"
	"time"

	"github.com/sdboyer/constext"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/construct"
	"github.com/gosukp/sukp/internal/sukp/grasp"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/localsearch"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
	"github.com/gosukp/sukp/internal/sukp/rng"
	"github.com/gosukp/sukp/internal/sukp/vnd"
	"github.com/gosukp/sukp/internal/sukp/vns"
)

// Solution is the language-neutral result spec §6 describes, realized as a
// Go struct.
type Solution struct {
	Members      []int
	UnionDeps    []int
	Size         int
	Benefit      int
	Algorithm    string
	Movement     string
	LocalSearch  string
	Repair       string
	Elapsed      time.Duration
	Seed         uint64
	Params       string
	Infeasible   bool
}

func fromBag(b *bag.Bag) Solution {
	return Solution{
		Members:     b.Members(),
		UnionDeps:   b.UnionDeps(),
		Size:        b.Size(),
		Benefit:     b.Benefit(),
		Algorithm:   b.Algorithm,
		Movement:    b.Movement,
		LocalSearch: b.LocalSearch,
		Repair:      b.Repair,
		Elapsed:     time.Duration(b.Elapsed * float64(time.Second)),
		Seed:        b.Seed,
		Params:      b.Params,
		Infeasible:  b.Infeasible,
	}
}

// Options tunes the façade beyond spec §4.9's fixed portfolio shape.
type Options struct {
	EnableGRASP    bool
	RCLSize        int
	StallCap       int
	TotalCap       int
	StopRequested  <-chan struct{} // spec §5's cooperative stop flag
}

// Solve runs the fixed portfolio of spec §4.9 and returns every solution it
// produced, in portfolio order, with infeasible attempts dropped from the
// returned slice (spec §7). Dropped attempts are not counted or reported
// anywhere.
func Solve(ctx context.Context, inst *model.Instance, budget time.Duration, masterSeed uint64, timestamp time.Time, opts Options) []Solution {
	start := time.Now()
	deadline := start.Add(budget)
	dctx, cancelDeadline := context.WithDeadline(ctx, deadline)
	defer cancelDeadline()

	runCtx := dctx
	if opts.StopRequested != nil {
		stopCtx, cancelStop := stopContext(opts.StopRequested)
		defer cancelStop()
		merged, cancelMerge := constext.Cons(dctx, stopCtx)
		defer cancelMerge()
		runCtx = merged
	}

	provider := rng.New(masterSeed)

	if inst.Empty() {
		empty := bag.New(inst)
		empty.Algorithm = string(ids.Random)
		empty.Movement = string(ids.MoveNone)
		empty.LocalSearch = string(ids.NoLocalSearch)
		empty.Seed = masterSeed
		return []Solution{fromBag(empty)}
	}

	searchParams := localsearch.Params{StallCap: opts.StallCap, TotalCap: opts.TotalCap}

	var candidates []*bag.Bag

	// 1. One random bag.
	r := provider.Stream()
	candidates = append(candidates, withSeed(construct.RunWithPostSearch(runCtx, inst, r, phaseBudget(budget, 10), func(cctx context.Context) *bag.Bag {
		return construct.Random(cctx, inst, r)
	}), masterSeed))

	// 2. Three greedy bags (three sort orders).
	for _, order := range []construct.GreedyOrder{construct.ByBenefitDesc, construct.ByBenefitToSizeRatioDesc, construct.BySizeAsc} {
		order := order
		rg := provider.Stream()
		b := construct.RunWithPostSearch(runCtx, inst, rg, phaseBudget(budget, 10), func(cctx context.Context) *bag.Bag {
			return construct.Greedy(cctx, inst, order)
		})
		candidates = append(candidates, withSeed(b, masterSeed))
	}

	// 3. Three semi-random-greedy bags.
	for i := 0; i < 3; i++ {
		rs := provider.Stream()
		b := construct.RunWithPostSearch(runCtx, inst, rs, phaseBudget(budget, 10), func(cctx context.Context) *bag.Bag {
			return construct.SemiRandom(cctx, inst, rs, construct.SemiRandomParams{RCLSize: rclSizeOrDefault(opts), Alpha: -1})
		})
		candidates = append(candidates, withSeed(b, masterSeed))
	}

	// 4. Select the best of the above as the improvement starting point.
	start0 := bestOf(candidates)

	var results []Solution
	for _, c := range candidates {
		results = append(results, fromBag(c))
	}

	// 5. One VND pass.
	rVND := provider.Stream()
	vndOut := vnd.Run(runCtx, inst, start0.Clone(), rVND, vnd.Params{StallCap: opts.StallCap, TotalCap: opts.TotalCap})
	vndOut.Seed = masterSeed
	results = append(results, fromBag(vndOut))

	// 6. Three VNS passes, one per local-search flavor.
	flavors := []move.Flavor{move.First, move.Best, move.RandomFlavor}
	for _, fl := range flavors {
		rVNS := provider.Stream()
		vnsOut := vns.Run(runCtx, inst, start0.Clone(), rVNS, vns.Params{
			StallCap: opts.StallCap, TotalCap: opts.TotalCap, Flavor: fl,
		})
		vnsOut.Seed = masterSeed
		results = append(results, fromBag(vnsOut))
	}

	// 7. Optionally GRASP and GRASP+VNS.
	if opts.EnableGRASP {
		gStart := time.Now()
		gOut, _ := grasp.Run(runCtx, inst, provider, grasp.Params{
			Variant:      grasp.Plain,
			Neighborhood: move.Add,
			RCLSize:      rclSizeOrDefault(opts),
			Alpha:        -1,
			SearchParams: searchParams,
		})
		if gOut != nil {
			grasp.StampAlgorithm(gOut, grasp.Plain, gStart)
			gOut.Seed = masterSeed
			results = append(results, fromBag(gOut))
		}

		gvStart := time.Now()
		gvOut, _ := grasp.Run(runCtx, inst, provider, grasp.Params{
			Variant: grasp.WithVNS,
			RCLSize: rclSizeOrDefault(opts),
			Alpha:   -1,
			VNSParams: vns.Params{StallCap: opts.StallCap, TotalCap: opts.TotalCap},
		})
		if gvOut != nil {
			grasp.StampAlgorithm(gvOut, grasp.WithVNS, gvStart)
			gvOut.Seed = masterSeed
			results = append(results, fromBag(gvOut))
		}
	}

	_ = timestamp // retained on Solution metadata by callers that persist reports
	return dropInfeasible(results)
}

func rclSizeOrDefault(opts Options) int {
	if opts.RCLSize > 0 {
		return opts.RCLSize
	}
	return 8
}

func phaseBudget(total time.Duration, fraction int64) time.Duration {
	return total * time.Duration(fraction) / 100
}

func withSeed(b *bag.Bag, seed uint64) *bag.Bag {
	b.Seed = seed
	return b
}

func bestOf(bags []*bag.Bag) *bag.Bag {
	best := bags[0]
	for _, b := range bags[1:] {
		if !b.Infeasible && (best.Infeasible || b.Benefit() > best.Benefit()) {
			best = b
		}
	}
	return best
}

func dropInfeasible(sols []Solution) []Solution {
	out := sols[:0]
	for _, s := range sols {
		if !s.Infeasible {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		// spec §7: never fewer than one element — the empty bag stands in.
		out = append(out, Solution{Algorithm: string(ids.Random), Movement: string(ids.MoveNone), LocalSearch: string(ids.NoLocalSearch)})
	}
	return out
}

// stopContext adapts a <-chan struct{} stop signal into a context that is
// Done once the channel is closed or receives, for merging with the
// deadline context via constext.
func stopContext(stop <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
