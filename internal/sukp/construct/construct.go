// Package construct implements the constructive heuristics of spec §4.5:
// random, greedy (three sort orders), and semi-random/GRASP-style RCL
// construction.
package construct

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// GreedyOrder selects one of the three pre-sort orders from spec §4.5.
type GreedyOrder int

const (
	ByBenefitDesc GreedyOrder = iota
	ByBenefitToSizeRatioDesc
	BySizeAsc
)

// Random builds a Bag by repeatedly picking a uniformly random remaining
// candidate, adding it if feasible and dropping it otherwise, until the
// candidate list is empty or the deadline elapses (spec §4.5).
func Random(ctx context.Context, inst *model.Instance, r *rand.Rand) *bag.Bag {
	b := bag.New(inst)
	b.Algorithm = string(ids.Random)
	adj := inst.Adjacency()

	remaining := make([]int, len(inst.Packages))
	for i := range remaining {
		remaining[i] = i
	}
	r.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

	for _, p := range remaining {
		select {
		case <-ctx.Done():
			return b
		default:
		}
		if b.CanAdd(p, adj[p], inst.Capacity) {
			b.Add(p, adj[p])
		}
	}
	return b
}

func sortKey(inst *model.Instance, order GreedyOrder) func(i, j int) bool {
	packages := inst.Packages
	switch order {
	case ByBenefitDesc:
		return func(i, j int) bool { return packages[i].Benefit > packages[j].Benefit }
	case BySizeAsc:
		return func(i, j int) bool { return inst.StandaloneSize(packages[i]) < inst.StandaloneSize(packages[j]) }
	default: // ByBenefitToSizeRatioDesc
		ratio := func(p model.Package) float64 {
			size := inst.StandaloneSize(p)
			if size == 0 {
				return float64(p.Benefit)
			}
			return float64(p.Benefit) / float64(size)
		}
		return func(i, j int) bool { return ratio(packages[i]) > ratio(packages[j]) }
	}
}

func algorithmFor(order GreedyOrder) ids.Algorithm {
	switch order {
	case ByBenefitDesc:
		return ids.GreedyPackageBenefit
	case BySizeAsc:
		return ids.GreedyPackageSize
	default:
		return ids.GreedyPackageBenefitRatio
	}
}

// Greedy pre-sorts candidates by order and adds each from the front while
// it fits (spec §4.5).
func Greedy(ctx context.Context, inst *model.Instance, order GreedyOrder) *bag.Bag {
	b := bag.New(inst)
	b.Algorithm = string(algorithmFor(order))
	adj := inst.Adjacency()

	order_ := make([]int, len(inst.Packages))
	for i := range order_ {
		order_[i] = i
	}
	sort.SliceStable(order_, sortKey(inst, order))

	for _, p := range order_ {
		select {
		case <-ctx.Done():
			return b
		default:
		}
		if b.CanAdd(p, adj[p], inst.Capacity) {
			b.Add(p, adj[p])
		}
	}
	return b
}

// SemiRandomParams configures RCL construction.
type SemiRandomParams struct {
	RCLSize int
	// Alpha in [0,1] fixes the threshold mix; a negative Alpha means draw a
	// fresh alpha uniformly in [0,1] at every step (spec §4.5).
	Alpha float64
}

// SemiRandom builds a Bag using a Restricted Candidate List: at each step
// compute a greedy score for every addable candidate, take the top-k, and
// uniformly pick among those at or above an alpha-interpolated threshold
// (spec §4.5's GRASP-style construction).
func SemiRandom(ctx context.Context, inst *model.Instance, r *rand.Rand, p SemiRandomParams) *bag.Bag {
	b := bag.New(inst)
	b.Algorithm = string(ids.RandomGreedyPackage)
	adj := inst.Adjacency()

	remaining := make(map[int]bool, len(inst.Packages))
	for i := range inst.Packages {
		remaining[i] = true
	}

	var iterations, greedyPicks int64
	for len(remaining) > 0 {
		select {
		case <-ctx.Done():
			b.Params = ids.ParamString(p.Alpha, p.RCLSize, iterations, greedyPicks)
			return b
		default:
		}

		type scored struct {
			p     int
			score float64
		}
		var addable []scored
		for p := range remaining {
			if !b.CanAdd(p, adj[p], inst.Capacity) {
				continue
			}
			added := b.AddedSize(adj[p])
			benefit := float64(inst.Packages[p].Benefit)
			var s float64
			if added == 0 {
				s = posInf
			} else {
				s = 0.7*(benefit/float64(added)) + 0.3*(benefit/1000)
			}
			addable = append(addable, scored{p, s})
		}
		if len(addable) == 0 {
			break
		}

		sort.Slice(addable, func(i, j int) bool { return addable[i].score > addable[j].score })
		k := p.RCLSize
		if k > len(addable) {
			k = len(addable)
		}
		if k < 1 {
			k = 1
		}
		top := addable[:k]

		alpha := p.Alpha
		if alpha < 0 {
			alpha = r.Float64()
		}
		best, worst := top[0].score, top[len(top)-1].score
		threshold := best - alpha*(best-worst)

		var eligible []int
		for _, c := range top {
			if c.score >= threshold {
				eligible = append(eligible, c.p)
			}
		}
		chosen := eligible[r.Intn(len(eligible))]
		if chosen == top[0].p {
			greedyPicks++
		}
		b.Add(chosen, adj[chosen])
		delete(remaining, chosen)
		iterations++
	}
	b.Params = ids.ParamString(p.Alpha, p.RCLSize, iterations, greedyPicks)
	return b
}

const posInf = 1e18

// PostSearchBudget splits an overall deadline into the constructive phase
// (80%) and two local-search passes (10% each), per spec §4.5.
func PostSearchBudget(start time.Time, total time.Duration) (construct, search1, search2 time.Time) {
	c := total * 8 / 10
	s1 := total / 10
	s2 := total - c - s1
	construct = start.Add(c)
	search1 = construct.Add(s1)
	search2 = search1.Add(s2)
	return
}
