// Package vns implements Variable Neighborhood Search: Shake(k) followed by
// local search, incrementing k on no improvement and resetting it on
// improvement, per spec §4.7.
package vns

import (
	"context"
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/localsearch"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
	"github.com/gosukp/sukp/internal/sukp/repair"
)

// Params configures a VNS run; zero values take spec §9's defaults.
// KMax defaults to len(move.Neighborhoods).
type Params struct {
	StallCap int
	TotalCap int
	KMax     int
	Flavor   move.Flavor
}

// Shake removes min(k, |members|) uniformly random members from a clone of
// b, then attempts to add up to k packages drawn in shuffled order from
// outside, each only if feasible (spec §4.7 step 1).
func Shake(inst *model.Instance, b *bag.Bag, k int, r *rand.Rand) *bag.Bag {
	clone := b.Clone()
	adj := inst.Adjacency()

	members := clone.Members()
	r.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
	remove := k
	if remove > len(members) {
		remove = len(members)
	}
	for i := 0; i < remove; i++ {
		p := members[i]
		clone.Remove(p, adj[p])
	}

	outside := make([]int, 0, len(inst.Packages))
	for i := range inst.Packages {
		if !clone.Has(i) {
			outside = append(outside, i)
		}
	}
	r.Shuffle(len(outside), func(i, j int) { outside[i], outside[j] = outside[j], outside[i] })

	added := 0
	for _, p := range outside {
		if added >= k {
			break
		}
		if clone.CanAdd(p, adj[p], inst.Capacity) {
			clone.Add(p, adj[p])
			added++
		}
	}
	return clone
}

// Run starts from incumbent and repeats Shake+repair+local-search+repair,
// accepting improvements and resetting k to 1, incrementing k otherwise,
// stopping at k > KMax or when ctx is done.
func Run(ctx context.Context, inst *model.Instance, incumbent *bag.Bag, r *rand.Rand, p Params) *bag.Bag {
	kMax := p.KMax
	if kMax <= 0 {
		kMax = len(move.Neighborhoods)
	}
	sp := localsearch.Params{StallCap: p.StallCap, TotalCap: p.TotalCap}
	flavor := p.Flavor

	best := incumbent
	k := 1
	for k <= kMax {
		select {
		case <-ctx.Done():
			return finish(best)
		default:
		}

		clone := Shake(inst, best, k, r)
		clone = repair.Run(inst, clone, r)

		nIdx := k - 1
		if nIdx < 0 {
			nIdx = 0
		}
		if nIdx >= len(move.Neighborhoods) {
			nIdx = len(move.Neighborhoods) - 1
		}
		localsearch.Run(ctx, inst, clone, move.Neighborhoods[nIdx], flavor, r, sp)
		clone = repair.Run(inst, clone, r)

		if !clone.Infeasible && clone.Benefit() > best.Benefit() {
			best = clone
			k = 1
		} else {
			k++
		}
	}
	return finish(best)
}

func finish(b *bag.Bag) *bag.Bag {
	b.Algorithm = string(ids.VNS)
	return b
}
