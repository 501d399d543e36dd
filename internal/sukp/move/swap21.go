package move

import (
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// runSwap21 implements SWAP 2↔1: remove two members, add one non-member,
// accepting when its benefit exceeds their combined benefit (spec §4.2's
// table).
func runSwap21(inst *model.Instance, b *bag.Bag, flavor Flavor, r *rand.Rand) Result {
	capacity := inst.Capacity
	adj := inst.Adjacency()
	ins, outs := inBag(b), outOfBag(inst, b)
	if len(ins) < 2 {
		return Result{}
	}

	evaluate := func(pa, pb, pOut int) (int, bool) {
		delta := inst.Packages[pOut].Benefit - inst.Packages[pa].Benefit - inst.Packages[pb].Benefit
		if delta <= 0 {
			return delta, false
		}
		ok := b.CanSwapK1([]int{pa, pb}, pOut, [][]int{adj[pa], adj[pb]}, adj[pOut], capacity)
		return delta, ok
	}

	switch flavor {
	case First:
		for i := 0; i < len(ins); i++ {
			for j := i + 1; j < len(ins); j++ {
				pa, pb := ins[i], ins[j]
				for _, pOut := range outs {
					if delta, ok := evaluate(pa, pb, pOut); ok {
						b.Remove(pa, adj[pa])
						b.Remove(pb, adj[pb])
						b.Add(pOut, adj[pOut])
						return Result{Improved: true, Delta: delta}
					}
				}
			}
		}
		return Result{}

	case Best:
		bestA, bestB, bestOut, bestDelta := -1, -1, -1, 0
		for i := 0; i < len(ins); i++ {
			for j := i + 1; j < len(ins); j++ {
				pa, pb := ins[i], ins[j]
				for _, pOut := range outs {
					delta, ok := evaluate(pa, pb, pOut)
					if ok && delta > bestDelta {
						bestA, bestB, bestOut, bestDelta = pa, pb, pOut, delta
					}
				}
			}
		}
		if bestA < 0 {
			return Result{}
		}
		b.Remove(bestA, adj[bestA])
		b.Remove(bestB, adj[bestB])
		b.Add(bestOut, adj[bestOut])
		return Result{Improved: true, Delta: bestDelta}

	default: // RandomFlavor
		if len(outs) == 0 {
			return Result{}
		}
		trials := randomTrials(len(outs), len(ins))
		for t := 0; t < trials; t++ {
			i, j := r.Intn(len(ins)), r.Intn(len(ins))
			if i == j {
				continue
			}
			pa, pb := ins[i], ins[j]
			pOut := outs[r.Intn(len(outs))]
			if delta, ok := evaluate(pa, pb, pOut); ok {
				b.Remove(pa, adj[pa])
				b.Remove(pb, adj[pb])
				b.Add(pOut, adj[pOut])
				return Result{Improved: true, Delta: delta}
			}
		}
		return Result{}
	}
}
