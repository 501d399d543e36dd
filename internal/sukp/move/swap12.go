package move

import (
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// runSwap12 implements SWAP 1↔2: remove one member, add two non-members,
// accepting when their combined benefit exceeds the removed package's
// (spec §4.2's table).
func runSwap12(inst *model.Instance, b *bag.Bag, flavor Flavor, r *rand.Rand) Result {
	capacity := inst.Capacity
	adj := inst.Adjacency()
	ins, outs := inBag(b), outOfBag(inst, b)
	if len(outs) < 2 {
		return Result{}
	}

	evaluate := func(pIn, pa, pb int) (int, bool) {
		delta := inst.Packages[pa].Benefit + inst.Packages[pb].Benefit - inst.Packages[pIn].Benefit
		if delta <= 0 {
			return delta, false
		}
		ok := b.CanSwap1K(pIn, []int{pa, pb}, adj[pIn], [][]int{adj[pa], adj[pb]}, capacity)
		return delta, ok
	}

	switch flavor {
	case First:
		for _, pIn := range ins {
			for i := 0; i < len(outs); i++ {
				for j := i + 1; j < len(outs); j++ {
					pa, pb := outs[i], outs[j]
					if delta, ok := evaluate(pIn, pa, pb); ok {
						b.Remove(pIn, adj[pIn])
						b.Add(pa, adj[pa])
						b.Add(pb, adj[pb])
						return Result{Improved: true, Delta: delta}
					}
				}
			}
		}
		return Result{}

	case Best:
		bestIn, bestA, bestB, bestDelta := -1, -1, -1, 0
		for _, pIn := range ins {
			for i := 0; i < len(outs); i++ {
				for j := i + 1; j < len(outs); j++ {
					pa, pb := outs[i], outs[j]
					delta, ok := evaluate(pIn, pa, pb)
					if ok && delta > bestDelta {
						bestIn, bestA, bestB, bestDelta = pIn, pa, pb, delta
					}
				}
			}
		}
		if bestIn < 0 {
			return Result{}
		}
		b.Remove(bestIn, adj[bestIn])
		b.Add(bestA, adj[bestA])
		b.Add(bestB, adj[bestB])
		return Result{Improved: true, Delta: bestDelta}

	default: // RandomFlavor
		if len(ins) == 0 {
			return Result{}
		}
		trials := randomTrials(len(outs), len(ins))
		for t := 0; t < trials; t++ {
			pIn := ins[r.Intn(len(ins))]
			i, j := r.Intn(len(outs)), r.Intn(len(outs))
			if i == j {
				continue
			}
			pa, pb := outs[i], outs[j]
			if delta, ok := evaluate(pIn, pa, pb); ok {
				b.Remove(pIn, adj[pIn])
				b.Add(pa, adj[pa])
				b.Add(pb, adj[pb])
				return Result{Improved: true, Delta: delta}
			}
		}
		return Result{}
	}
}
