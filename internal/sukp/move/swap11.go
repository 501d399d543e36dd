package move

import (
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

func runSwap11(inst *model.Instance, b *bag.Bag, flavor Flavor, r *rand.Rand) Result {
	capacity := inst.Capacity
	adj := inst.Adjacency()
	ins, outs := inBag(b), outOfBag(inst, b)

	switch flavor {
	case First:
		for _, pIn := range ins {
			for _, pOut := range outs {
				delta := inst.Packages[pOut].Benefit - inst.Packages[pIn].Benefit
				if delta > 0 && b.CanSwap11(pIn, pOut, adj[pIn], adj[pOut], capacity) {
					b.Remove(pIn, adj[pIn])
					b.Add(pOut, adj[pOut])
					return Result{Improved: true, Delta: delta}
				}
			}
		}
		return Result{}

	case Best:
		bestIn, bestOut, bestDelta := -1, -1, 0
		for _, pIn := range ins {
			for _, pOut := range outs {
				delta := inst.Packages[pOut].Benefit - inst.Packages[pIn].Benefit
				if delta > 0 && delta > bestDelta && b.CanSwap11(pIn, pOut, adj[pIn], adj[pOut], capacity) {
					bestIn, bestOut, bestDelta = pIn, pOut, delta
				}
			}
		}
		if bestIn < 0 {
			return Result{}
		}
		b.Remove(bestIn, adj[bestIn])
		b.Add(bestOut, adj[bestOut])
		return Result{Improved: true, Delta: bestDelta}

	default: // RandomFlavor
		if len(ins) == 0 || len(outs) == 0 {
			return Result{}
		}
		trials := randomTrials(len(outs), len(ins))
		for t := 0; t < trials; t++ {
			pIn := ins[r.Intn(len(ins))]
			pOut := outs[r.Intn(len(outs))]
			delta := inst.Packages[pOut].Benefit - inst.Packages[pIn].Benefit
			if delta > 0 && b.CanSwap11(pIn, pOut, adj[pIn], adj[pOut], capacity) {
				b.Remove(pIn, adj[pIn])
				b.Add(pOut, adj[pOut])
				return Result{Improved: true, Delta: delta}
			}
		}
		return Result{}
	}
}
