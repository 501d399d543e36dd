package move

import (
	"math/rand"
	"sort"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// ejectionAttempt tentatively removes pIn, then greedily adds packages from
// outs (sorted descending by benefit) while they fit, committing only if
// the resulting benefit exceeds the benefit pIn contributed. It mutates b
// in place either way (spec §4.2: "checked incrementally"), returning
// whether the attempt was kept and its net delta.
func ejectionAttempt(inst *model.Instance, b *bag.Bag, pIn int, sortedOuts []int) (kept bool, delta int) {
	adj := inst.Adjacency()
	capacity := inst.Capacity

	removedBenefit := inst.Packages[pIn].Benefit
	b.Remove(pIn, adj[pIn])

	var added []int
	gained := 0
	for _, pOut := range sortedOuts {
		if b.Has(pOut) {
			continue
		}
		if b.CanAdd(pOut, adj[pOut], capacity) {
			b.Add(pOut, adj[pOut])
			added = append(added, pOut)
			gained += inst.Packages[pOut].Benefit
		}
	}

	netDelta := gained - removedBenefit
	if netDelta > 0 {
		return true, netDelta
	}

	// Revert: undo every tentative add, then restore pIn.
	for _, pOut := range added {
		b.Remove(pOut, adj[pOut])
	}
	b.Add(pIn, adj[pIn])
	return false, 0
}

func descendingByBenefit(inst *model.Instance, ps []int) []int {
	out := make([]int, len(ps))
	copy(out, ps)
	sort.Slice(out, func(i, j int) bool {
		return inst.Packages[out[i]].Benefit > inst.Packages[out[j]].Benefit
	})
	return out
}

func runEjectionChain(inst *model.Instance, b *bag.Bag, flavor Flavor, r *rand.Rand) Result {
	ins := inBag(b)

	switch flavor {
	case First:
		for _, pIn := range ins {
			outs := descendingByBenefit(inst, outOfBag(inst, b))
			if kept, delta := ejectionAttempt(inst, b, pIn, outs); kept {
				return Result{Improved: true, Delta: delta}
			}
		}
		return Result{}

	case Best:
		bestDelta := 0
		bestFound := false
		var bestSnapshot *bag.Bag
		for _, pIn := range ins {
			if !b.Has(pIn) {
				continue
			}
			outs := descendingByBenefit(inst, outOfBag(inst, b))
			trial := b.Clone()
			if kept, delta := ejectionAttempt(inst, trial, pIn, outs); kept && delta > bestDelta {
				bestDelta, bestFound, bestSnapshot = delta, true, trial
			}
		}
		if !bestFound {
			return Result{}
		}
		*b = *bestSnapshot
		return Result{Improved: true, Delta: bestDelta}

	default: // RandomFlavor
		if len(ins) == 0 {
			return Result{}
		}
		trials := randomTrials(len(ins), 1)
		for t := 0; t < trials; t++ {
			pIn := ins[r.Intn(len(ins))]
			outs := descendingByBenefit(inst, outOfBag(inst, b))
			if kept, delta := ejectionAttempt(inst, b, pIn, outs); kept {
				return Result{Improved: true, Delta: delta}
			}
		}
		return Result{}
	}
}
