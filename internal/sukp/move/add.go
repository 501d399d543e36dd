package move

import (
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// runAdd implements the ADD move: accept condition benefit(p) > 0,
// feasibility condition CanAdd(p) (spec §4.2's table).
func runAdd(inst *model.Instance, b *bag.Bag, flavor Flavor, r *rand.Rand) Result {
	cap := inst.Capacity
	adj := inst.Adjacency()

	switch flavor {
	case First:
		for _, p := range outOfBag(inst, b) {
			ben := inst.Packages[p].Benefit
			if ben > 0 && b.CanAdd(p, adj[p], cap) {
				b.Add(p, adj[p])
				return Result{Improved: true, Delta: ben}
			}
		}
		return Result{}

	case Best:
		bestP, bestDelta := -1, 0
		for _, p := range outOfBag(inst, b) {
			ben := inst.Packages[p].Benefit
			if ben > 0 && ben > bestDelta && b.CanAdd(p, adj[p], cap) {
				bestP, bestDelta = p, ben
			}
		}
		if bestP < 0 {
			return Result{}
		}
		b.Add(bestP, adj[bestP])
		return Result{Improved: true, Delta: bestDelta}

	default: // RandomFlavor
		candidates := outOfBag(inst, b)
		trials := randomTrials(len(candidates), 1)
		for t := 0; t < trials; t++ {
			p := candidates[r.Intn(len(candidates))]
			ben := inst.Packages[p].Benefit
			if ben > 0 && b.CanAdd(p, adj[p], cap) {
				b.Add(p, adj[p])
				return Result{Improved: true, Delta: ben}
			}
		}
		return Result{}
	}
}

// randomTrials bounds the random-improvement sample count to
// min(200, |in|*|out|), per spec §4.2. inLen defaults to 1 when the move's
// candidate space is single-sided (plain ADD).
func randomTrials(outLen, inLen int) int {
	if outLen == 0 {
		return 0
	}
	n := outLen * inLen
	if n > 200 {
		n = 200
	}
	if n < 1 {
		n = 1
	}
	return n
}
