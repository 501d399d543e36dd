// Package repair implements the feasibility-repair layer: three eviction
// strategies run in parallel on clones of an infeasible Bag, the best
// feasible result winning, per spec §4.4.
package repair

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// Temperature is the fixed softmax temperature for TEMPERATURE_BIASED.
const Temperature = 1.0

// candidate scores one member for eviction consideration.
type candidate struct {
	pkg         int
	benefit     int
	uniqueSize  int // "unique size on removal" — spec §4.4
	efficiency  float64
	smartScore  float64
}

func scoreCandidates(inst *model.Instance, b *bag.Bag) []candidate {
	adj := inst.Adjacency()
	members := b.Members()
	out := make([]candidate, 0, len(members))
	for _, p := range members {
		benefit := inst.Packages[p].Benefit
		unique := b.FreedSize(adj[p])
		var eff, ineff float64
		if unique > 0 {
			eff = float64(benefit) / float64(unique)
			ineff = float64(unique) / maxf(float64(benefit), 1)
		} else if benefit > 0 {
			eff = math.Inf(1)
		}
		out = append(out, candidate{
			pkg:        p,
			benefit:    benefit,
			uniqueSize: unique,
			efficiency: eff,
			smartScore: eff + ineff,
		})
	}
	return out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Run evicts members one at a time from a clone of b until Size() <=
// capacity, using all three strategies in parallel, and returns the
// feasible clone with the highest benefit (ties broken by strategy order:
// SMART, PROBABILISTIC_GREEDY, TEMPERATURE_BIASED). If none reach
// feasibility, it returns the best (smallest over-capacity) attempt with
// Infeasible set, per spec §4.4/§7.
func Run(inst *model.Instance, b *bag.Bag, r *rand.Rand) *bag.Bag {
	if b.Feasible() {
		return b
	}

	type attempt struct {
		name   ids.Repair
		result *bag.Bag
	}
	attempts := make([]attempt, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		attempts[0] = attempt{ids.Smart, runSmart(inst, b.Clone())}
	}()
	go func() {
		defer wg.Done()
		attempts[1] = attempt{ids.ProbabilisticGreedy, runProbabilisticGreedy(inst, b.Clone(), rand.New(rand.NewSource(r.Int63())))}
	}()
	go func() {
		defer wg.Done()
		attempts[2] = attempt{ids.TemperatureBiased, runTemperatureBiased(inst, b.Clone(), rand.New(rand.NewSource(r.Int63())))}
	}()
	wg.Wait()

	var bestFeasible *bag.Bag
	var bestOverCap *bag.Bag
	for _, a := range attempts {
		a.result.Repair = string(a.name)
		if a.result.Feasible() {
			if bestFeasible == nil || a.result.Benefit() > bestFeasible.Benefit() {
				bestFeasible = a.result
			}
		} else if bestOverCap == nil || a.result.Size() < bestOverCap.Size() {
			bestOverCap = a.result
		}
	}
	if bestFeasible != nil {
		return bestFeasible
	}
	bestOverCap.Infeasible = true
	return bestOverCap
}

// runSmart evicts the lowest composite-scoring member each round, ties
// broken by lower benefit first (spec §4.4 strategy 1).
func runSmart(inst *model.Instance, b *bag.Bag) *bag.Bag {
	adj := inst.Adjacency()
	for !b.Feasible() && b.Len() > 0 {
		cands := scoreCandidates(inst, b)
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].smartScore != cands[j].smartScore {
				return cands[i].smartScore < cands[j].smartScore
			}
			return cands[i].benefit < cands[j].benefit
		})
		victim := cands[0].pkg
		b.Remove(victim, adj[victim])
	}
	return b
}

// runProbabilisticGreedy ranks members by efficiency (benefit per unique
// size on removal) and samples the victim with probability proportional to
// inverse rank (spec §4.4 strategy 2).
func runProbabilisticGreedy(inst *model.Instance, b *bag.Bag, r *rand.Rand) *bag.Bag {
	adj := inst.Adjacency()
	for !b.Feasible() && b.Len() > 0 {
		cands := scoreCandidates(inst, b)
		sort.Slice(cands, func(i, j int) bool {
			return cands[i].efficiency > cands[j].efficiency
		})
		n := len(cands)
		weights := make([]float64, n)
		total := 0.0
		for i := range cands {
			weights[i] = 1.0 / float64(i+1)
			total += weights[i]
		}
		pick := r.Float64() * total
		idx := n - 1
		acc := 0.0
		for i, w := range weights {
			acc += w
			if pick <= acc {
				idx = i
				break
			}
		}
		victim := cands[idx].pkg
		b.Remove(victim, adj[victim])
	}
	return b
}

// runTemperatureBiased samples the victim from a softmax over the inverse
// efficiency (higher inefficiency == more likely to be evicted), at a
// fixed temperature (spec §4.4 strategy 3).
func runTemperatureBiased(inst *model.Instance, b *bag.Bag, r *rand.Rand) *bag.Bag {
	adj := inst.Adjacency()
	for !b.Feasible() && b.Len() > 0 {
		cands := scoreCandidates(inst, b)
		logits := make([]float64, len(cands))
		maxLogit := math.Inf(-1)
		for i, c := range cands {
			inv := 0.0
			if c.efficiency > 0 && !math.IsInf(c.efficiency, 1) {
				inv = 1.0 / c.efficiency
			} else if math.IsInf(c.efficiency, 1) {
				inv = 0
			} else {
				inv = float64(c.uniqueSize) + 1
			}
			logits[i] = inv / Temperature
			if logits[i] > maxLogit {
				maxLogit = logits[i]
			}
		}
		weights := make([]float64, len(cands))
		total := 0.0
		for i, l := range logits {
			weights[i] = math.Exp(l - maxLogit)
			total += weights[i]
		}
		pick := r.Float64() * total
		idx := len(cands) - 1
		acc := 0.0
		for i, w := range weights {
			acc += w
			if pick <= acc {
				idx = i
				break
			}
		}
		victim := cands[idx].pkg
		b.Remove(victim, adj[victim])
	}
	return b
}
