// Package vnd implements Variable Neighborhood Descent: cycle through a
// fixed neighborhood order, restarting at the first neighborhood whenever
// one improves the incumbent, per spec §4.6.
package vnd

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

// Params configures a VND run; zero values take spec §9's defaults.
type Params struct {
	StallCap int
	TotalCap int
}

// Run starts from incumbent and returns the best Bag found by cycling
// through move.Neighborhoods with best-improvement local search, stopping
// when k exhausts the neighborhood list or ctx is done.
func Run(ctx context.Context, inst *model.Instance, incumbent *bag.Bag, r *rand.Rand, p Params) *bag.Bag {
	sp := localsearch.Params{StallCap: p.StallCap, TotalCap: p.TotalCap}
	best := incumbent
	k := 0
	for k < len(move.Neighborhoods) {
		select {
		case <-ctx.Done():
			return finish(best)
		default:
		}

		clone := best.Clone()
		localsearch.Run(ctx, inst, clone, move.Neighborhoods[k], move.Best, r, sp)
		clone = repair.Run(inst, clone, r)

		if !clone.Infeasible && clone.Benefit() > best.Benefit() {
			best = clone
			k = 0
		} else {
			k++
		}
	}
	return finish(best)
}

func finish(b *bag.Bag) *bag.Bag {
	b.Algorithm = string(ids.VND)
	return b
}
