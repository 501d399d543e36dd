// Package localsearch implements the controller that iterates a chosen
// neighborhood under iteration and deadline limits, per spec §4.3.
package localsearch

import (
	"context"
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
)

// DefaultStallCap and DefaultTotalCap are spec §9's standardized defaults
// (VND/VNS's "200/2000" caps, offered to every caller rather than baked
// in unconditionally).
const (
	DefaultStallCap = 200
	DefaultTotalCap = 2000
)

// Params configures one local-search run.
type Params struct {
	StallCap int // consecutive non-improving iterations before stopping
	TotalCap int // absolute iteration cap
}

// Outcome reports how the run ended and its cumulative benefit gain.
type Outcome struct {
	Iterations   int
	TotalDelta   int
	StoppedBy    string // "stall", "total", "deadline"
}

// Run repeatedly invokes the neighborhood's move operator against b in
// place until (a) the operator reports no improvement StallCap times in a
// row, (b) total iterations reach TotalCap, or (c) ctx is done — whichever
// comes first. The deadline carried by ctx is checked at the top of every
// iteration, per spec §4.3's "at least every iteration" requirement.
func Run(ctx context.Context, inst *model.Instance, b *bag.Bag, n move.Neighborhood, flavor move.Flavor, r *rand.Rand, p Params) Outcome {
	if p.StallCap <= 0 {
		p.StallCap = DefaultStallCap
	}
	if p.TotalCap <= 0 {
		p.TotalCap = DefaultTotalCap
	}

	out := Outcome{}
	stall := 0
	for out.Iterations < p.TotalCap {
		select {
		case <-ctx.Done():
			out.StoppedBy = "deadline"
			return out
		default:
		}

		res := move.Run(inst, b, n, flavor, r)
		out.Iterations++
		if res.Improved {
			out.TotalDelta += res.Delta
			stall = 0
		} else {
			stall++
			if stall >= p.StallCap {
				out.StoppedBy = "stall"
				return out
			}
		}
	}
	out.StoppedBy = "total"
	return out
}
