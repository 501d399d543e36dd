package construct

import (
	"context"
	"math/rand"
	"time"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/localsearch"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
	"github.com/gosukp/sukp/internal/sukp/repair"
)

// Builder produces a fresh Bag given a construction deadline.
type Builder func(ctx context.Context) *bag.Bag

// RunWithPostSearch executes builder, then the normalized two-phase
// post-search (first-improvement SWAP 1↔1, then first-improvement EJECTION
// CHAIN) and a final repair pass, splitting the overall budget 80/10/10 per
// spec §4.5/§9.
func RunWithPostSearch(ctx context.Context, inst *model.Instance, r *rand.Rand, budget time.Duration, builder Builder) *bag.Bag {
	start := time.Now()
	deadlineConstruct, deadlineSearch1, deadlineSearch2 := PostSearchBudget(start, budget)

	cctx, cancel := context.WithDeadline(ctx, deadlineConstruct)
	b := builder(cctx)
	cancel()

	s1ctx, cancel1 := context.WithDeadline(ctx, deadlineSearch1)
	localsearch.Run(s1ctx, inst, b, move.Swap11, move.First, r, localsearch.Params{})
	cancel1()

	s2ctx, cancel2 := context.WithDeadline(ctx, deadlineSearch2)
	localsearch.Run(s2ctx, inst, b, move.EjectionChain, move.First, r, localsearch.Params{})
	cancel2()

	out := repair.Run(inst, b, r)
	out.Elapsed = time.Since(start).Seconds()
	return out
}
