// Package move implements the neighborhood move operators over a Bag: ADD,
// 1↔1/1↔2/2↔1 swaps, and the ejection chain, each in first/best/random
// improvement flavors, per spec §4.2.
package move

import (
	"math/rand"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// Flavor selects how a neighborhood explores its candidates.
type Flavor int

const (
	First Flavor = iota
	Best
	RandomFlavor
)

// Neighborhood identifies one of the five move families in order, matching
// spec §4.6's VND ordering.
type Neighborhood int

const (
	Add Neighborhood = iota
	Swap11
	Swap12
	Swap21
	EjectionChain
	numNeighborhoods
)

// Neighborhoods is the fixed VND/VNS ordering from spec §4.6/§4.7.
var Neighborhoods = []Neighborhood{Add, Swap11, Swap12, Swap21, EjectionChain}

func (n Neighborhood) Movement() ids.Movement {
	switch n {
	case Add:
		return ids.MoveAdd
	case Swap11:
		return ids.MoveSwap1Add1
	case Swap12:
		return ids.MoveSwap1Add2
	case Swap21:
		return ids.MoveSwap2Add1
	case EjectionChain:
		return ids.MoveEjectionChain
	default:
		return ids.MoveNone
	}
}

// Result reports the outcome of applying a neighborhood to a Bag.
type Result struct {
	Improved bool
	Delta    int
}

// outOfBag returns the indices of packages not currently selected, in
// instance order — a stable iteration order for first-improvement and
// best-improvement scans.
func outOfBag(inst *model.Instance, b *bag.Bag) []int {
	out := make([]int, 0, len(inst.Packages)-b.Len())
	for i := range inst.Packages {
		if !b.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// inBag returns the currently selected package indices in ascending order.
func inBag(b *bag.Bag) []int {
	return b.Members()
}

// Run applies one attempt of the given neighborhood/flavor to b in place.
// It returns whether an accepting move was found and applied, and the
// benefit delta it produced.
func Run(inst *model.Instance, b *bag.Bag, n Neighborhood, flavor Flavor, r *rand.Rand) Result {
	switch n {
	case Add:
		return runAdd(inst, b, flavor, r)
	case Swap11:
		return runSwap11(inst, b, flavor, r)
	case Swap12:
		return runSwap12(inst, b, flavor, r)
	case Swap21:
		return runSwap21(inst, b, flavor, r)
	case EjectionChain:
		return runEjectionChain(inst, b, flavor, r)
	default:
		return Result{}
	}
}
