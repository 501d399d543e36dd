// Package bag implements the selected-set ("Bag") data structure: the
// mutable working solution with O(1) add/remove and a reference-counted
// union of dependencies, per spec §3/§4.1.
package bag

import "github.com/gosukp/sukp/internal/sukp/model"

// Bag is the mutable selected-set. The zero value is not usable; use New.
type Bag struct {
	inst *model.Instance

	members  map[int]bool
	union    map[int]bool
	refcount map[int]int

	size    int
	benefit int

	// Metadata, set by whichever controller produced this Bag.
	Algorithm   string
	Movement    string
	LocalSearch string
	Repair      string
	Seed        uint64
	Params      string
	Elapsed     float64 // seconds
	Infeasible  bool
}

// New returns an empty Bag over inst.
func New(inst *model.Instance) *Bag {
	return &Bag{
		inst:     inst,
		members:  make(map[int]bool),
		union:    make(map[int]bool),
		refcount: make(map[int]int),
	}
}

// Clone performs a deep copy with respect to members, union and refcount
// (per spec §3's lifecycle note) but shares the underlying *model.Instance.
func (b *Bag) Clone() *Bag {
	nb := &Bag{
		inst:        b.inst,
		members:     make(map[int]bool, len(b.members)),
		union:       make(map[int]bool, len(b.union)),
		refcount:    make(map[int]int, len(b.refcount)),
		size:        b.size,
		benefit:     b.benefit,
		Algorithm:   b.Algorithm,
		Movement:    b.Movement,
		LocalSearch: b.LocalSearch,
		Repair:      b.Repair,
		Seed:        b.Seed,
		Params:      b.Params,
		Elapsed:     b.Elapsed,
		Infeasible:  b.Infeasible,
	}
	for k, v := range b.members {
		nb.members[k] = v
	}
	for k, v := range b.union {
		nb.union[k] = v
	}
	for k, v := range b.refcount {
		nb.refcount[k] = v
	}
	return nb
}

// Instance returns the instance this Bag is selecting packages from.
func (b *Bag) Instance() *model.Instance { return b.inst }

// Size returns the cached union size.
func (b *Bag) Size() int { return b.size }

// Benefit returns the cached total benefit.
func (b *Bag) Benefit() int { return b.benefit }

// Feasible reports whether size <= the instance's capacity.
func (b *Bag) Feasible() bool { return b.size <= b.inst.Capacity }

// Has reports whether package index p is currently selected.
func (b *Bag) Has(p int) bool { return b.members[p] }

// Len returns the number of selected packages.
func (b *Bag) Len() int { return len(b.members) }

// Members returns the selected package indices in ascending order.
func (b *Bag) Members() []int {
	out := make([]int, 0, len(b.members))
	for p := range b.members {
		out = append(out, p)
	}
	sortInts(out)
	return out
}

// UnionDeps returns the dependency indices currently in the union, in
// ascending order.
func (b *Bag) UnionDeps() []int {
	out := make([]int, 0, len(b.union))
	for d := range b.union {
		out = append(out, d)
	}
	sortInts(out)
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Add implements spec §4.1's add(p, D(p)). D is the precomputed dependency
// list for p (the caller's responsibility, per spec: "the Bag never looks
// it up"). Returns false as a no-op if p is already selected.
func (b *Bag) Add(p int, D []int) bool {
	if b.members[p] {
		return false
	}
	b.members[p] = true
	for _, d := range D {
		if b.refcount[d] == 0 {
			b.union[d] = true
			b.size += b.inst.Deps[d].Size
		}
		b.refcount[d]++
	}
	b.benefit += b.inst.Packages[p].Benefit
	return true
}

// Remove implements spec §4.1's remove(p, D(p)). No-op if p is not selected.
func (b *Bag) Remove(p int, D []int) bool {
	if !b.members[p] {
		return false
	}
	delete(b.members, p)
	for _, d := range D {
		b.refcount[d]--
		if b.refcount[d] <= 0 {
			delete(b.refcount, d)
			delete(b.union, d)
			b.size -= b.inst.Deps[d].Size
		}
	}
	b.benefit -= b.inst.Packages[p].Benefit
	return true
}

// CanAdd is the read-only predicate of spec §4.1: true iff adding p would
// leave size <= capacity. It never mutates the Bag.
func (b *Bag) CanAdd(p int, D []int, capacity int) bool {
	added := 0
	for _, d := range D {
		if b.refcount[d] == 0 {
			added += b.inst.Deps[d].Size
		}
	}
	return b.size+added <= capacity
}

// AddedSize returns the size that would be added to the union by adding p,
// without mutating the Bag. Used by construction's RCL scoring.
func (b *Bag) AddedSize(D []int) int {
	added := 0
	for _, d := range D {
		if b.refcount[d] == 0 {
			added += b.inst.Deps[d].Size
		}
	}
	return added
}

// FreedSize returns "unique size on removal" of p: Σ size(d) for d ∈ D(p)
// with refcount[d] == 1 — the dependencies that would be released if p
// left the Bag. p must currently be a member.
func (b *Bag) FreedSize(D []int) int {
	freed := 0
	for _, d := range D {
		if b.refcount[d] == 1 {
			freed += b.inst.Deps[d].Size
		}
	}
	return freed
}

// CanSwap11 predicts, without mutating, the feasibility of removing pIn
// (a member) and adding pOut (a non-member), correctly accounting for
// dependencies shared between them (spec §4.1).
func (b *Bag) CanSwap11(pIn, pOut int, dIn, dOut []int, capacity int) bool {
	return b.canSwapKOne([]int{pIn}, []int{pOut}, [][]int{dIn}, [][]int{dOut}, capacity)
}

// CanSwap1K generalizes CanSwap11 to removing one package and adding
// several (spec §4.1's can_swap_1_k).
func (b *Bag) CanSwap1K(pIn int, pOut []int, dIn []int, dOut [][]int, capacity int) bool {
	return b.canSwapKOne([]int{pIn}, pOut, [][]int{dIn}, dOut, capacity)
}

// CanSwapK1 generalizes CanSwap11 to removing several packages and adding
// one (spec §4.1's can_swap_k_1).
func (b *Bag) CanSwapK1(pIn []int, pOut int, dIn [][]int, dOut []int, capacity int) bool {
	return b.canSwapKOne(pIn, []int{pOut}, dIn, [][]int{dOut}, capacity)
}

// canSwapKOne is the shared read-only simulation behind all three swap
// feasibility checks: release refcounts for every dep of every removed
// package first, then account additions against the resulting refcounts.
func (b *Bag) canSwapKOne(pIn, pOut []int, dIn, dOut [][]int, capacity int) bool {
	delta := make(map[int]int)
	for _, D := range dIn {
		for _, d := range D {
			delta[d]--
		}
	}
	released := 0
	for d, dd := range delta {
		if b.refcount[d]+dd <= 0 {
			released += b.inst.Deps[d].Size
		}
	}

	added := 0
	addedAlready := make(map[int]bool)
	for _, D := range dOut {
		for _, d := range D {
			if addedAlready[d] {
				continue
			}
			rc := b.refcount[d] + delta[d]
			if rc <= 0 {
				added += b.inst.Deps[d].Size
				addedAlready[d] = true
			}
		}
	}
	return b.size-released+added <= capacity
}

// InvalidMembers returns members whose dependency set is not fully
// contained in the current union — used by ejection-chain-style moves that
// temporarily break the refcount invariant and must reconcile afterward
// (spec §4.1).
func (b *Bag) InvalidMembers() []int {
	var out []int
	for p := range b.members {
		ok := true
		for _, d := range b.inst.Packages[p].DepIdx {
			if !b.union[d] {
				ok = false
				break
			}
		}
		if !ok {
			out = append(out, p)
		}
	}
	sortInts(out)
	return out
}

// RecomputeFromScratch recomputes size and benefit from members/union from
// first principles. Used only by tests verifying invariant 1 of spec §8.
func (b *Bag) RecomputeFromScratch() (size, benefit int) {
	for d := range b.union {
		size += b.inst.Deps[d].Size
	}
	for p := range b.members {
		benefit += b.inst.Packages[p].Benefit
	}
	return
}

// RecomputeRefcount recomputes refcount from members from first principles,
// for invariant 2 of spec §8.
func (b *Bag) RecomputeRefcount() map[int]int {
	rc := make(map[int]int)
	for p := range b.members {
		for _, d := range b.inst.Packages[p].DepIdx {
			rc[d]++
		}
	}
	return rc
}
