// Package model holds the immutable problem instance for the Set-Union
// Knapsack Problem: packages, the dependencies they require, and the
// capacity they must fit under.
package model

import "github.com/pkg/errors"

// Package is a candidate item. It is immutable once an Instance has been
// built and is compared by its Index, never by value.
type Package struct {
	Index   int
	Name    string
	Benefit int
	// DepIdx holds the indices (into Instance.Deps) of every dependency
	// this package requires, in the order the loader encountered them.
	DepIdx []int
}

// Dependency is a shared resource a Package may require.
type Dependency struct {
	Index int
	Name  string
	Size  int
	// PackageIdx is the derived back-set: every package that requires
	// this dependency, in the order the loader encountered them.
	PackageIdx []int
}

// Instance is the read-only problem the solver operates on. It is built once
// by a loader and never mutated afterward; every algorithm in internal/sukp
// takes a *Instance and reads from it concurrently.
type Instance struct {
	Capacity int
	Packages []Package
	Deps     []Dependency

	adjacency [][]int
}

// New validates and constructs an Instance. Both relations must already
// agree (every dep listed in DepIdx appears with this package's index in
// the corresponding Dependency.PackageIdx, and vice versa) and indices must
// be dense.
func New(capacity int, packages []Package, deps []Dependency) (*Instance, error) {
	if capacity < 0 {
		return nil, errors.New("model: capacity must be >= 0")
	}
	for i := range packages {
		if packages[i].Index != i {
			return nil, errors.Errorf("model: package index %d is out of position %d", packages[i].Index, i)
		}
		if packages[i].Benefit < 0 {
			return nil, errors.Errorf("model: package %d has negative benefit", i)
		}
	}
	for i := range deps {
		if deps[i].Index != i {
			return nil, errors.Errorf("model: dependency index %d is out of position %d", deps[i].Index, i)
		}
		if deps[i].Size < 0 {
			return nil, errors.Errorf("model: dependency %d has negative size", i)
		}
	}

	inst := &Instance{Capacity: capacity, Packages: packages, Deps: deps}
	inst.adjacency = make([][]int, len(packages))
	for i := range packages {
		inst.adjacency[i] = packages[i].DepIdx
	}
	if err := inst.checkConsistency(); err != nil {
		return nil, err
	}
	return inst, nil
}

// checkConsistency verifies the package->dep and dep->package relations
// agree, per spec §3's invariant.
func (inst *Instance) checkConsistency() error {
	fromPkgs := make(map[[2]int]bool, len(inst.Packages)*2)
	for _, p := range inst.Packages {
		for _, d := range p.DepIdx {
			if d < 0 || d >= len(inst.Deps) {
				return errors.Errorf("model: package %d references out-of-range dependency %d", p.Index, d)
			}
			fromPkgs[[2]int{p.Index, d}] = true
		}
	}
	fromDeps := make(map[[2]int]bool, len(inst.Deps)*2)
	for _, d := range inst.Deps {
		for _, p := range d.PackageIdx {
			if p < 0 || p >= len(inst.Packages) {
				return errors.Errorf("model: dependency %d references out-of-range package %d", d.Index, p)
			}
			fromDeps[[2]int{p, d.Index}] = true
		}
	}
	if len(fromPkgs) != len(fromDeps) {
		return errors.New("model: package->dependency and dependency->package relations disagree")
	}
	for k := range fromPkgs {
		if !fromDeps[k] {
			return errors.New("model: package->dependency and dependency->package relations disagree")
		}
	}
	return nil
}

// Adjacency returns, for each package index, the precomputed slice of
// dependency indices it requires. Callers pass the element for a given
// package to Bag operations rather than re-deriving it, per spec §9.
func (inst *Instance) Adjacency() [][]int {
	return inst.adjacency
}

// DepsOf is a convenience accessor equivalent to Adjacency()[p.Index].
func (inst *Instance) DepsOf(p Package) []int {
	return inst.adjacency[p.Index]
}

// StandaloneSize returns Σ size(d) for d ∈ D(p), ignoring sharing with any
// other package. Used by greedy construction sort orders.
func (inst *Instance) StandaloneSize(p Package) int {
	total := 0
	for _, d := range p.DepIdx {
		total += inst.Deps[d].Size
	}
	return total
}

// Empty reports whether the instance has no packages (spec §8 boundary:
// P = 0).
func (inst *Instance) Empty() bool {
	return len(inst.Packages) == 0
}
