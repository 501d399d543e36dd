package bag

import (
	"reflect"
	"testing"

	"github.com/gosukp/sukp/internal/sukp/model"
)

func fixtureInstance(t *testing.T) *model.Instance {
	t.Helper()
	pkgs := []model.Package{
		{Index: 0, Benefit: 10, DepIdx: []int{0, 1}},
		{Index: 1, Benefit: 20, DepIdx: []int{1, 2}},
		{Index: 2, Benefit: 5, DepIdx: []int{2}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 3, PackageIdx: []int{0}},
		{Index: 1, Size: 4, PackageIdx: []int{0, 1}},
		{Index: 2, Size: 2, PackageIdx: []int{1, 2}},
	}
	inst, err := model.New(100, pkgs, deps)
	if err != nil {
		t.Fatalf("building fixture instance: %v", err)
	}
	return inst
}

func TestAddRemoveRoundTrip(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)

	b.Add(0, inst.Adjacency()[0])
	b.Add(1, inst.Adjacency()[1])

	if b.Size() != 9 { // dep0(3) + dep1(4) + dep2(2)
		t.Errorf("Size() = %d, want 9", b.Size())
	}
	if b.Benefit() != 30 {
		t.Errorf("Benefit() = %d, want 30", b.Benefit())
	}

	b.Remove(0, inst.Adjacency()[0])
	if b.Size() != 6 { // dep1(4) + dep2(2), dep0 released
		t.Errorf("Size() after Remove(0) = %d, want 6", b.Size())
	}
	if b.Has(0) {
		t.Error("Has(0) should be false after Remove")
	}
	if !b.Has(1) {
		t.Error("Has(1) should remain true")
	}
}

func TestAddIsNoOpWhenAlreadyMember(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])
	if b.Add(0, inst.Adjacency()[0]) {
		t.Error("second Add of the same package should report false")
	}
}

func TestRemoveIsNoOpWhenNotMember(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	if b.Remove(0, inst.Adjacency()[0]) {
		t.Error("Remove of a non-member should report false")
	}
}

func TestCanAddAccountsForSharedDeps(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])

	// Package 1 shares dep 1 with package 0, so only dep 2's size (2) is new.
	if got := b.AddedSize(inst.Adjacency()[1]); got != 2 {
		t.Errorf("AddedSize(pkg1) = %d, want 2", got)
	}
	if !b.CanAdd(1, inst.Adjacency()[1], 100) {
		t.Error("CanAdd(pkg1) should be true under ample capacity")
	}
	if b.CanAdd(1, inst.Adjacency()[1], 1) {
		t.Error("CanAdd(pkg1) should be false under capacity 1")
	}
}

func TestFreedSizeOnlyCountsSoleOwnership(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])
	b.Add(1, inst.Adjacency()[1])

	// pkg0 solely owns dep0 (size 3) but shares dep1 with pkg1.
	if got := b.FreedSize(inst.Adjacency()[0]); got != 3 {
		t.Errorf("FreedSize(pkg0) = %d, want 3", got)
	}
}

func TestCanSwap11AccountsForSharedDeps(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])
	b.Add(1, inst.Adjacency()[1])

	// Swap out pkg1, swap in pkg2: dep1 stays in the union (pkg0 still needs
	// it), dep2 is released by pkg1 and paid again for pkg2, so the predicted
	// size stays 9: feasible under capacity 100, infeasible under 0.
	if !b.CanSwap11(1, 2, inst.Adjacency()[1], inst.Adjacency()[2], 100) {
		t.Error("CanSwap11(1, 2) should be feasible under ample capacity")
	}
	if b.CanSwap11(1, 2, inst.Adjacency()[1], inst.Adjacency()[2], 0) {
		t.Error("CanSwap11(1, 2) should be infeasible under zero capacity")
	}
}

func TestRecomputeFromScratchMatchesCache(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])
	b.Add(1, inst.Adjacency()[1])
	b.Remove(0, inst.Adjacency()[0])
	b.Add(2, inst.Adjacency()[2])

	size, benefit := b.RecomputeFromScratch()
	if size != b.Size() || benefit != b.Benefit() {
		t.Errorf("RecomputeFromScratch() = (%d, %d), want cached (%d, %d)", size, benefit, b.Size(), b.Benefit())
	}

	rc := b.RecomputeRefcount()
	for d, want := range rc {
		if got := b.refcount[d]; got != want {
			t.Errorf("refcount[%d] = %d, want %d", d, got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])

	c := b.Clone()
	c.Add(1, inst.Adjacency()[1])

	if b.Has(1) {
		t.Error("mutating a clone should not affect the original")
	}
	if !reflect.DeepEqual(b.Members(), []int{0}) {
		t.Errorf("original Members() = %v, want [0]", b.Members())
	}
	if !reflect.DeepEqual(c.Members(), []int{0, 1}) {
		t.Errorf("clone Members() = %v, want [0 1]", c.Members())
	}
}

func TestInvalidMembersEmptyWhenConsistent(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	b.Add(0, inst.Adjacency()[0])
	b.Add(1, inst.Adjacency()[1])

	if got := b.InvalidMembers(); len(got) != 0 {
		t.Errorf("InvalidMembers() = %v, want none", got)
	}
}

func TestFeasible(t *testing.T) {
	inst := fixtureInstance(t)
	b := New(inst)
	if !b.Feasible() {
		t.Error("empty bag should be feasible")
	}
}
