package repair

import (
	"math/rand"
	"testing"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

func fixtureInstance(t *testing.T) *model.Instance {
	t.Helper()
	pkgs := []model.Package{
		{Index: 0, Benefit: 5, DepIdx: []int{0}},
		{Index: 1, Benefit: 10, DepIdx: []int{1}},
		{Index: 2, Benefit: 1, DepIdx: []int{2}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 5, PackageIdx: []int{0}},
		{Index: 1, Size: 5, PackageIdx: []int{1}},
		{Index: 2, Size: 5, PackageIdx: []int{2}},
	}
	inst, err := model.New(8, pkgs, deps)
	if err != nil {
		t.Fatalf("building fixture instance: %v", err)
	}
	return inst
}

func overCapacityBag(t *testing.T, inst *model.Instance) *bag.Bag {
	t.Helper()
	b := bag.New(inst)
	for i := range inst.Packages {
		b.Add(i, inst.Adjacency()[i])
	}
	if b.Feasible() {
		t.Fatal("fixture bag should start infeasible")
	}
	return b
}

func TestRunReturnsSameBagWhenAlreadyFeasible(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	b.Add(1, inst.Adjacency()[1]) // size 5, within capacity 8
	r := rand.New(rand.NewSource(1))

	out := Run(inst, b, r)
	if out != b {
		t.Error("Run should return the same Bag pointer when already feasible")
	}
}

func TestRunRepairsToFeasibility(t *testing.T) {
	inst := fixtureInstance(t)
	b := overCapacityBag(t, inst)
	r := rand.New(rand.NewSource(1))

	out := Run(inst, b, r)
	if !out.Feasible() {
		t.Fatalf("Run should return a feasible Bag, size=%d capacity=%d", out.Size(), inst.Capacity)
	}
	if out.Infeasible {
		t.Error("a repairable instance should not be marked Infeasible")
	}
	if out.Repair == "" {
		t.Error("Run should stamp which repair strategy produced the result")
	}
}

func TestRunKeepsNonEmptyBenefitWhenSinglePackageFits(t *testing.T) {
	inst := fixtureInstance(t)
	b := overCapacityBag(t, inst)
	r := rand.New(rand.NewSource(42))

	out := Run(inst, b, r)
	// Capacity 8 fits exactly one of the three equally-sized packages, so
	// any feasible repair must retain exactly one and keep positive benefit.
	if out.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (only one package fits under capacity 8)", out.Len())
	}
	if out.Benefit() <= 0 {
		t.Errorf("Benefit() = %d, want positive", out.Benefit())
	}
}

// TestScenarioFFeasibleXorInfeasibleFlag is spec §8 scenario F: after
// repair, either size <= capacity or the Infeasible flag is set, never
// both satisfied and violated. Run across several bags, including ones
// already feasible and ones requiring every repair strategy to work.
func TestScenarioFFeasibleXorInfeasibleFlag(t *testing.T) {
	inst := fixtureInstance(t)
	seeds := []int64{1, 2, 3, 42, 99}

	for _, seed := range seeds {
		r := rand.New(rand.NewSource(seed))
		b := overCapacityBag(t, inst)

		out := Run(inst, b, r)
		if out.Feasible() == out.Infeasible {
			t.Errorf("seed %d: Feasible()=%v and Infeasible=%v must never agree (size=%d capacity=%d)",
				seed, out.Feasible(), out.Infeasible, out.Size(), inst.Capacity)
		}
	}

	// Already-feasible bag: Run is a no-op, never flagged Infeasible.
	r := rand.New(rand.NewSource(1))
	b := bag.New(inst)
	b.Add(1, inst.Adjacency()[1])
	out := Run(inst, b, r)
	if !out.Feasible() || out.Infeasible {
		t.Errorf("an already-feasible bag must stay feasible and unflagged, got Feasible()=%v Infeasible=%v", out.Feasible(), out.Infeasible)
	}
}

func TestRunOnEmptyInstanceNeverPanics(t *testing.T) {
	inst, err := model.New(0, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := bag.New(inst)
	r := rand.New(rand.NewSource(1))
	out := Run(inst, b, r)
	if !out.Feasible() {
		t.Error("an empty bag over an empty instance must be feasible")
	}
}
