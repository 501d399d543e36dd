package move

import (
	"math/rand"
	"testing"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/model"
)

func fixtureInstance(t *testing.T) *model.Instance {
	t.Helper()
	pkgs := []model.Package{
		{Index: 0, Benefit: 10, DepIdx: []int{0}},
		{Index: 1, Benefit: 20, DepIdx: []int{0, 1}},
		{Index: 2, Benefit: 30, DepIdx: []int{1, 2}},
		{Index: 3, Benefit: 5, DepIdx: []int{2}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 3, PackageIdx: []int{0, 1}},
		{Index: 1, Size: 4, PackageIdx: []int{1, 2}},
		{Index: 2, Size: 2, PackageIdx: []int{2, 3}},
	}
	inst, err := model.New(6, pkgs, deps)
	if err != nil {
		t.Fatalf("building fixture instance: %v", err)
	}
	return inst
}

func TestRunAddFirstImprovementAddsFeasibleGain(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, Add, First, r)
	if !res.Improved {
		t.Fatal("expected an improving ADD move on an empty bag under ample capacity")
	}
	if b.Len() != 1 {
		t.Errorf("bag should have exactly one member after one ADD move, got %d", b.Len())
	}
	if !b.Feasible() {
		t.Error("bag should remain feasible after ADD")
	}
}

func TestRunAddBestImprovementPicksHighestDelta(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, Add, Best, r)
	if !res.Improved {
		t.Fatal("expected an improving ADD move")
	}
	// pkg2 has the highest benefit (30) for size 2+4=6, within capacity 6.
	if !b.Has(2) {
		t.Errorf("best-improvement ADD should have selected pkg2, members=%v", b.Members())
	}
}

func TestRunAddReturnsNotImprovedWhenFull(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	b.Add(2, inst.Adjacency()[2]) // size 6, fully consumes capacity
	b.Add(3, inst.Adjacency()[3]) // d2 already paid for by pkg2: size stays 6
	// pkg0 and pkg1 both need d0 (size 3), which no longer fits.
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, Add, First, r)
	if res.Improved {
		t.Error("no package should fit once capacity is exhausted")
	}
}

func TestRunSwap11Improves(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	b.Add(3, inst.Adjacency()[3]) // benefit 5, size 2
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, Swap11, Best, r)
	if res.Delta < 0 {
		t.Errorf("Swap11 best-improvement should never apply a worsening move, got delta %d", res.Delta)
	}
	if !b.Feasible() {
		t.Error("bag should remain feasible after Swap11")
	}
}

func TestNeighborhoodMovementMapping(t *testing.T) {
	cases := []struct {
		n    Neighborhood
		want string
	}{
		{Add, "ADD"},
		{Swap11, "SWAP_REMOVE_1_ADD_1"},
		{Swap12, "SWAP_REMOVE_1_ADD_2"},
		{Swap21, "SWAP_REMOVE_2_ADD_1"},
		{EjectionChain, "EJECTION_CHAIN"},
	}
	for _, c := range cases {
		if got := string(c.n.Movement()); got != c.want {
			t.Errorf("Neighborhood(%d).Movement() = %s, want %s", c.n, got, c.want)
		}
	}
}

// TestScenarioBSwap11 is spec §8 scenario B: starting from scenario A's
// `{P0}` (benefit 10, D={d0}), with `P3(benefit=12, D={d0})` available
// outside, first-improvement SWAP 1↔1 should swap P0 out for P3, landing
// on benefit 12.
func TestScenarioBSwap11(t *testing.T) {
	pkgs := []model.Package{
		{Index: 0, Benefit: 10, DepIdx: []int{0}},
		{Index: 1, Benefit: 12, DepIdx: []int{0}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 5, PackageIdx: []int{0, 1}},
	}
	inst, err := model.New(6, pkgs, deps)
	if err != nil {
		t.Fatalf("building scenario B instance: %v", err)
	}

	b := bag.New(inst)
	b.Add(0, inst.Adjacency()[0])
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, Swap11, First, r)
	if !res.Improved || res.Delta != 2 {
		t.Fatalf("expected an improving swap of delta 2, got %+v", res)
	}
	if b.Has(0) || !b.Has(1) {
		t.Fatalf("expected P0 swapped out for P3, members=%v", b.Members())
	}
	if b.Benefit() != 12 {
		t.Errorf("benefit = %d, want 12", b.Benefit())
	}
}

// TestScenarioCEjectionChain is spec §8 scenario C: `{P_big(benefit=20,
// D={d_big(size=10)})}` under C=10, with `P_a(benefit=11, D={d_a(5)})` and
// `P_b(benefit=11, D={d_b(5)})` outside. The ejection chain should remove
// P_big and pull in both P_a and P_b, landing on benefit 22 > 20.
func TestScenarioCEjectionChain(t *testing.T) {
	pkgs := []model.Package{
		{Index: 0, Benefit: 20, DepIdx: []int{0}}, // P_big
		{Index: 1, Benefit: 11, DepIdx: []int{1}}, // P_a
		{Index: 2, Benefit: 11, DepIdx: []int{2}}, // P_b
	}
	deps := []model.Dependency{
		{Index: 0, Size: 10, PackageIdx: []int{0}},
		{Index: 1, Size: 5, PackageIdx: []int{1}},
		{Index: 2, Size: 5, PackageIdx: []int{2}},
	}
	inst, err := model.New(10, pkgs, deps)
	if err != nil {
		t.Fatalf("building scenario C instance: %v", err)
	}

	b := bag.New(inst)
	b.Add(0, inst.Adjacency()[0])
	r := rand.New(rand.NewSource(1))

	res := Run(inst, b, EjectionChain, First, r)
	if !res.Improved || res.Delta != 2 {
		t.Fatalf("expected an accepted ejection chain of delta 2, got %+v", res)
	}
	if b.Has(0) || !b.Has(1) || !b.Has(2) {
		t.Fatalf("expected P_big ejected for P_a and P_b, members=%v", b.Members())
	}
	if b.Benefit() != 22 {
		t.Errorf("benefit = %d, want 22", b.Benefit())
	}
}
