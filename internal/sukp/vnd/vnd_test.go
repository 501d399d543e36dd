package vnd

import (
	"context"
	"math/rand"
	"testing"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/model"
)

func fixtureInstance(t *testing.T) *model.Instance {
	t.Helper()
	pkgs := []model.Package{
		{Index: 0, Benefit: 10, DepIdx: []int{0}},
		{Index: 1, Benefit: 20, DepIdx: []int{1}},
		{Index: 2, Benefit: 30, DepIdx: []int{2}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 3, PackageIdx: []int{0}},
		{Index: 1, Size: 4, PackageIdx: []int{1}},
		{Index: 2, Size: 2, PackageIdx: []int{2}},
	}
	inst, err := model.New(9, pkgs, deps)
	if err != nil {
		t.Fatalf("building fixture instance: %v", err)
	}
	return inst
}

func TestRunNeverWorsensTheIncumbent(t *testing.T) {
	inst := fixtureInstance(t)
	incumbent := bag.New(inst)
	incumbent.Add(2, inst.Adjacency()[2]) // benefit 30, size 2
	startBenefit := incumbent.Benefit()
	r := rand.New(rand.NewSource(1))

	out := Run(context.Background(), inst, incumbent, r, Params{StallCap: 20, TotalCap: 200})
	if out.Benefit() < startBenefit {
		t.Errorf("VND regressed: benefit %d < incumbent benefit %d", out.Benefit(), startBenefit)
	}
	if !out.Feasible() {
		t.Error("VND result should be feasible")
	}
	if out.Algorithm != string(ids.VND) {
		t.Errorf("Algorithm = %q, want %q", out.Algorithm, ids.VND)
	}
}

func TestRunFromEmptyReachesFullCapacity(t *testing.T) {
	inst := fixtureInstance(t)
	r := rand.New(rand.NewSource(1))
	out := Run(context.Background(), inst, bag.New(inst), r, Params{StallCap: 20, TotalCap: 200})
	if out.Benefit() != 60 {
		t.Errorf("Benefit() = %d, want 60 (all three packages fit exactly within capacity)", out.Benefit())
	}
}
