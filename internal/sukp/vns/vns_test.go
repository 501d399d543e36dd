package vns

import (
	"context"
	"math/rand"
	"testing"

	"github.com/gosukp/sukp/internal/sukp/bag"
	"github.com/gosukp/sukp/internal/sukp/ids"
	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/move"
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

func TestShakeStaysFeasible(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	for i := range inst.Packages {
		b.Add(i, inst.Adjacency()[i])
	}
	r := rand.New(rand.NewSource(1))

	shaken := Shake(inst, b, 2, r)
	if !shaken.Feasible() {
		t.Errorf("Shake result should be feasible, size=%d capacity=%d", shaken.Size(), inst.Capacity)
	}
}

func TestShakeDoesNotMutateOriginal(t *testing.T) {
	inst := fixtureInstance(t)
	b := bag.New(inst)
	for i := range inst.Packages {
		b.Add(i, inst.Adjacency()[i])
	}
	before := b.Len()
	r := rand.New(rand.NewSource(1))

	Shake(inst, b, 2, r)
	if b.Len() != before {
		t.Errorf("Shake should not mutate its input bag, Len() changed from %d to %d", before, b.Len())
	}
}

func TestRunNeverWorsensTheIncumbent(t *testing.T) {
	inst := fixtureInstance(t)
	incumbent := bag.New(inst)
	incumbent.Add(2, inst.Adjacency()[2])
	startBenefit := incumbent.Benefit()
	r := rand.New(rand.NewSource(1))

	out := Run(context.Background(), inst, incumbent, r, Params{StallCap: 20, TotalCap: 200, Flavor: move.Best})
	if out.Benefit() < startBenefit {
		t.Errorf("VNS regressed: benefit %d < incumbent benefit %d", out.Benefit(), startBenefit)
	}
	if !out.Feasible() {
		t.Error("VNS result should be feasible")
	}
	if out.Algorithm != string(ids.VNS) {
		t.Errorf("Algorithm = %q, want %q", out.Algorithm, ids.VNS)
	}
}
