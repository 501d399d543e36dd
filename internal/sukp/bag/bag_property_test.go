package bag

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/gosukp/sukp/internal/sukp/model"
)

// randomInstance builds a small random instance whose package/dependency
// relation is consistent by construction, for property testing.
func randomInstance(t *rapid.T) *model.Instance {
	nPkgs := rapid.IntRange(1, 8).Draw(t, "nPkgs")
	nDeps := rapid.IntRange(1, 8).Draw(t, "nDeps")

	pkgs := make([]model.Package, nPkgs)
	deps := make([]model.Dependency, nDeps)
	for d := 0; d < nDeps; d++ {
		deps[d] = model.Dependency{Index: d, Size: rapid.IntRange(1, 10).Draw(t, "size")}
	}
	for p := 0; p < nPkgs; p++ {
		nRefs := rapid.IntRange(0, nDeps).Draw(t, "nRefs")
		seen := make(map[int]bool)
		var depIdx []int
		for i := 0; i < nRefs; i++ {
			d := rapid.IntRange(0, nDeps-1).Draw(t, "dep")
			if seen[d] {
				continue
			}
			seen[d] = true
			depIdx = append(depIdx, d)
			deps[d].PackageIdx = append(deps[d].PackageIdx, p)
		}
		pkgs[p] = model.Package{Index: p, Benefit: rapid.IntRange(0, 20).Draw(t, "benefit"), DepIdx: depIdx}
	}

	inst, err := model.New(rapid.IntRange(0, 100).Draw(t, "capacity"), pkgs, deps)
	if err != nil {
		t.Fatalf("building random instance: %v", err)
	}
	return inst
}

// TestBagInvariantsHoldAcrossRandomAddRemoveSequences checks invariant 1
// (cached size/benefit match from-scratch recomputation) and invariant 2
// (cached refcount matches from-scratch recomputation) after arbitrary
// interleavings of Add and Remove, per spec §8.
func TestBagInvariantsHoldAcrossRandomAddRemoveSequences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inst := randomInstance(t)
		b := New(inst)
		adj := inst.Adjacency()

		steps := rapid.IntRange(0, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(inst.Packages) == 0 {
				break
			}
			p := rapid.IntRange(0, len(inst.Packages)-1).Draw(t, "p")
			if rapid.Bool().Draw(t, "add") {
				b.Add(p, adj[p])
			} else {
				b.Remove(p, adj[p])
			}

			wantSize, wantBenefit := b.RecomputeFromScratch()
			if wantSize != b.Size() || wantBenefit != b.Benefit() {
				t.Fatalf("invariant 1 violated: cached (%d, %d) != recomputed (%d, %d)",
					b.Size(), b.Benefit(), wantSize, wantBenefit)
			}

			wantRC := b.RecomputeRefcount()
			if len(wantRC) != len(b.refcount) {
				t.Fatalf("invariant 2 violated: refcount map sizes differ, cached=%v want=%v", b.refcount, wantRC)
			}
			for d, want := range wantRC {
				if b.refcount[d] != want {
					t.Fatalf("invariant 2 violated: refcount[%d] = %d, want %d", d, b.refcount[d], want)
				}
			}
		}
	})
}
