package solve

import (
	"context"
	"testing"
	"time"

	"github.com/gosukp/sukp/internal/sukp/model"
)

func fixtureInstance(t *testing.T) *model.Instance {
	t.Helper()
	pkgs := []model.Package{
		{Index: 0, Benefit: 10, DepIdx: []int{0}},
		{Index: 1, Benefit: 20, DepIdx: []int{1}},
		{Index: 2, Benefit: 30, DepIdx: []int{2}},
		{Index: 3, Benefit: 1, DepIdx: []int{0, 1, 2}},
	}
	deps := []model.Dependency{
		{Index: 0, Size: 3, PackageIdx: []int{0, 3}},
		{Index: 1, Size: 4, PackageIdx: []int{1, 3}},
		{Index: 2, Size: 2, PackageIdx: []int{2, 3}},
	}
	inst, err := model.New(9, pkgs, deps)
	if err != nil {
		t.Fatalf("building fixture instance: %v", err)
	}
	return inst
}

func TestSolveNeverReturnsEmptySlice(t *testing.T) {
	inst := fixtureInstance(t)
	sols := Solve(context.Background(), inst, 200*time.Millisecond, 1, time.Unix(0, 0), Options{StallCap: 10, TotalCap: 50})
	if len(sols) == 0 {
		t.Fatal("Solve must never return zero solutions")
	}
	for _, s := range sols {
		if s.Infeasible {
			t.Errorf("Solve should have dropped every infeasible solution, found one: %+v", s)
		}
	}
}

func TestSolveOnEmptyInstanceReturnsEmptyBagSolution(t *testing.T) {
	inst, err := model.New(0, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sols := Solve(context.Background(), inst, 10*time.Millisecond, 1, time.Unix(0, 0), Options{})
	if len(sols) != 1 {
		t.Fatalf("Solve on an empty instance should return exactly one solution, got %d", len(sols))
	}
	if len(sols[0].Members) != 0 {
		t.Errorf("empty-instance solution should have no members, got %v", sols[0].Members)
	}
}

func TestSolveRespectsStopRequested(t *testing.T) {
	inst := fixtureInstance(t)
	stop := make(chan struct{})
	close(stop) // already stopped before Solve begins

	start := time.Now()
	sols := Solve(context.Background(), inst, time.Second, 1, time.Unix(0, 0), Options{StopRequested: stop})
	elapsed := time.Since(start)

	if len(sols) == 0 {
		t.Fatal("Solve must never return zero solutions, even when stopped immediately")
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Solve took %s with an already-closed stop channel, want it to return promptly", elapsed)
	}
}

// TestScenarioEDeadlineObedience is spec §8 scenario E: a solver with a
// 100ms budget must return within budget+epsilon, and never take more
// than 1.5x the budget under any scheduling slack.
func TestScenarioEDeadlineObedience(t *testing.T) {
	inst := fixtureInstance(t)
	budget := 100 * time.Millisecond

	start := time.Now()
	sols := Solve(context.Background(), inst, budget, 1, time.Unix(0, 0), Options{StallCap: 10, TotalCap: 50})
	elapsed := time.Since(start)

	if len(sols) == 0 {
		t.Fatal("Solve must never return zero solutions")
	}
	if elapsed > budget*3/2 {
		t.Errorf("Solve took %s, want no more than 1.5x the %s budget", elapsed, budget)
	}
}
