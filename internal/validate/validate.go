// Package validate recomputes a solution's size and benefit from a
// report's bit-vectors against an instance, to confirm a persisted report
// still agrees with its instance file, per spec §6/§8.
package validate

import (
	"strconv"

	"github.com/gosukp/sukp/internal/report"
	"github.com/gosukp/sukp/internal/sukp/model"
)

// Detail carries the recomputed figures and any discrepancy found against
// the header fields a report claims.
type Detail struct {
	RecomputedSize    int
	RecomputedBenefit int
	ReportedSize      int
	ReportedBenefit   int
	ReportedInfeasible bool
	CapacityExceeded  bool
	Mismatches        []string
}

// Validate recomputes size/benefit from rep's bit-vectors against inst and
// compares them with the report's own header claims.
func Validate(inst *model.Instance, rep *report.Report) (bool, Detail) {
	var d Detail

	members := make([]int, 0)
	for i, in := range rep.Packages {
		if in && i < len(inst.Packages) {
			members = append(members, i)
		}
	}

	union := make(map[int]bool)
	for _, p := range members {
		for _, dep := range inst.Packages[p].DepIdx {
			union[dep] = true
		}
	}
	for dep := range union {
		d.RecomputedSize += inst.Deps[dep].Size
	}
	for _, p := range members {
		d.RecomputedBenefit += inst.Packages[p].Benefit
	}

	d.CapacityExceeded = d.RecomputedSize > inst.Capacity

	d.ReportedSize = atoi(rep.Header["size"])
	d.ReportedBenefit = atoi(rep.Header["benefit"])
	d.ReportedInfeasible = rep.Header["infeasible"] == "true"

	ok := true
	if d.ReportedSize != d.RecomputedSize {
		d.Mismatches = append(d.Mismatches, "reported size does not match recomputed size")
		ok = false
	}
	if d.ReportedBenefit != d.RecomputedBenefit {
		d.Mismatches = append(d.Mismatches, "reported benefit does not match recomputed benefit")
		ok = false
	}
	if d.CapacityExceeded && !d.ReportedInfeasible {
		d.Mismatches = append(d.Mismatches, "recomputed size exceeds capacity but report is not marked infeasible")
		ok = false
	}
	// Also check the dependency bit-vector agrees with the recomputed union.
	for i, in := range rep.Dependencies {
		if in != union[i] {
			d.Mismatches = append(d.Mismatches, "reported dependency bit-vector disagrees with recomputed union")
			ok = false
			break
		}
	}

	return ok, d
}

// atoi parses n, falling back to 0 for a missing or malformed report field
// rather than failing validation outright on it.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
