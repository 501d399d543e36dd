package ids

import "fmt"

// Params captures the free-form metaheuristic parameters original_source's
// grasp.cpp records on every produced Bag: the alpha used for RCL
// thresholding, the RCL size, how many iterations ran, and an improvement
// count. grasp.runWorker counts iterations that improved the worker's local
// best; construct.SemiRandom counts steps that picked the top-scoring
// candidate.
type Params struct {
	Alpha        float64
	RCLSize      int
	Iterations   int64
	Improvements int64
}

// String renders the parameter summary stored in Bag.Params and emitted as
// the CSV "Params" column.
func (p Params) String() string {
	return fmt.Sprintf("alpha=%.3f rcl=%d iterations=%d improvements=%d",
		p.Alpha, p.RCLSize, p.Iterations, p.Improvements)
}

// ParamString is a convenience wrapper around Params.String for the two
// call sites (construct.SemiRandom, grasp.runWorker) that stamp a Bag's
// parameter summary without needing to name the Params type directly.
func ParamString(alpha float64, rclSize int, iterations, improvements int64) string {
	return Params{Alpha: alpha, RCLSize: rclSize, Iterations: iterations, Improvements: improvements}.String()
}
