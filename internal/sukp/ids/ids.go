// Package ids holds the stable identifier strings spec §6 requires for
// serialization (algorithm, movement, local-search flavor, repair
// strategy), plus the free-form parameter-string builder original_source's
// grasp.cpp/grasp_helper.cpp uses to describe a run.
package ids

// Algorithm identifies which constructive heuristic or metaheuristic
// produced a Bag.
type Algorithm string

const (
	Random                    Algorithm = "RANDOM"
	GreedyPackageBenefit      Algorithm = "GREEDY_PACKAGE_BENEFIT"
	GreedyPackageBenefitRatio Algorithm = "GREEDY_PACKAGE_BENEFIT_RATIO"
	GreedyPackageSize         Algorithm = "GREEDY_PACKAGE_SIZE"
	RandomGreedyPackage       Algorithm = "RANDOM_GREEDY_PACKAGE_*"
	VND                       Algorithm = "VND"
	VNS                       Algorithm = "VNS"
	GRASP                     Algorithm = "GRASP"
	GRASPVNS                  Algorithm = "GRASP_VNS"
)

// Movement identifies which move operator produced an improvement.
type Movement string

const (
	MoveAdd            Movement = "ADD"
	MoveSwap1Add1      Movement = "SWAP_REMOVE_1_ADD_1"
	MoveSwap1Add2      Movement = "SWAP_REMOVE_1_ADD_2"
	MoveSwap2Add1      Movement = "SWAP_REMOVE_2_ADD_1"
	MoveEjectionChain  Movement = "EJECTION_CHAIN"
	MoveNone           Movement = "NONE"
)

// LocalSearch identifies the exploration strategy a neighborhood used.
type LocalSearch string

const (
	FirstImprovement  LocalSearch = "FIRST_IMPROVEMENT"
	BestImprovement   LocalSearch = "BEST_IMPROVEMENT"
	RandomImprovement LocalSearch = "RANDOM_IMPROVEMENT"
	NoLocalSearch     LocalSearch = "NONE"
)

// Repair identifies which feasibility-repair strategy produced a Bag.
type Repair string

const (
	Smart               Repair = "SMART"
	ProbabilisticGreedy Repair = "PROBABILISTIC_GREEDY"
	TemperatureBiased   Repair = "TEMPERATURE_BIASED"
)
