// Package runconfig loads the sukp.toml run configuration, mirroring
// golang-dep's toml.go use of github.com/pelletier/go-toml for its own
// manifest/lock files. The CLI applies budget, master seed, enable_grasp
// (which turns on both GRASP and GRASP+VNS), RCL size, the local-search
// caps and the CSV summary path. The workers, neighborhoods,
// repair_strategies and enable_grasp_vns keys are parsed but no command
// reads them.
package runconfig

import (
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the parsed form of sukp.toml.
type Config struct {
	BudgetSeconds   float64  `toml:"budget_seconds"`
	MasterSeed      uint64   `toml:"master_seed"`
	Workers         int      `toml:"workers"`
	Neighborhoods   []string `toml:"neighborhoods"`
	RepairStrategies []string `toml:"repair_strategies"`
	EnableGRASP     bool     `toml:"enable_grasp"`
	EnableGRASPVNS  bool     `toml:"enable_grasp_vns"`
	RCLSize         int      `toml:"rcl_size"`
	StallCap        int      `toml:"stall_cap"`
	TotalCap        int      `toml:"total_cap"`
	SummaryCSV      string   `toml:"summary_csv"`
}

// Default returns the configuration a run uses when no sukp.toml is
// present.
func Default() Config {
	return Config{
		BudgetSeconds: 60,
		MasterSeed:    1,
		Workers:       0, // not read; grasp.WorkerCount always decides
		RCLSize:       8,
		StallCap:      200,
		TotalCap:      2000,
	}
}

// Budget returns BudgetSeconds as a time.Duration.
func (c Config) Budget() time.Duration {
	return time.Duration(c.BudgetSeconds * float64(time.Second))
}

// Load reads and parses a sukp.toml document from r, starting from
// Default() so unset fields keep their defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return cfg, errors.Wrap(err, "runconfig: reading config")
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "runconfig: parsing config")
	}
	return cfg, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrapf(err, "runconfig: opening %s", path)
	}
	defer f.Close()
	return Load(f)
}
