// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"

	"github.com/gosukp/sukp/internal/instio"
	"github.com/gosukp/sukp/internal/report"
	"github.com/gosukp/sukp/internal/runconfig"
	"github.com/gosukp/sukp/internal/solog"
	"github.com/gosukp/sukp/internal/sukp/solve"
)

const solveShortHelp = `Solve a single instance file`
const solveLongHelp = `
Loads an instance file, runs the full construction and improvement
portfolio within the configured time budget, and writes one report per
solution the portfolio kept.
`

type solveCommand struct {
	config  string
	budget  time.Duration
	seed    uint64
	grasp   bool
	outDir  string
}

func (cmd *solveCommand) Name() string      { return "solve" }
func (cmd *solveCommand) Args() string      { return "<instance-file>" }
func (cmd *solveCommand) ShortHelp() string { return solveShortHelp }
func (cmd *solveCommand) LongHelp() string  { return solveLongHelp }
func (cmd *solveCommand) Hidden() bool      { return false }

func (cmd *solveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.config, "config", "", "path to sukp.toml (optional)")
	fs.DurationVar(&cmd.budget, "budget", 0, "wall-clock budget, overrides config")
	fs.Uint64Var(&cmd.seed, "seed", 0, "master seed, overrides config")
	fs.BoolVar(&cmd.grasp, "grasp", false, "enable GRASP and GRASP+VNS passes")
	fs.StringVar(&cmd.outDir, "out", ".", "directory to write report files into")
}

func (cmd *solveCommand) Run(logger *solog.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("solve requires exactly one instance-file argument")
	}
	instPath := args[0]

	cfg := runconfig.Default()
	if cmd.config != "" {
		loaded, err := runconfig.LoadFile(cmd.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.budget > 0 {
		cfg.BudgetSeconds = cmd.budget.Seconds()
	}
	if cmd.seed != 0 {
		cfg.MasterSeed = cmd.seed
	}
	if cmd.grasp {
		cfg.EnableGRASP = true
	}

	f, err := os.Open(instPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", instPath)
	}
	inst, warnings, err := instio.Load(f)
	f.Close()
	if err != nil {
		return errors.Wrapf(err, "loading %s", instPath)
	}
	for _, w := range warnings {
		logger.LogSolvefln("%s: %s", instPath, w.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	stop := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			close(stop)
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	sols := solve.Solve(ctx, inst, cfg.Budget(), cfg.MasterSeed, start, solve.Options{
		EnableGRASP:   cfg.EnableGRASP,
		RCLSize:       cfg.RCLSize,
		StallCap:      cfg.StallCap,
		TotalCap:      cfg.TotalCap,
		StopRequested: stop,
	})
	logger.LogSolvefln("%s: produced %d solution(s) in %s", instPath, len(sols), time.Since(start))

	if cfg.SummaryCSV != "" {
		if err := report.AppendCSV(cfg.SummaryCSV, instPath, start, sols); err != nil {
			return errors.Wrap(err, "appending csv summary")
		}
	}

	for i, sol := range sols {
		outPath := reportPath(cmd.outDir, instPath, i)
		out, err := os.Create(outPath)
		if err != nil {
			return errors.Wrapf(err, "creating %s", outPath)
		}
		err = report.Write(out, inst, sol)
		out.Close()
		if err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
		logger.LogSolvefln("wrote %s (benefit=%d size=%d algorithm=%s)", outPath, sol.Benefit, sol.Size, sol.Algorithm)
	}
	return nil
}
