// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	radix "github.com/armon/go-radix"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	shutil "github.com/termie/go-shutil"

	"github.com/gosukp/sukp/internal/instio"
	"github.com/gosukp/sukp/internal/report"
	"github.com/gosukp/sukp/internal/runconfig"
	"github.com/gosukp/sukp/internal/solog"
	"github.com/gosukp/sukp/internal/sukp/solve"
)

const batchShortHelp = `Solve every instance file under a directory`
const batchLongHelp = `
Walks a directory of instance files, solves each one within the
configured per-instance budget, and writes one report per solution plus
an appended CSV summary row. The -filter flag restricts the run to
instance basenames sharing the given prefix, via a radix-tree index
built from the directory listing. The -snapshot flag copies the
directory aside before running, so a batch run never mutates its
source instances in place.
`

type batchCommand struct {
	config   string
	filter   string
	snapshot string
}

func (cmd *batchCommand) Name() string      { return "batch" }
func (cmd *batchCommand) Args() string      { return "<instance-dir>" }
func (cmd *batchCommand) ShortHelp() string { return batchShortHelp }
func (cmd *batchCommand) LongHelp() string  { return batchLongHelp }
func (cmd *batchCommand) Hidden() bool      { return false }

func (cmd *batchCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.config, "config", "", "path to sukp.toml (optional)")
	fs.StringVar(&cmd.filter, "filter", "", "only run instances whose basename has this prefix")
	fs.StringVar(&cmd.snapshot, "snapshot", "", "copy instance-dir here before running")
}

func (cmd *batchCommand) Run(logger *solog.Logger, args []string) error {
	if len(args) != 1 {
		return errors.New("batch requires exactly one instance-dir argument")
	}
	dir := args[0]

	if cmd.snapshot != "" {
		if err := shutil.CopyTree(dir, cmd.snapshot, nil); err != nil {
			return errors.Wrapf(err, "snapshotting %s to %s", dir, cmd.snapshot)
		}
		dir = cmd.snapshot
		logger.LogSolvefln("snapshotted %s to %s", args[0], cmd.snapshot)
	}

	cfg := runconfig.Default()
	if cmd.config != "" {
		loaded, err := runconfig.LoadFile(cmd.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	index := radix.New()
	var instPaths []string
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || filepath.Ext(path) != ".sukp" {
				return nil
			}
			base := strings.TrimSuffix(filepath.Base(path), ".sukp")
			index.Insert(base, path)
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return errors.Wrapf(err, "walking %s", dir)
	}

	if cmd.filter != "" {
		var filtered []string
		index.WalkPrefix(cmd.filter, func(s string, v interface{}) bool {
			filtered = append(filtered, v.(string))
			return false
		})
		instPaths = filtered
	} else {
		index.Walk(func(s string, v interface{}) bool {
			instPaths = append(instPaths, v.(string))
			return false
		})
	}

	logger.LogSolvefln("batch: %d instance(s) selected under %s", len(instPaths), dir)

	for _, instPath := range instPaths {
		if err := cmd.runOne(logger, cfg, instPath); err != nil {
			logger.LogSolvefln("%s: %v", instPath, err)
		}
	}
	return nil
}

func (cmd *batchCommand) runOne(logger *solog.Logger, cfg runconfig.Config, instPath string) error {
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

	start := time.Now()
	sols := solve.Solve(context.Background(), inst, cfg.Budget(), cfg.MasterSeed, start, solve.Options{
		EnableGRASP: cfg.EnableGRASP,
		RCLSize:     cfg.RCLSize,
		StallCap:    cfg.StallCap,
		TotalCap:    cfg.TotalCap,
	})

	if cfg.SummaryCSV != "" {
		if err := report.AppendCSV(cfg.SummaryCSV, instPath, start, sols); err != nil {
			return errors.Wrap(err, "appending csv summary")
		}
	}

	for i, sol := range sols {
		outPath := reportPath(filepath.Dir(instPath), instPath, i)
		out, err := os.Create(outPath)
		if err != nil {
			return errors.Wrapf(err, "creating %s", outPath)
		}
		err = report.Write(out, inst, sol)
		out.Close()
		if err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
	}
	logger.LogSolvefln("%s: produced %d solution(s) in %s", instPath, len(sols), time.Since(start))
	return nil
}
