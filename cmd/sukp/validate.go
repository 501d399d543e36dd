// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/gosukp/sukp/internal/instio"
	"github.com/gosukp/sukp/internal/report"
	"github.com/gosukp/sukp/internal/solog"
	"github.com/gosukp/sukp/internal/validate"
)

const validateShortHelp = `Check a report against its instance file`
const validateLongHelp = `
Recomputes size and benefit from a report's bit-vectors against its
instance file and compares them with the figures the report claims.
`

type validateCommand struct{}

func (cmd *validateCommand) Name() string      { return "validate" }
func (cmd *validateCommand) Args() string      { return "<instance-file> <report-file>" }
func (cmd *validateCommand) ShortHelp() string { return validateShortHelp }
func (cmd *validateCommand) LongHelp() string  { return validateLongHelp }
func (cmd *validateCommand) Hidden() bool      { return false }

func (cmd *validateCommand) Register(fs *flag.FlagSet) {}

func (cmd *validateCommand) Run(logger *solog.Logger, args []string) error {
	if len(args) != 2 {
		return errors.New("validate requires <instance-file> <report-file>")
	}
	instPath, reportPath := args[0], args[1]

	instF, err := os.Open(instPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", instPath)
	}
	inst, _, err := instio.Load(instF)
	instF.Close()
	if err != nil {
		return errors.Wrapf(err, "loading %s", instPath)
	}

	repF, err := os.Open(reportPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", reportPath)
	}
	rep, err := report.Read(repF)
	repF.Close()
	if err != nil {
		return errors.Wrapf(err, "reading %s", reportPath)
	}

	ok, detail := validate.Validate(inst, rep)
	if ok {
		fmt.Printf("OK: size=%d benefit=%d\n", detail.RecomputedSize, detail.RecomputedBenefit)
		return nil
	}

	fmt.Printf("MISMATCH: recomputed size=%d benefit=%d, reported size=%d benefit=%d\n",
		detail.RecomputedSize, detail.RecomputedBenefit, detail.ReportedSize, detail.ReportedBenefit)
	for _, m := range detail.Mismatches {
		fmt.Printf("  - %s\n", m)
	}
	return errors.New("validation failed")
}
