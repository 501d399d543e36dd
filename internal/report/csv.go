package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/theckman/go-flock"

	"github.com/gosukp/sukp/internal/sukp/solve"
)

// csvHeader is spec §6's literal column enumeration: "Algorithm, Movement,
// Feasibility Strategy, File, Timestamp, Time(h:m:s.ms), Packages,
// Dependencies, Weight, Benefit, Seed, Params".
var csvHeader = []string{
	"Algorithm", "Movement", "Feasibility Strategy", "File", "Timestamp",
	"Time(h:m:s.ms)", "Packages", "Dependencies", "Weight", "Benefit", "Seed", "Params",
}

// AppendCSV appends one summary row per sol to the CSV at path, creating
// it with the spec §6 header if it does not yet exist. A flock-backed file
// lock serializes concurrent batch runs writing to the same summary file.
func AppendCSV(path string, instanceName string, timestamp time.Time, sols []solve.Solution) error {
	lock := flock.NewFlock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrap(err, "report: acquiring csv lock")
	}
	defer lock.Unlock()

	needsHeader := false
	if fi, err := os.Stat(path); os.IsNotExist(err) || (err == nil && fi.Size() == 0) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "report: opening csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(csvHeader); err != nil {
			return errors.Wrap(err, "report: writing csv header")
		}
	}

	ts := timestamp.UTC().Format(time.RFC3339)
	for _, s := range sols {
		row := []string{
			s.Algorithm,
			s.Movement,
			s.Repair,
			instanceName,
			ts,
			formatElapsed(s.Elapsed),
			strconv.Itoa(len(s.Members)),
			strconv.Itoa(len(s.UnionDeps)),
			strconv.Itoa(s.Size),
			strconv.Itoa(s.Benefit),
			strconv.FormatUint(s.Seed, 10),
			s.Params,
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "report: writing csv row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "report: flushing csv")
}

// formatElapsed renders d as spec §6's "Time(h:m:s.ms)" column.
func formatElapsed(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}
