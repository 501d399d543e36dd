// Package report implements the spec §6 report format: a key-value header
// followed by "=== PACKAGES ===" and "=== DEPENDENCIES ===" bit-vector
// blocks describing a solution, plus a flock-guarded CSV summary appender.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gosukp/sukp/internal/sukp/model"
	"github.com/gosukp/sukp/internal/sukp/solve"
)

// Report is the parsed form of a report file: the key-value header plus
// the two bit-vectors.
type Report struct {
	Header    map[string]string
	Packages  []bool
	Dependencies []bool
}

var headerOrder = []string{
	"algorithm", "movement", "local_search", "repair",
	"seed", "params", "elapsed", "size", "benefit", "infeasible",
}

// Write renders sol against inst in the spec §6 report format.
func Write(w io.Writer, inst *model.Instance, sol solve.Solution) error {
	bw := bufio.NewWriter(w)

	fields := map[string]string{
		"algorithm":    sol.Algorithm,
		"movement":     sol.Movement,
		"local_search": sol.LocalSearch,
		"repair":       sol.Repair,
		"seed":         strconv.FormatUint(sol.Seed, 10),
		"params":       sol.Params,
		"elapsed":      strconv.FormatFloat(sol.Elapsed.Seconds(), 'f', -1, 64),
		"size":         strconv.Itoa(sol.Size),
		"benefit":      strconv.Itoa(sol.Benefit),
		"infeasible":   strconv.FormatBool(sol.Infeasible),
	}
	for _, k := range headerOrder {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", k, fields[k]); err != nil {
			return errors.Wrap(err, "report: writing header")
		}
	}

	inBag := make(map[int]bool, len(sol.Members))
	for _, m := range sol.Members {
		inBag[m] = true
	}
	inUnion := make(map[int]bool, len(sol.UnionDeps))
	for _, d := range sol.UnionDeps {
		inUnion[d] = true
	}

	if _, err := fmt.Fprintln(bw, "=== PACKAGES ==="); err != nil {
		return errors.Wrap(err, "report: writing packages header")
	}
	if err := writeBits(bw, len(inst.Packages), inBag); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(bw, "=== DEPENDENCIES ==="); err != nil {
		return errors.Wrap(err, "report: writing dependencies header")
	}
	if err := writeBits(bw, len(inst.Deps), inUnion); err != nil {
		return err
	}

	return bw.Flush()
}

// writeBits renders the spec §6 bit-vector as "[b0,b1,...]", unspaced, per
// the original validator's writer convention.
func writeBits(w io.Writer, n int, set map[int]bool) error {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if set[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "report: writing bit-vector")
}

// Read parses a report file written by Write. It accepts both the
// unspaced bit-vectors Write produces and a variant with spaces after the
// commas, for compatibility with hand-edited reports.
func Read(r io.Reader) (*Report, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	rep := &Report{Header: make(map[string]string)}
	section := ""
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line {
		case "=== PACKAGES ===":
			section = "packages"
			continue
		case "=== DEPENDENCIES ===":
			section = "dependencies"
			continue
		}
		switch section {
		case "":
			k, v, ok := strings.Cut(line, "=")
			if !ok {
				return nil, errors.Errorf("report: malformed header line %q", line)
			}
			rep.Header[k] = v
		case "packages":
			rep.Packages = append(rep.Packages, parseBits(line)...)
			section = ""
		case "dependencies":
			rep.Dependencies = append(rep.Dependencies, parseBits(line)...)
			section = ""
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "report: reading")
	}
	return rep, nil
}

// parseBits accepts the spec §6 bracketed, comma-separated bit-vector
// ("[1,0,1]" or "[1, 0, 1]"), matching the original validator's
// parseVector: find the outermost brackets, split the content on commas,
// trim whitespace from each token.
func parseBits(line string) []bool {
	first := strings.IndexByte(line, '[')
	last := strings.LastIndexByte(line, ']')
	if first == -1 || last == -1 || last <= first {
		return nil
	}
	content := line[first+1 : last]
	if strings.TrimSpace(content) == "" {
		return nil
	}
	tokens := strings.Split(content, ",")
	bits := make([]bool, 0, len(tokens))
	for _, tok := range tokens {
		bits = append(bits, strings.TrimSpace(tok) == "1")
	}
	return bits
}
