// Package instio implements the instance file loader of spec §6: a plain
// text format (header line, benefit line, size line, edge lines) parsed
// into a *model.Instance, with out-of-range indices dropped as warnings
// rather than treated as errors.
package instio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gosukp/sukp/internal/sukp/model"
)

// Warning records an out-of-range index the loader dropped instead of
// failing the load, per spec §6.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Load parses the spec §6 text format from r.
func Load(r io.Reader) (*model.Instance, []Warning, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "}" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "instio: reading instance")
	}
	if len(lines) == 0 {
		return nil, nil, errors.New("instio: empty instance file")
	}

	header := strings.Fields(lines[0])
	if len(header) != 4 {
		return nil, nil, errors.Errorf("instio: header line must have 4 fields, got %d", len(header))
	}
	p, err1 := strconv.Atoi(header[0])
	d, err2 := strconv.Atoi(header[1])
	e, err3 := strconv.Atoi(header[2])
	c, err4 := strconv.Atoi(header[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, nil, errors.New("instio: header line must be four integers: P D E C")
	}
	if p < 0 || d < 0 || e < 0 || c < 0 {
		return nil, nil, errors.New("instio: header values must be non-negative")
	}

	idx := 1
	var warnings []Warning

	benefits := make([]int, p)
	if p > 0 {
		if idx >= len(lines) {
			return nil, nil, errors.New("instio: missing benefit line")
		}
		fields := strings.Fields(lines[idx])
		idx++
		for i := 0; i < p && i < len(fields); i++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "instio: benefit %d", i)
			}
			benefits[i] = v
		}
	}

	sizes := make([]int, d)
	if d > 0 {
		if idx >= len(lines) {
			return nil, nil, errors.New("instio: missing size line")
		}
		fields := strings.Fields(lines[idx])
		idx++
		for i := 0; i < d && i < len(fields); i++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "instio: size %d", i)
			}
			sizes[i] = v
		}
	}

	packages := make([]model.Package, p)
	for i := range packages {
		packages[i] = model.Package{Index: i, Name: strconv.Itoa(i), Benefit: benefits[i]}
	}
	deps := make([]model.Dependency, d)
	for i := range deps {
		deps[i] = model.Dependency{Index: i, Name: strconv.Itoa(i), Size: sizes[i]}
	}

	seen := make(map[[2]int]bool)
	edgesRead := 0
	for ; idx < len(lines) && edgesRead < e; idx++ {
		fields := strings.Fields(lines[idx])
		if len(fields) != 2 {
			warnings = append(warnings, Warning{Line: idx + 1, Message: "instio: malformed edge line, skipped"})
			continue
		}
		edgesRead++
		pi, err1 := strconv.Atoi(fields[0])
		di, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			warnings = append(warnings, Warning{Line: idx + 1, Message: "instio: non-integer edge, skipped"})
			continue
		}
		if pi < 0 || pi >= p || di < 0 || di >= d {
			warnings = append(warnings, Warning{Line: idx + 1, Message: "instio: edge index out of range, dropped"})
			continue
		}
		if seen[[2]int{pi, di}] {
			continue
		}
		seen[[2]int{pi, di}] = true
		packages[pi].DepIdx = append(packages[pi].DepIdx, di)
		deps[di].PackageIdx = append(deps[di].PackageIdx, pi)
	}

	inst, err := model.New(c, packages, deps)
	if err != nil {
		return nil, warnings, errors.Wrap(err, "instio: building instance")
	}
	return inst, warnings, nil
}
