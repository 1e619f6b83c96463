// Package export writes a trajectory as CSV, JSON or an aligned table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/bioreactor/internal/reactor"
)

// Number is a float64 that survives JSON when it is not finite: NaN and
// the infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "NaN":
			*n = Number(math.NaN())
		case "+Inf":
			*n = Number(math.Inf(1))
		case "-Inf":
			*n = Number(math.Inf(-1))
		default:
			return fmt.Errorf("export: invalid number %q", s)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Run is the JSON document for one integration.
type Run struct {
	Integrator string            `json:"integrator"`
	H          Number            `json:"h"`
	Steps      int               `json:"steps"`
	Params     map[string]Number `json:"params"`
	Dilution   Number            `json:"dilution"`
	Columns    []string          `json:"columns"`
	Rows       [][]Number        `json:"rows"`
	Metrics    map[string]Number `json:"metrics,omitempty"`
}

func numbers(in map[string]float64) map[string]Number {
	if in == nil {
		return nil
	}
	out := make(map[string]Number, len(in))
	for k, v := range in {
		out[k] = Number(v)
	}
	return out
}

// NewRun assembles the export document; Rows are copied out of traj.
func NewRun(integrator string, h float64, p reactor.Params, traj reactor.Trajectory, metrics map[string]float64) Run {
	rows := make([][]Number, len(traj))
	for i, r := range traj.Rows() {
		rows[i] = make([]Number, len(r))
		for j, v := range r {
			rows[i][j] = Number(v)
		}
	}
	return Run{
		Integrator: integrator,
		H:          Number(h),
		Steps:      len(traj) - 1,
		Params:     numbers(p.GetParams()),
		Dilution:   Number(p.Dilution()),
		Columns:    reactor.Columns(),
		Rows:       rows,
		Metrics:    numbers(metrics),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes a T,X,S header and one row per point at full precision.
func WriteCSV(w io.Writer, traj reactor.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reactor.Columns()); err != nil {
		return err
	}
	for _, p := range traj {
		row := []string{formatFloat(p.T), formatFloat(p.X), formatFloat(p.S)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// WriteTable writes an aligned table, printing every nth row plus the last.
func WriteTable(w io.Writer, traj reactor.Trajectory, every int) error {
	if every < 1 {
		every = 1
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "T (h)\tX (g/L)\tS (g/L)\t")

	for i, p := range traj {
		if i%every != 0 && i != len(traj)-1 {
			continue
		}
		fmt.Fprintf(tw, "%.4f\t%.6f\t%.6f\t\n", p.T, p.X, p.S)
	}

	return tw.Flush()
}
