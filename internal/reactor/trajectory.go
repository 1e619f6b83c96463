package reactor

import "github.com/san-kum/bioreactor/internal/dynamo"

// Point is one row of a trajectory: time in hours, biomass and substrate in g/L.
type Point struct {
	T float64 `json:"T"`
	X float64 `json:"X"`
	S float64 `json:"S"`
}

// State returns the {X, S} state vector of p.
func (p Point) State() dynamo.State {
	return dynamo.State{p.X, p.S}
}

// Trajectory is the ordered integration output. Row 0 is the initial condition.
type Trajectory []Point

var columns = []string{"T", "X", "S"}

// Columns returns the column names in output order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Last returns the final row, or the zero Point for an empty trajectory.
func (tr Trajectory) Last() Point {
	if len(tr) == 0 {
		return Point{}
	}
	return tr[len(tr)-1]
}

func (tr Trajectory) Times() []float64 {
	return tr.column(func(p Point) float64 { return p.T })
}

func (tr Trajectory) Biomass() []float64 {
	return tr.column(func(p Point) float64 { return p.X })
}

func (tr Trajectory) Substrate() []float64 {
	return tr.column(func(p Point) float64 { return p.S })
}

// Rows returns the trajectory as [T, X, S] rows.
func (tr Trajectory) Rows() [][]float64 {
	rows := make([][]float64, len(tr))
	for i, p := range tr {
		rows[i] = []float64{p.T, p.X, p.S}
	}
	return rows
}

func (tr Trajectory) column(get func(Point) float64) []float64 {
	out := make([]float64, len(tr))
	for i, p := range tr {
		out[i] = get(p)
	}
	return out
}
