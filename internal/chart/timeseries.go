package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bioreactor/internal/reactor"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure is a stack of panels sharing one x-axis.
type Figure struct {
	Panels []*plot.Plot
	Pad    vg.Length
}

// Draw aligns the panels vertically so their data areas line up.
func (f *Figure) Draw(c draw.Canvas) {
	if len(f.Panels) == 0 {
		return
	}
	grid := make([][]*plot.Plot, len(f.Panels))
	for i, p := range f.Panels {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows: len(f.Panels),
		Cols: 1,
		PadY: f.Pad,
	}
	canvases := plot.Align(grid, tiles, c)
	for i, p := range f.Panels {
		p.Draw(canvases[i][0])
	}
}

// TimeSeries plots substrate (top axis) and biomass (bottom axis) against
// time. Both panels use the same time range.
func TimeSeries(traj reactor.Trajectory) (*Figure, error) {
	if err := checkTrajectory(traj); err != nil {
		return nil, err
	}
	times := traj.Times()
	tMin, tMax := times[0], times[len(times)-1]
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	if tMin == tMax {
		tMax = tMin + 1
	}

	substrate := plot.New()
	substrate.Title.Text = "Biomass and Substrate vs Time"
	substrate.Y.Label.Text = "Substrate (g/L)"
	stylePlot(substrate)

	biomass := plot.New()
	biomass.X.Label.Text = "Time (h)"
	biomass.Y.Label.Text = "Biomass (g/L)"
	stylePlot(biomass)

	sLine, err := dashedLine(points(times, traj.Substrate()), substrateColor)
	if err != nil {
		return nil, fmt.Errorf("substrate series: %w", err)
	}
	xLine, err := dashedLine(points(times, traj.Biomass()), biomassColor)
	if err != nil {
		return nil, fmt.Errorf("biomass series: %w", err)
	}
	substrate.Add(sLine)
	substrate.Legend.Add("S", sLine)
	substrate.Legend.Top = true
	biomass.Add(xLine)
	biomass.Legend.Add("X", xLine)
	biomass.Legend.Top = true

	for _, p := range []*plot.Plot{substrate, biomass} {
		p.X.Min, p.X.Max = tMin, tMax
	}

	return &Figure{Panels: []*plot.Plot{substrate, biomass}, Pad: vg.Points(6)}, nil
}

// TerminalTimeSeries renders substrate and biomass as two asciigraph series.
func TerminalTimeSeries(traj reactor.Trajectory, width, height int) (string, error) {
	if err := checkTrajectory(traj); err != nil {
		return "", err
	}
	series := [][]float64{traj.Substrate(), traj.Biomass()}
	if len(traj) == 1 {
		// asciigraph needs two samples to draw a line
		series = [][]float64{
			{traj[0].S, traj[0].S},
			{traj[0].X, traj[0].X},
		}
	}

	caption := fmt.Sprintf("t = %.2f .. %.2f h", traj[0].T, traj.Last().T)
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Goldenrod, asciigraph.Green),
		asciigraph.SeriesLegends("substrate S (g/L)", "biomass X (g/L)"),
		asciigraph.Caption(caption),
	)
	return graph, nil
}
