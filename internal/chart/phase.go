package chart

import (
	"fmt"
	"strings"

	"github.com/san-kum/bioreactor/internal/reactor"
	"gonum.org/v1/plot"
)

// PhasePlane plots biomass (x-axis) against substrate (y-axis).
func PhasePlane(traj reactor.Trajectory) (*plot.Plot, error) {
	if err := checkTrajectory(traj); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Biomass vs Substrate\nphase diagram"
	p.X.Label.Text = "Biomass (g/L)"
	p.Y.Label.Text = "Substrate (g/L)"
	stylePlot(p)

	line, err := dashedLine(points(traj.Biomass(), traj.Substrate()), phaseColor)
	if err != nil {
		return nil, fmt.Errorf("phase plane: %w", err)
	}
	p.Add(line)

	return p, nil
}

// TerminalPhase draws the phase plane on a width x height character grid.
// The start point is marked 'o' and the end point 'x'.
func TerminalPhase(traj reactor.Trajectory, width, height int) (string, error) {
	if err := checkTrajectory(traj); err != nil {
		return "", err
	}
	if width < 2 || height < 2 {
		return "", fmt.Errorf("chart: grid %dx%d too small", width, height)
	}

	minX, maxX := bounds(traj.Biomass())
	minY, maxY := bounds(traj.Substrate())
	rangeX := maxX - minX
	rangeY := maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	cell := func(x, y float64) (row, col int, ok bool) {
		col = int((x - minX) / rangeX * float64(width-1))
		row = height - 1 - int((y-minY)/rangeY*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	// Axes where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		if _, col, ok := cell(0, minY); ok {
			for row := 0; row < height; row++ {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		if row, _, ok := cell(minX, 0); ok {
			for col := 0; col < width; col++ {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range traj {
		if row, col, ok := cell(p.X, p.S); ok {
			canvas[row][col] = '•'
		}
	}
	if row, col, ok := cell(traj[0].X, traj[0].S); ok {
		canvas[row][col] = 'o'
	}
	last := traj.Last()
	if row, col, ok := cell(last.X, last.S); ok {
		canvas[row][col] = 'x'
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "S (g/L) %.3f .. %.3f\n", minY, maxY)
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "X (g/L) %.3f .. %.3f\n", minX, maxX)
	return sb.String(), nil
}
