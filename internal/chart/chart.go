package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/bioreactor/internal/reactor"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

var (
	ErrEmptyTrajectory   = errors.New("chart: empty trajectory")
	ErrUnsupportedFormat = errors.New("chart: unsupported output format")
)

var (
	substrateColor = color.RGBA{R: 0xd4, G: 0xa0, B: 0x17, A: 0xff}
	biomassColor   = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	phaseColor     = color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
	dpi           = 300
)

// Drawer is anything that can render itself onto a canvas; *plot.Plot and
// *Figure both qualify.
type Drawer interface {
	Draw(c draw.Canvas)
}

func points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func dashedLine(pts plotter.XYs, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = c
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return line, nil
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(11)
	p.Y.Label.TextStyle.Font.Size = vg.Points(11)
	p.X.Padding = vg.Points(4)
	p.Y.Padding = vg.Points(4)
	p.Add(plotter.NewGrid())
}

// WriteTo renders d in the given format ("png" or "svg") at width x height.
func WriteTo(w io.Writer, d Drawer, format string, width, height vg.Length) error {
	switch strings.ToLower(format) {
	case "png":
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
		d.Draw(draw.New(c))
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	case "svg":
		c := vgsvg.New(width, height)
		d.Draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes d to path, picking the format from the file extension.
func Save(path string, d Drawer, width, height vg.Length) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTo(f, d, format, width, height); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// bounds returns the padded extent of vs, widening a degenerate range.
func bounds(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}

func checkTrajectory(traj reactor.Trajectory) error {
	if len(traj) == 0 {
		return ErrEmptyTrajectory
	}
	return nil
}
