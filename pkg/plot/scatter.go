// Package plot renders clustering results with gonum/plot.
package plot

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"luma/pkg/model"
)

var (
	ErrTooFewFeatures = errors.New("at least two features are needed to plot")
	ErrLabelCount     = errors.New("number of labels does not match number of samples")
)

var _ model.Visualizer = (*Scatter)(nil)

// Scatter plots the first two features of the data, one color per cluster,
// with the reference points drawn as crosses. The output format follows the
// extension of the path (png, svg, pdf, ...).
type Scatter struct {
	Title         string
	XLabel        string
	YLabel        string
	Width, Height vg.Length
}

// NewScatter returns a 4x4 inch scatter visualizer.
func NewScatter(title string) *Scatter {
	return &Scatter{
		Title:  title,
		XLabel: "Feature 1",
		YLabel: "Feature 2",
		Width:  4 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

func (s *Scatter) Plot(X [][]float64, labels []int, refs [][]float64, path string) error {
	if len(labels) != len(X) {
		return fmt.Errorf("plot: %d labels for %d samples: %w", len(labels), len(X), ErrLabelCount)
	}
	for _, x := range X {
		if len(x) < 2 {
			return fmt.Errorf("plot: %w", ErrTooFewFeatures)
		}
	}
	for _, r := range refs {
		if len(r) < 2 {
			return fmt.Errorf("plot: reference point: %w", ErrTooFewFeatures)
		}
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	numClusters := len(refs)
	for _, a := range labels {
		if a >= numClusters {
			numClusters = a + 1
		}
	}
	for k := 0; k < numClusters; k++ {
		pts := make(plotter.XYs, 0)
		for i, a := range labels {
			if a == k {
				pts = append(pts, plotter.XY{X: X[i][0], Y: X[i][1]})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("plot: cluster %d: %w", k, err)
		}
		sc.Color = plotutil.Color(k)
		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("cluster %d", k), sc)
	}

	if len(refs) > 0 {
		refPts := make(plotter.XYs, len(refs))
		for i, r := range refs {
			refPts[i] = plotter.XY{X: r[0], Y: r[1]}
		}
		c, err := plotter.NewScatter(refPts)
		if err != nil {
			return fmt.Errorf("plot: reference points: %w", err)
		}
		c.Color = color.RGBA{A: 255}
		c.Shape = draw.CrossGlyph{}
		c.Radius = vg.Points(5)
		p.Add(c)
	}

	if err := p.Save(s.Width, s.Height, path); err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}
	return nil
}
