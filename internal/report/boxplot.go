// Package report renders dataset summary graphics.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveLengthBoxPlot renders a box-and-whisker plot of the review-length
// distribution to a PNG file.
func SaveLengthBoxPlot(lengths []float64, path string) error {
	if len(lengths) == 0 {
		return fmt.Errorf("report: no lengths to plot")
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("report: failed to create plot: %w", err)
	}
	p.Title.Text = "Review length distribution"
	p.Y.Label.Text = "Tokens"

	values := make(plotter.Values, len(lengths))
	copy(values, lengths)

	box, err := plotter.NewBoxPlot(vg.Points(60), 0, values)
	if err != nil {
		return fmt.Errorf("report: failed to create box plot: %w", err)
	}
	p.Add(box)
	p.NominalX("reviews")

	if err := p.Save(4*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("report: failed to save %s: %w", path, err)
	}
	return nil
}
