package report

import (
	"image/color"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotBins saves a bar chart of b to file. The format follows the file extension.
func PlotBins(b Bins, title, xLabel, file string) error {
	values := make(plotter.Values, NumBins)
	for i := range b.Counts {
		values[i] = float64(b.Counts[i])
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrapf(err, "plotting %s", title)
	}
	bars.Color = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Add(bars)
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Variants"
	p.NominalX(Labels()...)
	p.X.Tick.Label.Font.Size = 7
	err = p.Save(20*vg.Centimeter, 12*vg.Centimeter, file)
	return errors.Wrapf(err, "saving %s", file)
}

// PlotHistogram saves a 20 bin histogram over [0, 1] of values to file.
// Nothing is written when values is empty.
func PlotHistogram(values []float64, title, xLabel, file string) error {
	if len(values) == 0 {
		return nil
	}
	h, err := plotter.NewHist(plotter.Values(values), 20)
	if err != nil {
		return errors.Wrapf(err, "plotting %s", title)
	}
	h.FillColor = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	p := plot.New()
	p.Add(h)
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Count"
	p.X.Min = 0
	p.X.Max = 1
	err = p.Save(20*vg.Centimeter, 12*vg.Centimeter, file)
	return errors.Wrapf(err, "saving %s", file)
}

// Sketch renders b as a terminal line graph for verbose logging.
func Sketch(b Bins, caption string) string {
	series := make([]float64, NumBins)
	for i := range b.Counts {
		series[i] = float64(b.Counts[i])
	}
	return strings.TrimRight(asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Precision(0), asciigraph.Caption(caption)), "\n")
}
