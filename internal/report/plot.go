package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/justitia-lab/shardscope/internal/reducer"
)

// PlotFeeLatencyCurve renders the fee-quantile vs queue latency curves (mean
// and median) to a PNG.
func PlotFeeLatencyCurve(path string, bins []reducer.QuantileBin) error {
	p := plot.New()
	p.Title.Text = "CTX Fee Quantile vs Queue Latency"
	p.X.Label.Text = "Fee Quantile"
	p.Y.Label.Text = "Queue Latency (sec)"
	p.Add(plotter.NewGrid())

	meanXYs := make(plotter.XYs, len(bins))
	medianXYs := make(plotter.XYs, len(bins))
	for i, b := range bins {
		meanXYs[i] = plotter.XY{X: float64(b.Rank), Y: b.LatencyMean}
		medianXYs[i] = plotter.XY{X: float64(b.Rank), Y: b.LatencyMedian}
	}

	if err := plotutil.AddLinePoints(p, "Mean", meanXYs, "Median", medianXYs); err != nil {
		return err
	}
	return savePNG(p, path, 8*vg.Inch, 5*vg.Inch)
}

// PlotSchemeBars renders one bar per scheme for an arbitrary scalar metric.
func PlotSchemeBars(path, title, yLabel string, names []string, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(30))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)

	return savePNG(p, path, 7*vg.Inch, 4*vg.Inch)
}

// PlotLatencyCDF renders one empirical CDF line per scheme.
func PlotLatencyCDF(path string, names []string, latencies map[string][]float64) error {
	p := plot.New()
	p.Title.Text = "CTX Latency CDF"
	p.X.Label.Text = "Latency (sec)"
	p.Y.Label.Text = "Cumulative Probability"
	p.Add(plotter.NewGrid())

	var args []interface{}
	for _, name := range names {
		samples := latencies[name]
		if len(samples) == 0 {
			continue
		}
		sorted := append([]float64(nil), samples...)
		sort.Float64s(sorted)
		xys := make(plotter.XYs, len(sorted))
		for i, v := range sorted {
			xys[i] = plotter.XY{X: v, Y: float64(i+1) / float64(len(sorted))}
		}
		args = append(args, name, xys)
	}
	if len(args) == 0 {
		return fmt.Errorf("no latency samples to plot")
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	p.Legend.Top = false
	return savePNG(p, path, 8*vg.Inch, 5*vg.Inch)
}

// PlotCumulativeSubsidy renders cumulative subsidy curves over epochs.
func PlotCumulativeSubsidy(path string, names []string, series map[string]reducer.SubsidySeries) error {
	p := plot.New()
	p.Title.Text = "Cumulative Subsidy Issuance"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Cumulative Subsidy (ETH)"
	p.Add(plotter.NewGrid())

	var args []interface{}
	for _, name := range names {
		s, ok := series[name]
		if !ok || len(s.Epochs) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Epochs))
		for i := range s.Epochs {
			xys[i] = plotter.XY{X: float64(s.Epochs[i]), Y: s.CumulativeEth[i]}
		}
		args = append(args, name, xys)
	}
	if len(args) == 0 {
		return fmt.Errorf("no subsidy series to plot")
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return savePNG(p, path, 8*vg.Inch, 5*vg.Inch)
}

// PlotLatencyBox renders per-scheme box plots of CTX latency samples.
func PlotLatencyBox(path string, names []string, latencies map[string][]float64) error {
	p := plot.New()
	p.Title.Text = "CTX Queueing Latency Distribution"
	p.Y.Label.Text = "Latency (sec)"
	p.Add(plotter.NewGrid())

	var plotted []string
	for _, name := range names {
		samples := latencies[name]
		if len(samples) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(25), float64(len(plotted)), plotter.Values(samples))
		if err != nil {
			return err
		}
		p.Add(box)
		plotted = append(plotted, name)
	}
	if len(plotted) == 0 {
		return fmt.Errorf("no latency samples to plot")
	}
	p.NominalX(plotted...)
	return savePNG(p, path, 7*vg.Inch, 5*vg.Inch)
}

func savePNG(p *plot.Plot, path string, w, h vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(w, h, path)
}
