// Package report renders recorded camera paths for quick visual inspection:
// an interactive HTML page via go-echarts and a static PNG via gonum/plot.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jameskane05/shadow/internal/clip"
)

// RenderHTML writes an HTML page with a top-down path scatter and a
// position-over-time line chart for the clip.
func RenderHTML(c *clip.Clip, title string, w io.Writer) error {
	pathData := make([]opts.ScatterData, 0, len(c.Frames))
	times := make([]string, 0, len(c.Frames))
	xs := make([]opts.LineData, 0, len(c.Frames))
	ys := make([]opts.LineData, 0, len(c.Frames))
	zs := make([]opts.LineData, 0, len(c.Frames))

	maxAbs := 0.0
	for _, f := range c.Frames {
		p := f.Position()
		// Top-down view: X across, -Z forward (the recorder's ground plane).
		if abs(p.X) > maxAbs {
			maxAbs = abs(p.X)
		}
		if abs(p.Z) > maxAbs {
			maxAbs = abs(p.Z)
		}
		pathData = append(pathData, opts.ScatterData{Value: []interface{}{p.X, -p.Z, f.T}})

		times = append(times, fmt.Sprintf("%.2f", f.T))
		xs = append(xs, opts.LineData{Value: p.X})
		ys = append(ys, opts.LineData{Value: p.Y})
		zs = append(zs, opts.LineData{Value: p.Z})
	}

	// Add a small padding so points at the edges are visible
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	maxT := c.Duration()
	if maxT == 0 {
		maxT = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Camera Path (top-down)", Subtitle: fmt.Sprintf("%s frames=%d duration=%.2fs", title, len(c.Frames), c.Duration())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "-Z (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxT),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("path", pathData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Position over time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "position (m)"}),
	)
	line.SetXAxis(times).
		AddSeries("x", xs).
		AddSeries("y", ys).
		AddSeries("z", zs)

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(scatter, line)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
