package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jameskane05/shadow/internal/clip"
)

// WritePNG renders the clip's camera path as a top-down line plot and saves
// it to path.
func WritePNG(c *clip.Clip, title, path string) error {
	pts := make(plotter.XYs, 0, len(c.Frames))
	for _, f := range c.Frames {
		p := f.Position()
		pts = append(pts, plotter.XY{X: p.X, Y: -p.Z})
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s (%d frames, %.2fs)", title, len(c.Frames), c.Duration())
	pl.X.Label.Text = "X (m)"
	pl.Y.Label.Text = "-Z (m)"
	pl.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build path line: %w", err)
	}
	pl.Add(line)

	if err := pl.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save path plot: %w", err)
	}
	return nil
}
