package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jameskane05/shadow/internal/clip"
)

func testClip() *clip.Clip {
	return &clip.Clip{
		Frames: []clip.Frame{
			{T: 0, Q: [4]float64{0, 0, 0, 1}, P: &[3]float64{0, 1.6, 0}},
			{T: 0.5, Q: [4]float64{0, 0, 0, 1}, P: &[3]float64{0.5, 1.6, -1}},
			{T: 1, Q: [4]float64{0, 0, 0, 1}, P: &[3]float64{1, 1.6, -2}},
		},
		ReferenceSpaceType: clip.LocalFloor,
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(testClip(), "walk", &buf); err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Camera Path (top-down)") {
		t.Error("rendered page missing the path chart")
	}
	if !strings.Contains(html, "Position over time") {
		t.Error("rendered page missing the position chart")
	}
}

func TestRenderHTMLNoPositions(t *testing.T) {
	c := &clip.Clip{Frames: []clip.Frame{{T: 0, Q: [4]float64{0, 0, 0, 1}}}}
	var buf bytes.Buffer
	if err := RenderHTML(c, "rotation-only", &buf); err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendered page is empty")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.png")
	if err := WritePNG(testClip(), "walk", path); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}
