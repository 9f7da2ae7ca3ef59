package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jameskane05/shadow/internal/xform"
)

// Coordinate system choices for import.
const (
	CoordHost  = "HOST"  // convert WebXR Y-up poses into the host's Z-up frame
	CoordWebXR = "WEBXR" // keep the recorded Y-up axes untouched
)

// Options configures one import run. Construct with DefaultOptions or
// LoadOptions and treat as immutable; Validate before running.
type Options struct {
	// CreateCamera creates a new camera object for the animation.
	CreateCamera bool
	// UseExistingCamera applies the animation to the scene's active camera
	// instead of creating a new one.
	UseExistingCamera bool
	// ScaleFactor scales recorded positions (WebXR uses meters).
	ScaleFactor float64
	// CoordinateSystem is CoordHost or CoordWebXR.
	CoordinateSystem string
	// ApplyDeltas rebases poses relative to the target's starting pose
	// instead of applying them absolutely.
	ApplyDeltas bool
	// FrameRate is the target keyframe rate in frames per second.
	FrameRate float64
}

// DefaultOptions mirrors the defaults the host UI presents.
func DefaultOptions() Options {
	return Options{
		CreateCamera:     true,
		ScaleFactor:      1.0,
		CoordinateSystem: CoordHost,
		FrameRate:        30.0,
	}
}

// fileOptions is the JSON overlay format for option files. Omitted fields
// keep their defaults, so partial files are safe.
type fileOptions struct {
	CreateCamera      *bool    `json:"create_camera,omitempty"`
	UseExistingCamera *bool    `json:"use_existing_camera,omitempty"`
	ScaleFactor       *float64 `json:"scale_factor,omitempty"`
	CoordinateSystem  *string  `json:"coordinate_system,omitempty"`
	ApplyDeltas       *bool    `json:"apply_deltas,omitempty"`
	FrameRate         *float64 `json:"frame_rate,omitempty"`
}

// LoadOptions reads an options JSON file and overlays it on the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return opts, fmt.Errorf("options file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return opts, fmt.Errorf("failed to read options file: %w", err)
	}
	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return opts, fmt.Errorf("failed to parse options JSON: %w", err)
	}

	if f.CreateCamera != nil {
		opts.CreateCamera = *f.CreateCamera
	}
	if f.UseExistingCamera != nil {
		opts.UseExistingCamera = *f.UseExistingCamera
	}
	if f.ScaleFactor != nil {
		opts.ScaleFactor = *f.ScaleFactor
	}
	if f.CoordinateSystem != nil {
		opts.CoordinateSystem = *f.CoordinateSystem
	}
	if f.ApplyDeltas != nil {
		opts.ApplyDeltas = *f.ApplyDeltas
	}
	if f.FrameRate != nil {
		opts.FrameRate = *f.FrameRate
	}
	return opts, nil
}

// Validate checks field ranges before a run.
func (o Options) Validate() error {
	if o.ScaleFactor < 0.001 || o.ScaleFactor > 1000 {
		return fmt.Errorf("scale_factor must be between 0.001 and 1000, got %g", o.ScaleFactor)
	}
	if o.CoordinateSystem != CoordHost && o.CoordinateSystem != CoordWebXR {
		return fmt.Errorf("coordinate_system must be %q or %q, got %q", CoordHost, CoordWebXR, o.CoordinateSystem)
	}
	if o.FrameRate < 1 || o.FrameRate > 120 {
		return fmt.Errorf("frame_rate must be between 1 and 120, got %g", o.FrameRate)
	}
	return nil
}

// direction maps the coordinate system choice onto the transform core.
func (o Options) direction() xform.Direction {
	if o.CoordinateSystem == CoordHost {
		return xform.WebXRToHost
	}
	return xform.Keep
}
