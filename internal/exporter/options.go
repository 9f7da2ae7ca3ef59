package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jameskane05/shadow/internal/clip"
	"github.com/jameskane05/shadow/internal/xform"
)

// Coordinate system choices for export.
const (
	CoordWebXR = "WEBXR" // convert host Z-up poses back to WebXR Y-up
	CoordHost  = "HOST"  // keep the host's Z-up axes (no conversion)
)

// Frame sampling modes.
const (
	SampleKeyframes  = "KEYFRAMES"   // only frames that carry a keyframe
	SampleAllFrames  = "ALL_FRAMES"  // every frame in the scene range
	SampleCustomRate = "CUSTOM_RATE" // every Nth frame in the scene range
)

// ValidSampleModes contains all valid sample mode values.
var ValidSampleModes = []string{SampleKeyframes, SampleAllFrames, SampleCustomRate}

// Options configures one export run. Construct with DefaultOptions or
// LoadOptions and treat as immutable; Validate before running.
//
// There is deliberately no delta option here: delta rebasing is import-only
// and the wire format carries nothing to invert it from.
type Options struct {
	// ExportActiveCamera exports the scene's active camera; when false the
	// first selected camera is exported instead.
	ExportActiveCamera bool
	// ScaleFactor divides positions on the way out (inverse of import).
	ScaleFactor float64
	// CoordinateSystem is CoordWebXR or CoordHost.
	CoordinateSystem string
	// SampleMode selects which frames are sampled.
	SampleMode string
	// CustomSampleRate is the frame stride for SampleCustomRate.
	CustomSampleRate int
	// ExportPosition includes the position channel in the output.
	ExportPosition bool
	// ReferenceSpaceType is recorded in the output envelope.
	ReferenceSpaceType string
}

// DefaultOptions mirrors the defaults the host UI presents.
func DefaultOptions() Options {
	return Options{
		ExportActiveCamera: true,
		ScaleFactor:        1.0,
		CoordinateSystem:   CoordWebXR,
		SampleMode:         SampleAllFrames,
		CustomSampleRate:   1,
		ExportPosition:     true,
		ReferenceSpaceType: clip.DefaultReferenceSpace,
	}
}

type fileOptions struct {
	ExportActiveCamera *bool    `json:"export_active_camera,omitempty"`
	ScaleFactor        *float64 `json:"scale_factor,omitempty"`
	CoordinateSystem   *string  `json:"coordinate_system,omitempty"`
	SampleMode         *string  `json:"sample_mode,omitempty"`
	CustomSampleRate   *int     `json:"custom_sample_rate,omitempty"`
	ExportPosition     *bool    `json:"export_position,omitempty"`
	ReferenceSpaceType *string  `json:"reference_space_type,omitempty"`
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

	if f.ExportActiveCamera != nil {
		opts.ExportActiveCamera = *f.ExportActiveCamera
	}
	if f.ScaleFactor != nil {
		opts.ScaleFactor = *f.ScaleFactor
	}
	if f.CoordinateSystem != nil {
		opts.CoordinateSystem = *f.CoordinateSystem
	}
	if f.SampleMode != nil {
		opts.SampleMode = *f.SampleMode
	}
	if f.CustomSampleRate != nil {
		opts.CustomSampleRate = *f.CustomSampleRate
	}
	if f.ExportPosition != nil {
		opts.ExportPosition = *f.ExportPosition
	}
	if f.ReferenceSpaceType != nil {
		opts.ReferenceSpaceType = *f.ReferenceSpaceType
	}
	return opts, nil
}

// Validate checks field ranges before a run.
func (o Options) Validate() error {
	if o.ScaleFactor < 0.001 || o.ScaleFactor > 1000 {
		return fmt.Errorf("scale_factor must be between 0.001 and 1000, got %g", o.ScaleFactor)
	}
	if o.CoordinateSystem != CoordWebXR && o.CoordinateSystem != CoordHost {
		return fmt.Errorf("coordinate_system must be %q or %q, got %q", CoordWebXR, CoordHost, o.CoordinateSystem)
	}
	valid := false
	for _, m := range ValidSampleModes {
		if o.SampleMode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("sample_mode must be one of %s, got %q",
			strings.Join(ValidSampleModes, ", "), o.SampleMode)
	}
	if o.CustomSampleRate < 1 || o.CustomSampleRate > 100 {
		return fmt.Errorf("custom_sample_rate must be between 1 and 100, got %d", o.CustomSampleRate)
	}
	if !clip.IsValidReferenceSpace(o.ReferenceSpaceType) {
		return fmt.Errorf("reference_space_type must be one of %s, got %q",
			strings.Join(clip.ReferenceSpaces, ", "), o.ReferenceSpaceType)
	}
	return nil
}

// direction maps the coordinate system choice onto the transform core.
func (o Options) direction() xform.Direction {
	if o.CoordinateSystem == CoordWebXR {
		return xform.HostToWebXR
	}
	return xform.Keep
}
