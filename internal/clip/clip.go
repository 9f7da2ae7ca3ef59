// Package clip defines the JSON interchange format produced by the WebXR
// session recorder and consumed by this tool: a sequence of timestamped
// camera poses plus free-form metadata.
package clip

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is one recorded camera pose. Q is in wire order (x, y, z, w) and is
// assumed to be unit length; P is optional and defaults to the origin.
type Frame struct {
	T float64     `json:"t"`
	Q [4]float64  `json:"q"`
	P *[3]float64 `json:"p,omitempty"`
}

// Rotation returns the frame's quaternion in scalar-first form.
func (f Frame) Rotation() quat.Number {
	return quat.Number{Real: f.Q[3], Imag: f.Q[0], Jmag: f.Q[1], Kmag: f.Q[2]}
}

// Position returns the frame's position, or the origin if none was recorded.
func (f Frame) Position() r3.Vec {
	if f.P == nil {
		return r3.Vec{}
	}
	return r3.Vec{X: f.P[0], Y: f.P[1], Z: f.P[2]}
}

// Clip is a full animation: frames ordered by non-decreasing timestamp
// (assumed, not enforced), the WebXR reference space they were recorded in,
// and whatever metadata the recorder attached.
type Clip struct {
	Frames             []Frame        `json:"frames"`
	ReferenceSpaceType string         `json:"referenceSpaceType,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Duration returns the last frame's timestamp in seconds.
func (c *Clip) Duration() float64 {
	if len(c.Frames) == 0 {
		return 0
	}
	return c.Frames[len(c.Frames)-1].T
}

// Decode parses UTF-8 JSON text into a Clip. Syntax errors are reported as
// *ParseError; a missing or empty frames array as *SchemaError.
func Decode(data []byte) (*Clip, error) {
	var env struct {
		Frames             json.RawMessage `json:"frames"`
		ReferenceSpaceType string          `json:"referenceSpaceType"`
		Metadata           map[string]any  `json:"metadata"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Err: err}
	}
	if env.Frames == nil {
		return nil, &SchemaError{Reason: "missing 'frames' array"}
	}
	var frames []Frame
	if err := json.Unmarshal(env.Frames, &frames); err != nil {
		// Present but not a usable list of poses.
		return nil, &SchemaError{Reason: "missing 'frames' array"}
	}
	if len(frames) == 0 {
		return nil, &SchemaError{Reason: "no frames found in animation data"}
	}
	return &Clip{
		Frames:             frames,
		ReferenceSpaceType: env.ReferenceSpaceType,
		Metadata:           env.Metadata,
	}, nil
}

// Encode serializes a Clip as two-space indented JSON. Rounding of frame
// values is the exporter's job; Encode writes what it is given.
func Encode(c *Clip) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Round rounds v to the given number of decimal places. The wire format uses
// 4 places for timestamps and 6 for quaternion and position components.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
