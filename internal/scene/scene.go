// Package scene models the slice of the host editing application the
// animation pipelines touch: a scene with a frame range and playback
// position, objects with location and rotation channels, and per-object
// keyframe tracks with interpolation. The model is plain data persisted as a
// JSON document, so import and export runs compose across CLI invocations
// and pipelines are testable without an editor present.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
)

// Object types.
const (
	TypeCamera = "CAMERA"
	TypeEmpty  = "EMPTY"
)

// Rotation modes. Only quaternion and Euler XYZ are modeled; the pipelines
// force quaternion mode before writing or sampling rotation keyframes.
const (
	RotationModeQuaternion = "QUATERNION"
	RotationModeEulerXYZ   = "XYZ"
)

// Animated channel data paths.
const (
	PathLocation           = "location"
	PathRotationQuaternion = "rotation_quaternion"
)

// Object is a scene object with a transform. RotationQuaternion is stored
// scalar-first (w, x, y, z).
type Object struct {
	Name               string         `json:"name"`
	Type               string         `json:"type"`
	Location           [3]float64     `json:"location"`
	RotationQuaternion [4]float64     `json:"rotation_quaternion"`
	RotationEuler      [3]float64     `json:"rotation_euler"`
	RotationMode       string         `json:"rotation_mode"`
	Selected           bool           `json:"selected,omitempty"`
	Action             *Action        `json:"action,omitempty"`
	Props              map[string]any `json:"props,omitempty"`
}

// Rotation returns the object's orientation as a quaternion regardless of
// rotation mode, converting from Euler XYZ when necessary.
func (o *Object) Rotation() quat.Number {
	if o.RotationMode == RotationModeQuaternion {
		return quat.Number{
			Real: o.RotationQuaternion[0],
			Imag: o.RotationQuaternion[1],
			Jmag: o.RotationQuaternion[2],
			Kmag: o.RotationQuaternion[3],
		}
	}
	return eulerXYZToQuat(o.RotationEuler)
}

// ClearAnimation drops any existing keyframe tracks on the object.
func (o *Object) ClearAnimation() {
	o.Action = nil
}

// NewAction replaces the object's animation with a fresh, empty action.
func (o *Object) NewAction(name string) *Action {
	o.Action = &Action{Name: name}
	return o.Action
}

// SetProp records a persisted custom attribute on the object.
func (o *Object) SetProp(key string, value any) {
	if o.Props == nil {
		o.Props = make(map[string]any)
	}
	o.Props[key] = value
}

// Prop returns a persisted custom attribute, or nil when unset.
func (o *Object) Prop(key string) any {
	if o.Props == nil {
		return nil
	}
	return o.Props[key]
}

// KeyframeInsert snapshots the object's current channel values as keyframes
// at the given frame. Supported data paths are location (3 components) and
// rotation_quaternion (4 components, w first).
func (o *Object) KeyframeInsert(path string, frame int) error {
	if o.Action == nil {
		return fmt.Errorf("object %q has no action to keyframe into", o.Name)
	}
	switch path {
	case PathLocation:
		for i := 0; i < 3; i++ {
			o.Action.FCurve(path, i).insert(frame, o.Location[i])
		}
	case PathRotationQuaternion:
		for i := 0; i < 4; i++ {
			o.Action.FCurve(path, i).insert(frame, o.RotationQuaternion[i])
		}
	default:
		return fmt.Errorf("unsupported keyframe data path %q", path)
	}
	return nil
}

// Scene holds the objects and the playback state the pipelines share with
// the host. Frames are 1-based, matching the host convention the import
// frame-index formula assumes.
type Scene struct {
	FrameStart   int       `json:"frame_start"`
	FrameEnd     int       `json:"frame_end"`
	FrameCurrent int       `json:"frame_current"`
	FPS          float64   `json:"fps"`
	ActiveCamera string    `json:"active_camera,omitempty"`
	Objects      []*Object `json:"objects,omitempty"`
}

// New returns a scene with the host's default frame range and rate.
func New() *Scene {
	return &Scene{
		FrameStart:   1,
		FrameEnd:     250,
		FrameCurrent: 1,
		FPS:          24,
	}
}

// Object returns the named object, or nil.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Camera returns the scene's designated active camera, or nil when none is
// set or the designated object is not a camera.
func (s *Scene) Camera() *Object {
	o := s.Object(s.ActiveCamera)
	if o == nil || o.Type != TypeCamera {
		return nil
	}
	return o
}

// FirstSelectedCamera returns the first selected camera-type object, or nil.
func (s *Scene) FirstSelectedCamera() *Object {
	for _, o := range s.Objects {
		if o.Selected && o.Type == TypeCamera {
			return o
		}
	}
	return nil
}

// AddCamera creates a camera object, suffixing the name if it is taken the
// way the host does ("Name.001", "Name.002", ...).
func (s *Scene) AddCamera(name string) *Object {
	unique := name
	for n := 1; s.Object(unique) != nil; n++ {
		unique = fmt.Sprintf("%s.%03d", name, n)
	}
	o := &Object{
		Name:               unique,
		Type:               TypeCamera,
		RotationQuaternion: [4]float64{1, 0, 0, 0},
		RotationMode:       RotationModeEulerXYZ,
	}
	s.Objects = append(s.Objects, o)
	return o
}

// DeselectAll clears every object's selection flag.
func (s *Scene) DeselectAll() {
	for _, o := range s.Objects {
		o.Selected = false
	}
}

// SetFrame moves the playback position and materializes every animated
// object's channel values at that frame, interpolating between keyframes.
// This is what makes export sampling at non-keyframe frames work.
func (s *Scene) SetFrame(frame int) {
	s.FrameCurrent = frame
	for _, o := range s.Objects {
		if o.Action == nil {
			continue
		}
		x := float64(frame)
		for _, fc := range o.Action.FCurves {
			if len(fc.Keyframes) == 0 {
				continue
			}
			v := fc.Evaluate(x)
			switch fc.DataPath {
			case PathLocation:
				if fc.Index >= 0 && fc.Index < 3 {
					o.Location[fc.Index] = v
				}
			case PathRotationQuaternion:
				if fc.Index >= 0 && fc.Index < 4 {
					o.RotationQuaternion[fc.Index] = v
				}
			}
		}
	}
}
