// Package importer turns a recorded WebXR camera animation into keyframes on
// a scene camera: parse, validate, resolve the target, convert each frame
// through the transform core, write keyframes, then smooth interpolation.
package importer

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/jameskane05/shadow/internal/clip"
	"github.com/jameskane05/shadow/internal/pipeline"
	"github.com/jameskane05/shadow/internal/scene"
	"github.com/jameskane05/shadow/internal/xform"
)

// Custom property keys recorded on the target camera for provenance.
const (
	PropSource         = "webxr_animation_source"
	PropDuration       = "webxr_animation_duration"
	PropFrameCount     = "webxr_animation_frames"
	PropReferenceSpace = "webxr_reference_space"
)

// Run imports the JSON clip in data onto a camera in the scene. sourceName
// is the clip's file name, used for the action name and provenance. A
// malformed clip or unusable target yields a cancelled result, not an error;
// errors are reserved for caller contract violations (invalid options).
func Run(sc *scene.Scene, data []byte, sourceName string, opts Options) (pipeline.Result, error) {
	if err := opts.Validate(); err != nil {
		return pipeline.Result{}, err
	}

	c, err := clip.Decode(data)
	if err != nil {
		var parseErr *clip.ParseError
		var schemaErr *clip.SchemaError
		if errors.As(err, &parseErr) || errors.As(err, &schemaErr) {
			return pipeline.Cancelled("Import failed: %v", err), nil
		}
		return pipeline.Result{}, err
	}

	cam, err := resolveTarget(sc, opts)
	if err != nil {
		var targetErr *pipeline.TargetError
		if errors.As(err, &targetErr) {
			return pipeline.Cancelled("Import failed: %v", err), nil
		}
		return pipeline.Result{}, err
	}

	writeAnimation(sc, cam, c, sourceName, opts)

	sc.DeselectAll()
	cam.Selected = true
	return pipeline.Finished("Imported %d frames from %q", len(c.Frames), stem(sourceName)), nil
}

// resolveTarget picks or creates the camera the animation lands on. With
// UseExistingCamera the scene's active camera wins when present; otherwise a
// camera is created when CreateCamera is set or the scene has none.
func resolveTarget(sc *scene.Scene, opts Options) (*scene.Object, error) {
	if opts.UseExistingCamera {
		if cam := sc.Camera(); cam != nil {
			return cam, nil
		}
	}
	if opts.CreateCamera || sc.Camera() == nil {
		cam := sc.AddCamera("WebXR_Camera")
		sc.ActiveCamera = cam.Name
		return cam, nil
	}
	return nil, &pipeline.TargetError{Reason: "failed to get or create camera"}
}

func writeAnimation(sc *scene.Scene, cam *scene.Object, c *clip.Clip, sourceName string, opts Options) {
	duration := c.Duration()
	totalFrames := int(duration * opts.FrameRate)

	sc.FrameStart = 1
	sc.FrameEnd = max(totalFrames, 1)
	sc.FPS = opts.FrameRate

	dir := opts.direction()

	// The delta basis must see the target's pose before anything is
	// overwritten. The first-frame half of the basis stays in recorder
	// space, matching how the recorded deltas were produced.
	var basis xform.DeltaBasis
	if opts.ApplyDeltas {
		basis = xform.DeltaBasis{
			InitialPosition:    xform.VecFromArray(cam.Location),
			InitialRotation:    cam.Rotation(),
			FirstFramePosition: c.Frames[0].Position(),
			FirstFrameRotation: c.Frames[0].Rotation(),
		}
	}

	// Quaternion keyframes interpolate without gimbal artifacts.
	cam.RotationMode = scene.RotationModeQuaternion

	cam.ClearAnimation()
	action := cam.NewAction("WebXR_Anim_" + stem(sourceName))

	for _, f := range c.Frames {
		frameNumber := int(f.T*opts.FrameRate) + 1

		p, q := xform.ConvertSpace(f.Position(), f.Rotation(), dir)
		p = xform.ApplyScale(p, opts.ScaleFactor, false)
		if opts.ApplyDeltas {
			p, q = xform.RebaseDelta(p, q, basis, dir)
		}

		sc.SetFrame(frameNumber)
		cam.Location = [3]float64{p.X, p.Y, p.Z}
		cam.RotationQuaternion = [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
		cam.KeyframeInsert(scene.PathLocation, frameNumber)
		cam.KeyframeInsert(scene.PathRotationQuaternion, frameNumber)
	}

	// Smooth every written key; auto-clamped handles keep the motion free
	// of overshoot between samples.
	action.SetInterpolation(scene.InterpBezier, scene.HandleAutoClamped, scene.HandleAutoClamped)

	sc.SetFrame(1)

	cam.SetProp(PropSource, filepath.Base(sourceName))
	cam.SetProp(PropDuration, duration)
	cam.SetProp(PropFrameCount, len(c.Frames))
	if c.ReferenceSpaceType != "" {
		cam.SetProp(PropReferenceSpace, c.ReferenceSpaceType)
	}
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
