// Package exporter samples an animated scene camera frame by frame, runs the
// poses through the transform core in reverse, and serializes them to the
// WebXR interchange JSON format.
package exporter

import (
	"errors"

	"github.com/jameskane05/shadow/internal/clip"
	"github.com/jameskane05/shadow/internal/importer"
	"github.com/jameskane05/shadow/internal/pipeline"
	"github.com/jameskane05/shadow/internal/scene"
	"github.com/jameskane05/shadow/internal/version"
	"github.com/jameskane05/shadow/internal/xform"
)

// Run exports the scene's animated camera as interchange JSON. A missing
// camera or missing animation yields a cancelled result; errors are reserved
// for caller contract violations (invalid options) and encoding failures.
func Run(sc *scene.Scene, opts Options) (pipeline.Result, []byte, error) {
	if err := opts.Validate(); err != nil {
		return pipeline.Result{}, nil, err
	}

	cam, err := resolveSource(sc, opts)
	if err != nil {
		var targetErr *pipeline.TargetError
		var animErr *pipeline.AnimationMissingError
		if errors.As(err, &targetErr) || errors.As(err, &animErr) {
			return pipeline.Cancelled("Export failed: %v", err), nil, nil
		}
		return pipeline.Result{}, nil, err
	}

	c := sampleAnimation(sc, cam, opts)

	data, err := clip.Encode(c)
	if err != nil {
		return pipeline.Result{}, nil, err
	}
	return pipeline.Finished("Exported %d frames from camera %q", len(c.Frames), cam.Name), data, nil
}

// resolveSource picks the camera to export and checks it is animated.
func resolveSource(sc *scene.Scene, opts Options) (*scene.Object, error) {
	var cam *scene.Object
	if opts.ExportActiveCamera {
		cam = sc.Camera()
	} else {
		cam = sc.FirstSelectedCamera()
	}
	if cam == nil {
		return nil, &pipeline.TargetError{Reason: "no camera found to export"}
	}
	if cam.Action == nil || !cam.Action.HasKeyframes() {
		return nil, &pipeline.AnimationMissingError{Object: cam.Name}
	}
	return cam, nil
}

// sampleAnimation walks the selected frames, materializing the camera's pose
// at each one and converting it back to recorder space. Playback position
// and the camera's rotation mode are restored on every exit path.
func sampleAnimation(sc *scene.Scene, cam *scene.Object, opts Options) *clip.Clip {
	frames := selectFrames(sc, cam, opts)
	dir := opts.direction()

	scope := scene.BeginFrameScope(sc, cam)
	defer scope.Restore()

	// Quaternion mode so the rotation channel reads back cleanly.
	cam.RotationMode = scene.RotationModeQuaternion

	out := make([]clip.Frame, 0, len(frames))
	for _, frameNumber := range frames {
		sc.SetFrame(frameNumber)

		t := float64(frameNumber-sc.FrameStart) / sc.FPS
		p, q := xform.ConvertSpace(xform.VecFromArray(cam.Location), cam.Rotation(), dir)
		p = xform.ApplyScale(p, opts.ScaleFactor, true)

		f := clip.Frame{
			T: clip.Round(t, 4),
			Q: [4]float64{
				clip.Round(q.Imag, 6),
				clip.Round(q.Jmag, 6),
				clip.Round(q.Kmag, 6),
				clip.Round(q.Real, 6),
			},
		}
		if opts.ExportPosition {
			f.P = &[3]float64{
				clip.Round(p.X, 6),
				clip.Round(p.Y, 6),
				clip.Round(p.Z, 6),
			}
		}
		out = append(out, f)
	}

	metadata := map[string]any{
		"exportedFrom": "shadow",
		"hostVersion":  version.Version,
		"sourceName":   cam.Name,
		"fps":          sc.FPS,
		"frameRange":   []int{sc.FrameStart, sc.FrameEnd},
	}
	if src := cam.Prop(importer.PropSource); src != nil {
		metadata["originalSource"] = src
	}

	return &clip.Clip{
		Frames:             out,
		ReferenceSpaceType: opts.ReferenceSpaceType,
		Metadata:           metadata,
	}
}

// selectFrames resolves the sampling strategy into concrete frame indices.
func selectFrames(sc *scene.Scene, cam *scene.Object, opts Options) []int {
	switch opts.SampleMode {
	case SampleKeyframes:
		return cam.Action.KeyframeNumbers()
	case SampleCustomRate:
		return frameRange(sc.FrameStart, sc.FrameEnd, opts.CustomSampleRate)
	default:
		return frameRange(sc.FrameStart, sc.FrameEnd, 1)
	}
}

func frameRange(start, end, stride int) []int {
	frames := make([]int, 0, (end-start)/stride+1)
	for f := start; f <= end; f += stride {
		frames = append(frames, f)
	}
	return frames
}
