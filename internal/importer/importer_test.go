package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameskane05/shadow/internal/pipeline"
	"github.com/jameskane05/shadow/internal/scene"
)

const twoFrameClip = `{
	"frames": [
		{"t": 0, "q": [0, 0, 0, 1], "p": [0, 0, 0]},
		{"t": 1, "q": [0, 0, 0, 1], "p": [1, 0, 0]}
	],
	"referenceSpaceType": "local-floor"
}`

func TestRunKeepCoordinates(t *testing.T) {
	sc := scene.New()
	opts := DefaultOptions()
	opts.CoordinateSystem = CoordWebXR // no conversion

	res, err := Run(sc, []byte(twoFrameClip), "walk.json", opts)
	require.NoError(t, err)
	require.Equal(t, pipeline.StatusFinished, res.Status)
	assert.Contains(t, res.Message, "2 frames")

	cam := sc.Camera()
	require.NotNil(t, cam, "import should create and designate a camera")
	assert.Equal(t, "WebXR_Camera", cam.Name)
	assert.True(t, cam.Selected)
	assert.Equal(t, scene.RotationModeQuaternion, cam.RotationMode)

	// Scene timing: duration 1s at 30fps.
	assert.Equal(t, 1, sc.FrameStart)
	assert.Equal(t, 30, sc.FrameEnd)
	assert.Equal(t, 30.0, sc.FPS)

	// Exactly two keyframes, at frames 1 and 31, positions untouched.
	require.NotNil(t, cam.Action)
	assert.Equal(t, "WebXR_Anim_walk", cam.Action.Name)
	assert.Equal(t, []int{1, 31}, cam.Action.KeyframeNumbers())

	x := cam.Action.Lookup(scene.PathLocation, 0)
	require.NotNil(t, x)
	require.Len(t, x.Keyframes, 2)
	assert.Equal(t, 0.0, x.Keyframes[0].Value)
	assert.Equal(t, 1.0, x.Keyframes[1].Value)

	// Rotation channel stays identity (w,x,y,z).
	w := cam.Action.Lookup(scene.PathRotationQuaternion, 0)
	require.NotNil(t, w)
	assert.Equal(t, 1.0, w.Keyframes[0].Value)

	// Every keyframe smoothed with clamped handles.
	for _, fc := range cam.Action.FCurves {
		for _, k := range fc.Keyframes {
			assert.Equal(t, scene.InterpBezier, k.Interpolation)
			assert.Equal(t, scene.HandleAutoClamped, k.HandleLeft)
			assert.Equal(t, scene.HandleAutoClamped, k.HandleRight)
		}
	}

	// Playback reset and provenance recorded.
	assert.Equal(t, 1, sc.FrameCurrent)
	assert.Equal(t, "walk.json", cam.Prop(PropSource))
	assert.Equal(t, 1.0, cam.Prop(PropDuration))
	assert.Equal(t, 2, cam.Prop(PropFrameCount))
	assert.Equal(t, "local-floor", cam.Prop(PropReferenceSpace))
}

func TestRunConvertsAxes(t *testing.T) {
	data := `{"frames": [
		{"t": 0, "q": [0, 0, 0, 1], "p": [1, 0, 0]},
		{"t": 0.5, "q": [0, 0, 0, 1], "p": [0, 1, 0]}
	]}`
	sc := scene.New()
	res, err := Run(sc, []byte(data), "axes.json", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, pipeline.StatusFinished, res.Status)

	cam := sc.Camera()
	require.NotNil(t, cam)

	// X is unaffected by the Y/Z swap; WebXR up (+Y) becomes host up (+Z).
	x := cam.Action.Lookup(scene.PathLocation, 0)
	y := cam.Action.Lookup(scene.PathLocation, 1)
	z := cam.Action.Lookup(scene.PathLocation, 2)
	assert.Equal(t, 1.0, x.Keyframes[0].Value)
	assert.Equal(t, 0.0, y.Keyframes[0].Value)
	assert.Equal(t, 0.0, z.Keyframes[0].Value)
	assert.Equal(t, 0.0, x.Keyframes[1].Value)
	assert.Equal(t, 0.0, y.Keyframes[1].Value)
	assert.Equal(t, 1.0, z.Keyframes[1].Value)
}

func TestRunScaleFactor(t *testing.T) {
	sc := scene.New()
	opts := DefaultOptions()
	opts.CoordinateSystem = CoordWebXR
	opts.ScaleFactor = 10

	_, err := Run(sc, []byte(twoFrameClip), "walk.json", opts)
	require.NoError(t, err)

	x := sc.Camera().Action.Lookup(scene.PathLocation, 0)
	assert.Equal(t, 10.0, x.Keyframes[1].Value)
}

func TestRunApplyDeltas(t *testing.T) {
	data := `{"frames": [
		{"t": 0, "q": [0, 0, 0, 1], "p": [5, 0, 0]},
		{"t": 1, "q": [0, 0, 0, 1], "p": [6, 0, 0]}
	]}`
	sc := scene.New()
	cam := sc.AddCamera("Existing")
	cam.Location = [3]float64{100, 0, 0}
	cam.RotationMode = scene.RotationModeQuaternion
	cam.RotationQuaternion = [4]float64{1, 0, 0, 0}
	sc.ActiveCamera = cam.Name

	opts := DefaultOptions()
	opts.CoordinateSystem = CoordWebXR // keep axes so the deltas stay on X
	opts.UseExistingCamera = true
	opts.ApplyDeltas = true

	_, err := Run(sc, []byte(data), "deltas.json", opts)
	require.NoError(t, err)

	// First frame lands on the camera's starting pose; the second moved by
	// the recorded delta of one meter.
	x := cam.Action.Lookup(scene.PathLocation, 0)
	require.Len(t, x.Keyframes, 2)
	assert.InDelta(t, 100.0, x.Keyframes[0].Value, 1e-9)
	assert.InDelta(t, 101.0, x.Keyframes[1].Value, 1e-9)
}

func TestRunCancelledOutcomes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed JSON", `{"frames": [`},
		{"missing frames", `{"metadata": {}}`},
		{"empty frames", `{"frames": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New()
			res, err := Run(sc, []byte(tt.data), "bad.json", DefaultOptions())
			require.NoError(t, err, "pipeline failures must cancel, not error")
			assert.Equal(t, pipeline.StatusCancelled, res.Status)
			assert.Contains(t, res.Message, "Import failed")
			assert.Empty(t, sc.Objects, "no camera should be created for a bad clip")
		})
	}
}

func TestRunTargetUnavailable(t *testing.T) {
	sc := scene.New()
	cam := sc.AddCamera("Cam")
	sc.ActiveCamera = cam.Name

	opts := DefaultOptions()
	opts.CreateCamera = false
	opts.UseExistingCamera = false

	res, err := Run(sc, []byte(twoFrameClip), "walk.json", opts)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusCancelled, res.Status)
}

func TestRunClearsExistingAnimation(t *testing.T) {
	sc := scene.New()
	cam := sc.AddCamera("Cam")
	sc.ActiveCamera = cam.Name
	old := cam.NewAction("old")
	old.FCurve(scene.PathLocation, 0)

	opts := DefaultOptions()
	opts.UseExistingCamera = true

	_, err := Run(sc, []byte(twoFrameClip), "walk.json", opts)
	require.NoError(t, err)
	assert.NotEqual(t, "old", cam.Action.Name)
}

func TestRunInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero scale", func(o *Options) { o.ScaleFactor = 0 }},
		{"negative scale", func(o *Options) { o.ScaleFactor = -1 }},
		{"huge scale", func(o *Options) { o.ScaleFactor = 2000 }},
		{"bad coords", func(o *Options) { o.CoordinateSystem = "BLENDER" }},
		{"zero fps", func(o *Options) { o.FrameRate = 0 }},
		{"excessive fps", func(o *Options) { o.FrameRate = 500 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := Run(scene.New(), []byte(twoFrameClip), "walk.json", opts)
			assert.Error(t, err)
		})
	}
}

func TestSingleFrameClipClampsRange(t *testing.T) {
	data := `{"frames": [{"t": 0, "q": [0, 0, 0, 1]}]}`
	sc := scene.New()
	res, err := Run(sc, []byte(data), "single.json", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, pipeline.StatusFinished, res.Status)
	assert.Equal(t, 1, sc.FrameStart)
	assert.Equal(t, 1, sc.FrameEnd)

	// Missing position defaults to the origin.
	x := sc.Camera().Action.Lookup(scene.PathLocation, 0)
	assert.Equal(t, 0.0, x.Keyframes[0].Value)
}
