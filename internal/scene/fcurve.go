package scene

import "sort"

// Keyframe interpolation modes and tangent handle types.
const (
	InterpConstant = "CONSTANT"
	InterpLinear   = "LINEAR"
	InterpBezier   = "BEZIER"

	HandleAuto        = "AUTO"
	HandleAutoClamped = "AUTO_CLAMPED"
)

// Keyframe is one (frame, value) pair on a channel. Interpolation governs
// the segment from this key to the next one.
type Keyframe struct {
	Frame         int     `json:"frame"`
	Value         float64 `json:"value"`
	Interpolation string  `json:"interpolation"`
	HandleLeft    string  `json:"handle_left"`
	HandleRight   string  `json:"handle_right"`
}

// FCurve is the keyframe track for one component of an animated channel,
// identified by data path and array index. Keyframes stay sorted by frame.
type FCurve struct {
	DataPath  string     `json:"data_path"`
	Index     int        `json:"index"`
	Keyframes []Keyframe `json:"keyframes"`
}

// insert appends or overwrites the keyframe at the given frame, keeping the
// track ordered.
func (fc *FCurve) insert(frame int, value float64) {
	i := sort.Search(len(fc.Keyframes), func(i int) bool {
		return fc.Keyframes[i].Frame >= frame
	})
	k := Keyframe{
		Frame:         frame,
		Value:         value,
		Interpolation: InterpBezier,
		HandleLeft:    HandleAuto,
		HandleRight:   HandleAuto,
	}
	if i < len(fc.Keyframes) && fc.Keyframes[i].Frame == frame {
		fc.Keyframes[i] = k
		return
	}
	fc.Keyframes = append(fc.Keyframes, Keyframe{})
	copy(fc.Keyframes[i+1:], fc.Keyframes[i:])
	fc.Keyframes[i] = k
}

// Evaluate returns the curve's value at an arbitrary frame. Outside the
// keyed range the first or last value is held. Between keys the left key's
// interpolation mode applies: constant steps, linear lerps, and bezier is
// evaluated as a cubic Hermite with overshoot-clamped tangents, which is the
// behavior auto-clamped handles exist to provide.
func (fc *FCurve) Evaluate(frame float64) float64 {
	ks := fc.Keyframes
	if len(ks) == 0 {
		return 0
	}
	if frame <= float64(ks[0].Frame) {
		return ks[0].Value
	}
	last := len(ks) - 1
	if frame >= float64(ks[last].Frame) {
		return ks[last].Value
	}

	// Find the segment [i, i+1] containing frame.
	i := sort.Search(len(ks), func(i int) bool {
		return float64(ks[i].Frame) > frame
	}) - 1

	k0, k1 := ks[i], ks[i+1]
	f0, f1 := float64(k0.Frame), float64(k1.Frame)
	u := (frame - f0) / (f1 - f0)

	switch k0.Interpolation {
	case InterpConstant:
		return k0.Value
	case InterpLinear:
		return k0.Value + u*(k1.Value-k0.Value)
	default:
		var prev, next *Keyframe
		if i > 0 {
			prev = &ks[i-1]
		}
		if i+2 < len(ks) {
			next = &ks[i+2]
		}
		m0 := clampedTangent(prev, &k0, &k1)
		m1 := clampedTangent(&k0, &k1, next)
		return hermite(u, k0.Value, k1.Value, m0*(f1-f0), m1*(f1-f0))
	}
}

// clampedTangent computes the tangent slope at cur from its neighbors.
// Endpoints and local extrema get a flat tangent; interior tangents use the
// secant through the neighbors, limited so the segment cannot overshoot
// either adjacent key.
func clampedTangent(prev, cur, next *Keyframe) float64 {
	if prev == nil || next == nil {
		return 0
	}
	dl := cur.Value - prev.Value
	dr := next.Value - cur.Value
	if dl*dr <= 0 {
		return 0
	}
	m := (next.Value - prev.Value) / float64(next.Frame-prev.Frame)
	sl := dl / float64(cur.Frame-prev.Frame)
	sr := dr / float64(next.Frame-cur.Frame)
	limit := 3 * min(abs(sl), abs(sr))
	if abs(m) > limit {
		if m < 0 {
			return -limit
		}
		return limit
	}
	return m
}

func hermite(u, v0, v1, t0, t1 float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return (2*u3-3*u2+1)*v0 + (u3-2*u2+u)*t0 + (-2*u3+3*u2)*v1 + (u3-u2)*t1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Action is a named collection of fcurves, one per animated component.
type Action struct {
	Name    string    `json:"name"`
	FCurves []*FCurve `json:"fcurves,omitempty"`
}

// FCurve finds or creates the track for the given data path and index.
func (a *Action) FCurve(path string, index int) *FCurve {
	if fc := a.Lookup(path, index); fc != nil {
		return fc
	}
	fc := &FCurve{DataPath: path, Index: index}
	a.FCurves = append(a.FCurves, fc)
	return fc
}

// Lookup returns the track for the given data path and index, or nil.
func (a *Action) Lookup(path string, index int) *FCurve {
	for _, fc := range a.FCurves {
		if fc.DataPath == path && fc.Index == index {
			return fc
		}
	}
	return nil
}

// HasKeyframes reports whether any track carries at least one keyframe.
func (a *Action) HasKeyframes() bool {
	for _, fc := range a.FCurves {
		if len(fc.Keyframes) > 0 {
			return true
		}
	}
	return false
}

// KeyframeNumbers returns the sorted distinct frame indices present on any
// track of the action.
func (a *Action) KeyframeNumbers() []int {
	seen := make(map[int]bool)
	for _, fc := range a.FCurves {
		for _, k := range fc.Keyframes {
			seen[k.Frame] = true
		}
	}
	frames := make([]int, 0, len(seen))
	for f := range seen {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// SetInterpolation stamps every keyframe on every track with the given
// interpolation mode and tangent handle types.
func (a *Action) SetInterpolation(interp, handleLeft, handleRight string) {
	for _, fc := range a.FCurves {
		for i := range fc.Keyframes {
			fc.Keyframes[i].Interpolation = interp
			fc.Keyframes[i].HandleLeft = handleLeft
			fc.Keyframes[i].HandleRight = handleRight
		}
	}
}
