package scene

// FrameScope captures the mutable playback state a pipeline is about to
// touch (the scene's current frame and one object's rotation mode) so it
// can be restored on every exit path. Callers pair BeginFrameScope with a
// deferred Restore.
type FrameScope struct {
	scene        *Scene
	obj          *Object
	frame        int
	rotationMode string
	restored     bool
}

// BeginFrameScope records the current frame and the object's rotation mode.
// obj may be nil when only the playback position needs protecting.
func BeginFrameScope(s *Scene, obj *Object) *FrameScope {
	fs := &FrameScope{scene: s, obj: obj, frame: s.FrameCurrent}
	if obj != nil {
		fs.rotationMode = obj.RotationMode
	}
	return fs
}

// Restore puts the captured state back. It is idempotent, so it is safe to
// both defer it and call it early.
func (fs *FrameScope) Restore() {
	if fs.restored {
		return
	}
	fs.restored = true
	fs.scene.SetFrame(fs.frame)
	if fs.obj != nil {
		fs.obj.RotationMode = fs.rotationMode
	}
}
