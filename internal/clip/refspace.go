package clip

// WebXR reference space type names carried in clip metadata.
const (
	LocalFloor   = "local-floor"
	Local        = "local"
	BoundedFloor = "bounded-floor"
	Unbounded    = "unbounded"
	Viewer       = "viewer"
)

// DefaultReferenceSpace is used when the exporter is not told otherwise.
const DefaultReferenceSpace = LocalFloor

// ReferenceSpaces contains all valid reference space type values.
var ReferenceSpaces = []string{LocalFloor, Local, BoundedFloor, Unbounded, Viewer}

// IsValidReferenceSpace checks if the given name is a known reference space.
func IsValidReferenceSpace(name string) bool {
	for _, s := range ReferenceSpaces {
		if name == s {
			return true
		}
	}
	return false
}
