package clip

// ParseError reports JSON text that could not be decoded at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "malformed animation JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports structurally valid JSON that is not a usable clip,
// such as a missing or empty frames array.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return e.Reason }
