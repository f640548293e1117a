package biovalidator

// SchemaRelease identifies a release of the biomedical metadata schema.
type SchemaRelease string

// Supported schema releases.
const (
	// V1 is the initial structured-record schema release.
	V1 SchemaRelease = "v1.0"
)

// String returns the release string.
func (r SchemaRelease) String() string {
	return string(r)
}

// IsValid returns true if this is a supported schema release.
func (r SchemaRelease) IsValid() bool {
	switch r {
	case V1:
		return true
	default:
		return false
	}
}
