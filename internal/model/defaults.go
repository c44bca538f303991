package model

// Shared defaults used by the library, the CLI and the HTTP API.
const (
	DefaultOptions = "error"
	DefaultLabel   = "error"

	// FlagPos appends the caller location to the file record.
	FlagPos = "pos"

	// DateLayout is the bracketed timestamp layout of the file record.
	DateLayout = "2006-01-02 15:04:05"
)

// RecognizedFlags lists option tokens that toggle behaviour instead of naming
// the severity label.
var RecognizedFlags = []string{FlagPos}

// IsFlag reports whether token is a recognized flag.
func IsFlag(token string) bool {
	for _, f := range RecognizedFlags {
		if f == token {
			return true
		}
	}
	return false
}
