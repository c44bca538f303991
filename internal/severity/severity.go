// Package severity holds the standard severity vocabulary used by the
// convenience wrappers. Labels are free text; nothing here filters records.
package severity

import "strings"

const (
	Emergency = "emergency"
	Alert     = "alert"
	Critical  = "critical"
	Error     = "error"
	Warning   = "warning"
	Notice    = "notice"
	Info      = "info"
	Debug     = "debug"
)

// All returns the vocabulary from most to least severe.
func All() []string {
	return []string{Emergency, Alert, Critical, Error, Warning, Notice, Info, Debug}
}

// Known reports whether name is one of the standard labels.
func Known(name string) bool {
	for _, s := range All() {
		if s == name {
			return true
		}
	}
	return false
}

// Normalize maps common spellings onto the standard vocabulary. Unrecognized
// input is returned trimmed and lower-cased so it can still be used as a label.
func Normalize(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "emergency", "emerg", "panic":
		return Emergency
	case "alert":
		return Alert
	case "critical", "crit", "fatal":
		return Critical
	case "error", "err":
		return Error
	case "warning", "warn":
		return Warning
	case "notice":
		return Notice
	case "info", "information", "informational":
		return Info
	case "debug", "dbg", "trace":
		return Debug
	default:
		return normalized
	}
}
