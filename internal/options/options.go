// Package options parses the compact option string that selects the severity
// label and behaviour flags of a logging call, e.g. "pos|info".
package options

import (
	"strings"

	"github.com/tinytelemetry/tinylog/internal/model"
)

// Separator splits tokens in an option string.
const Separator = "|"

// Parse splits input on "|". Recognized flags are collected; every other
// non-empty token replaces the label, so the last one wins. Without a label
// the result carries model.DefaultLabel.
func Parse(input string) model.Options {
	var (
		label string
		flags []string
	)
	for _, token := range strings.Split(input, Separator) {
		if model.IsFlag(token) {
			flags = append(flags, token)
			continue
		}
		if token == "" {
			continue
		}
		label = token
	}
	return model.NewOptions(label, flags...)
}

// Join renders a label and flags back into option-string form.
func Join(label string, flags ...string) string {
	tokens := make([]string, 0, len(flags)+1)
	tokens = append(tokens, flags...)
	if label != "" {
		tokens = append(tokens, label)
	}
	return strings.Join(tokens, Separator)
}
