package model

import (
	"sort"
	"time"
)

// Options is the parsed form of an option string such as "pos|info".
type Options struct {
	// Label is the severity label printed in the record, "error" by default.
	Label string
	flags map[string]struct{}
}

// NewOptions builds Options with the given label and flags. An empty label
// falls back to DefaultLabel.
func NewOptions(label string, flags ...string) Options {
	if label == "" {
		label = DefaultLabel
	}
	o := Options{Label: label}
	for _, f := range flags {
		if o.flags == nil {
			o.flags = make(map[string]struct{}, len(flags))
		}
		o.flags[f] = struct{}{}
	}
	return o
}

// Has reports whether flag was present in the option string.
func (o Options) Has(flag string) bool {
	_, ok := o.flags[flag]
	return ok
}

// Flags returns the set flags in sorted order.
func (o Options) Flags() []string {
	out := make([]string, 0, len(o.flags))
	for f := range o.flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Caller is the source location of a logging call.
type Caller struct {
	File string
	Line int
}

// Record is one composed log entry, built per call and discarded afterwards.
type Record struct {
	Time   time.Time
	Label  string
	Body   string
	Caller *Caller // nil unless the pos flag was given
}
