package options

import (
	"reflect"
	"testing"

	"github.com/tinytelemetry/tinylog/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input     string
		wantLabel string
		wantFlags []string
	}{
		{"error", "error", []string{}},
		{"debug", "debug", []string{}},
		{"pos|debug", "debug", []string{"pos"}},
		{"debug|pos", "debug", []string{"pos"}},
		{"pos", "error", []string{"pos"}},
		{"pos|pos", "error", []string{"pos"}},
		{"", "error", []string{}},
		{"|", "error", []string{}},
		{"info|warning", "warning", []string{}},
		{"garbage|pos|other", "other", []string{"pos"}},
		{"POS", "POS", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Label != tt.wantLabel {
				t.Errorf("Parse(%q).Label = %q, want %q", tt.input, got.Label, tt.wantLabel)
			}
			if flags := got.Flags(); !reflect.DeepEqual(flags, tt.wantFlags) {
				t.Errorf("Parse(%q).Flags() = %v, want %v", tt.input, flags, tt.wantFlags)
			}
		})
	}
}

func TestParseHas(t *testing.T) {
	opts := Parse("pos|debug")
	if !opts.Has(model.FlagPos) {
		t.Fatal("expected pos flag")
	}
	if opts.Has("debug") {
		t.Fatal("label must not be reported as a flag")
	}
	if Parse("debug").Has(model.FlagPos) {
		t.Fatal("unexpected pos flag")
	}
}

func TestJoin(t *testing.T) {
	if got := Join("info", model.FlagPos); got != "pos|info" {
		t.Fatalf("Join = %q, want pos|info", got)
	}
	if got := Join(""); got != "" {
		t.Fatalf("Join empty = %q", got)
	}
	opts := Parse(Join("notice", model.FlagPos))
	if opts.Label != "notice" || !opts.Has(model.FlagPos) {
		t.Fatalf("round trip lost data: %+v", opts)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("pos|info")
	f.Add("")
	f.Add("||pos||")

	f.Fuzz(func(t *testing.T, input string) {
		opts := Parse(input)
		if opts.Label == "" {
			t.Fatalf("Parse(%q) produced empty label", input)
		}
		if model.IsFlag(opts.Label) {
			t.Fatalf("Parse(%q) used flag %q as label", input, opts.Label)
		}
	})
}
