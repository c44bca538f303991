package severity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Standard forms
		{"emergency", "emergency"}, {"alert", "alert"}, {"critical", "critical"},
		{"error", "error"}, {"warning", "warning"}, {"notice", "notice"},
		{"info", "info"}, {"debug", "debug"},
		// Aliases
		{"emerg", "emergency"}, {"panic", "emergency"},
		{"crit", "critical"}, {"fatal", "critical"},
		{"err", "error"}, {"warn", "warning"},
		{"information", "info"}, {"informational", "info"},
		{"dbg", "debug"}, {"trace", "debug"},
		// Case and whitespace
		{"WARN", "warning"}, {"  Info\t", "info"},
		// Free text labels survive
		{"audit", "audit"}, {"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, s := range All() {
		if !Known(s) {
			t.Errorf("Known(%q) = false", s)
		}
	}
	if Known("audit") {
		t.Error("Known(audit) = true")
	}
	if len(All()) != 8 {
		t.Errorf("len(All()) = %d, want 8", len(All()))
	}
}
