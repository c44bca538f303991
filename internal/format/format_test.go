package format

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/tinytelemetry/tinylog/internal/model"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		want  string
	}{
		{"string", model.String("Nice text is here"), "Nice text is here"},
		{"empty string", model.String(""), ""},
		{"int", model.Int(42), "42"},
		{"negative int", model.Int(-7), "-7"},
		{"uint", model.Uint(math.MaxUint64), "18446744073709551615"},
		{"float", model.Float(1.5), "1.5"},
		{"whole float", model.Float(3), "3"},
		{"tiny float", model.Float(0.00001), "1e-05"},
		{"float32", model.Float32(0.1), "0.1"},
		{"float32 whole", model.Float32(1e6), "1e+06"},
		{"float32 via ValueOf", model.ValueOf(float32(2.2), 0), "2.2"},
		{"true", model.Bool(true), "true"},
		{"false", model.Bool(false), "false"},
		{"null", model.Null(), "null"},
		{"zero value", model.Value{}, "null"},
		{"map", model.Structured(map[string]string{"hello": "world"}), "{\n    \"hello\": \"world\"\n}"},
		{"slice", model.Structured([]int{1, 2}), "[\n    1,\n    2\n]"},
		{"unicode kept literal", model.Structured(map[string]string{"k": "привет <b>"}), "{\n    \"k\": \"привет <b>\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.value)
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextStructuredRoundTrip(t *testing.T) {
	in := map[string]any{"hello": "world", "nested": map[string]any{"n": float64(1)}}
	got, err := Text(model.Structured(in))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	var back map[string]any
	if err := json.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("unmarshal %q: %v", got, err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Fatalf("round trip = %v, want %v", back, in)
	}
}

func TestTextEncodingFailure(t *testing.T) {
	got, err := Text(model.Structured(map[string]any{"ch": make(chan int)}))
	if !errors.Is(err, model.ErrEncoding) {
		t.Fatalf("error = %v, want ErrEncoding", err)
	}
	if got != "" {
		t.Fatalf("Text() = %q, want empty", got)
	}

	got, err = Text(model.Structured(math.NaN()))
	if !errors.Is(err, model.ErrEncoding) || got != "" {
		t.Fatalf("NaN: got %q, %v", got, err)
	}
}

type panicky struct{}

func (panicky) MarshalJSON() ([]byte, error) { panic("boom") }

func TestTextRecoversFromMarshalerPanic(t *testing.T) {
	got, err := Text(model.Structured(panicky{}))
	if !errors.Is(err, model.ErrEncoding) || got != "" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestTextError(t *testing.T) {
	info := model.ErrorInfo{
		Message: "This is an exception",
		File:    "/srv/app/main.go",
		Line:    12,
		Stack:   "main.main\n\t/srv/app/main.go:12",
	}
	got, err := Text(model.Error(info))
	if err != nil {
		t.Fatal(err)
	}
	want := "This is an exception in /srv/app/main.go at line: 12\nmain.main\n\t/srv/app/main.go:12"
	if got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestTextCapturedErrors(t *testing.T) {
	plain := model.ValueOf(errors.New("This is an error"), 0)
	got, err := Text(plain)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "This is an error in ") || !strings.Contains(got, "format_test.go at line: ") {
		t.Errorf("plain error text = %q", got)
	}

	stacked := model.ValueOf(pkgerrors.Wrap(pkgerrors.New("root cause"), "wrapped"), 0)
	got, err = Text(stacked)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "wrapped: root cause in ") {
		t.Errorf("stacked error text = %q", got)
	}
	if !strings.Contains(got, "TestTextCapturedErrors") {
		t.Errorf("stack trace missing test frame: %q", got)
	}
}
