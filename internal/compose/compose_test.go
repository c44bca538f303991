package compose

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/tinytelemetry/tinylog/internal/model"
)

var fixedTime = time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local)

func TestFileLine(t *testing.T) {
	tests := []struct {
		name string
		rec  model.Record
		want string
	}{
		{
			name: "plain",
			rec:  model.Record{Time: fixedTime, Label: "debug", Body: "Nice text is here"},
			want: "[2024-03-09 07:05:03] debug: Nice text is here\n",
		},
		{
			name: "with caller",
			rec: model.Record{
				Time:   fixedTime,
				Label:  "info",
				Body:   "hi",
				Caller: &model.Caller{File: "/src/app/main.go", Line: 17},
			},
			want: "[2024-03-09 07:05:03] info: hi\n>>> /src/app/main.go on line: 17\n",
		},
		{
			name: "multi-line body",
			rec:  model.Record{Time: fixedTime, Label: "error", Body: "{\n    \"a\": 1\n}"},
			want: "[2024-03-09 07:05:03] error: {\n    \"a\": 1\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileLine(tt.rec); got != tt.want {
				t.Errorf("FileLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallerAt(t *testing.T) {
	_, _, wantLine, _ := runtime.Caller(0)
	c := CallerAt(0) // must stay on the line after runtime.Caller
	if c == nil {
		t.Fatal("CallerAt returned nil")
	}
	if filepath.Base(c.File) != "compose_test.go" {
		t.Errorf("File = %q, want compose_test.go", c.File)
	}
	if c.Line != wantLine+1 {
		t.Errorf("Line = %d, want %d", c.Line, wantLine+1)
	}

	if CallerAt(1 << 20) != nil {
		t.Error("expected nil for an out of range skip")
	}
}

func helperCaller() *model.Caller { return CallerAt(1) }

func TestCallerAtSkipsWrapper(t *testing.T) {
	_, _, wantLine, _ := runtime.Caller(0)
	c := helperCaller()
	if c == nil || c.Line != wantLine+1 {
		t.Fatalf("CallerAt(1) = %+v, want line %d", c, wantLine+1)
	}
}

func TestWebhookPayloadDefault(t *testing.T) {
	rec := model.Record{Time: fixedTime, Label: "error", Body: "This is my error message"}
	got := WebhookPayload(rec, nil)
	want := map[string]any{
		"timestamp": fixedTime.Unix(),
		"message":   "This is my error message",
		"type":      "error",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WebhookPayload() = %v, want %v", got, want)
	}
}

func TestWebhookPayloadTemplate(t *testing.T) {
	rec := model.Record{Time: fixedTime, Label: "error", Body: "This is my error message"}
	template := map[string]any{
		"time":         PlaceholderTimestamp,
		"errorMessage": "Error: " + PlaceholderMessage + "!!!",
		"errorType":    PlaceholderErrorType,
		"token":        12345,
		"meta": map[string]any{
			"at":   "ts=" + PlaceholderTimestamp,
			"tags": []any{PlaceholderErrorType, true},
		},
	}

	got := WebhookPayload(rec, template)
	want := map[string]any{
		"time":         fixedTime.Unix(),
		"errorMessage": "Error: This is my error message!!!",
		"errorType":    "error",
		"token":        12345,
		"meta": map[string]any{
			"at":   fixedTime.Unix(),
			"tags": []any{"error", true},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WebhookPayload() = %#v, want %#v", got, want)
	}

	if template["time"] != PlaceholderTimestamp {
		t.Fatal("template was mutated")
	}
}

func TestWebhookPayloadNoRecursiveSubstitution(t *testing.T) {
	rec := model.Record{Time: fixedTime, Label: "warning", Body: "literal " + PlaceholderErrorType}
	got := WebhookPayload(rec, map[string]any{"m": PlaceholderMessage})
	if got["m"] != "literal "+PlaceholderErrorType {
		t.Fatalf("m = %v", got["m"])
	}
}

type channel string

func TestWebhookPayloadTypedContainers(t *testing.T) {
	rec := model.Record{Time: fixedTime, Label: "alert", Body: "db down"}
	template := map[string]any{
		"labels":  map[string]string{"severity": PlaceholderErrorType, "at": PlaceholderTimestamp},
		"lines":   []string{"msg: " + PlaceholderMessage},
		"nested":  map[string][]string{"tags": {PlaceholderErrorType}},
		"channel": channel(PlaceholderErrorType),
		"raw":     []byte("keep"),
		"ids":     map[int]string{1: PlaceholderMessage},
	}

	got := WebhookPayload(rec, template)
	want := map[string]any{
		"labels":  map[string]any{"severity": "alert", "at": fixedTime.Unix()},
		"lines":   []any{"msg: db down"},
		"nested":  map[string]any{"tags": []any{"alert"}},
		"channel": "alert",
		"raw":     []byte("keep"),
		"ids":     map[int]string{1: PlaceholderMessage},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WebhookPayload() = %#v, want %#v", got, want)
	}
	if template["lines"].([]string)[0] != "msg: "+PlaceholderMessage {
		t.Fatal("template was mutated")
	}
}
