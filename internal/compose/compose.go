// Package compose assembles records into the text appended to the log file
// and into the JSON document posted to the webhook.
package compose

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/tinytelemetry/tinylog/internal/model"
)

// Placeholders recognized in custom webhook templates.
const (
	PlaceholderMessage   = "{{->message<-}}"
	PlaceholderTimestamp = "{{->timestamp<-}}"
	PlaceholderErrorType = "{{->errorType<-}}"
)

// FileLine renders rec as "[YYYY-MM-DD HH:MM:SS] label: body\n", followed by
// the trace line when rec has a caller.
func FileLine(rec model.Record) string {
	var b strings.Builder
	b.WriteString(DateBlock(rec))
	b.WriteByte(' ')
	b.WriteString(rec.Label)
	b.WriteString(": ")
	b.WriteString(rec.Body)
	b.WriteByte('\n')
	if rec.Caller != nil {
		b.WriteString(TraceLine(*rec.Caller))
	}
	return b.String()
}

// DateBlock returns the bracketed local timestamp of rec.
func DateBlock(rec model.Record) string {
	return "[" + rec.Time.Format(model.DateLayout) + "]"
}

// TraceLine renders the caller location line.
func TraceLine(c model.Caller) string {
	return fmt.Sprintf(">>> %s on line: %d\n", c.File, c.Line)
}

// CallerAt returns the location skip frames above the caller of CallerAt;
// skip 0 is the function calling CallerAt.
func CallerAt(skip int) *model.Caller {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	return &model.Caller{File: file, Line: line}
}
