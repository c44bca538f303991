// Package tinylog appends human readable records to a text file and can
// notify a webhook about each of them.
//
// Any value can be logged: strings are written as is, numbers and booleans in
// their usual text form, nil as "null", errors with their origin and stack,
// and everything else as indented JSON. Each record is one line,
//
//	[2024-03-09 07:05:03] debug: Nice text is here
//
// optionally followed by the location of the logging call when the "pos" flag
// is given:
//
//	log.Write("Nice text is here", "pos|debug")
package tinylog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tinytelemetry/tinylog/internal/compose"
	"github.com/tinytelemetry/tinylog/internal/format"
	"github.com/tinytelemetry/tinylog/internal/logfile"
	"github.com/tinytelemetry/tinylog/internal/model"
	"github.com/tinytelemetry/tinylog/internal/options"
	"github.com/tinytelemetry/tinylog/internal/webhook"
)

// Errors returned by Write and friends. Match them with errors.Is.
var (
	ErrConfiguration = model.ErrConfiguration
	ErrEncoding      = model.ErrEncoding
	ErrIO            = model.ErrIO
)

// Placeholders substituted in custom webhook templates.
const (
	PlaceholderMessage   = compose.PlaceholderMessage
	PlaceholderTimestamp = compose.PlaceholderTimestamp
	PlaceholderErrorType = compose.PlaceholderErrorType
)

// entryDepth is the number of frames between write and the user's call:
// write itself and one public entry point.
const entryDepth = 2

// Recorder observes write outcomes, e.g. for metrics.
type Recorder = model.Recorder

// Config holds the initial logger configuration. Everything can be changed
// later through the Logger methods.
type Config struct {
	// Path is the destination file. Its directory must exist.
	Path string
	// WebhookURL enables notifications when set.
	WebhookURL string
	// WebhookTemplate replaces the default notification body when set.
	WebhookTemplate map[string]any
	// WebhookTimeout bounds each notification; zero uses the webhook default.
	WebhookTimeout time.Duration
	// HTTPClient is optional; defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Now is optional; defaults to time.Now.
	Now func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithLogger sets the logger used for diagnostics such as webhook failures.
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithRecorder sets the observer of write outcomes.
func WithRecorder(r Recorder) Option {
	return func(l *Logger) {
		if r != nil {
			l.recorder = r
		}
	}
}

// Logger writes records to its configured file. It is safe to reconfigure a
// Logger while other goroutines write through it; the file itself is not
// locked, so concurrent appends are only as atomic as the OS makes them.
type Logger struct {
	mu       sync.RWMutex
	path     string
	hook     *webhook.Client
	template map[string]any

	httpClient     *http.Client
	webhookTimeout time.Duration
	now            func() time.Time
	log            *slog.Logger
	recorder       Recorder
}

// New returns a Logger for cfg.
func New(cfg Config, opts ...Option) *Logger {
	l := &Logger{
		path:           cfg.Path,
		httpClient:     cfg.HTTPClient,
		webhookTimeout: cfg.WebhookTimeout,
		now:            cfg.Now,
		log:            slog.Default(),
		recorder:       model.NopRecorder{},
	}
	if l.now == nil {
		l.now = time.Now
	}
	for _, opt := range opts {
		opt(l)
	}
	if cfg.WebhookURL != "" {
		l.EnableWebhook(cfg.WebhookURL, cfg.WebhookTemplate)
	}
	return l
}

// SetPath sets the destination file. With args, path is a fmt template:
//
//	l.SetPath("%s/storage/logs/app.log", "/var/www/html")
//
// The file is created on the first write; directories never are.
func (l *Logger) SetPath(path string, args ...any) *Logger {
	if len(args) > 0 {
		path = fmt.Sprintf(path, args...)
	}
	l.mu.Lock()
	l.path = path
	l.mu.Unlock()
	return l
}

// Path returns the destination file, empty when unset.
func (l *Logger) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// EnableWebhook posts every record to url. A non-nil template replaces the
// default {"timestamp", "message", "type"} body; see the Placeholder constants.
func (l *Logger) EnableWebhook(url string, template map[string]any) {
	hook := webhook.NewClient(webhook.Config{
		URL:        url,
		HTTPClient: l.httpClient,
		Timeout:    l.webhookTimeout,
	})
	l.mu.Lock()
	l.hook = hook
	l.template = template
	l.mu.Unlock()
}

// DisableWebhook stops notifications.
func (l *Logger) DisableWebhook() {
	l.mu.Lock()
	l.hook = nil
	l.template = nil
	l.mu.Unlock()
}

// WebhookEnabled reports whether notifications are sent.
func (l *Logger) WebhookEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hook != nil
}

// Write logs value. The optional option strings are joined with "|" and
// default to "error"; e.g. Write(v, "pos|info") or Write(v, "pos", "info").
//
// The record is appended to the file first. A webhook failure is logged and
// never returned.
func (l *Logger) Write(value any, opts ...string) error {
	return l.write(context.Background(), "", value, optionString(opts))
}

// WriteContext is Write with a context for the webhook request.
func (l *Logger) WriteContext(ctx context.Context, value any, opts ...string) error {
	return l.write(ctx, "", value, optionString(opts))
}

// WriteTo is Write with a destination file overriding the configured one for
// this call only.
func (l *Logger) WriteTo(path string, value any, opts ...string) error {
	return l.write(context.Background(), path, value, optionString(opts))
}

func optionString(opts []string) string {
	if len(opts) == 0 {
		return model.DefaultOptions
	}
	return strings.Join(opts, options.Separator)
}

func (l *Logger) write(ctx context.Context, path string, value any, optionInput string) error {
	v := model.ValueOf(value, entryDepth)
	body, err := format.Text(v)
	if err != nil {
		l.log.WarnContext(ctx, "tinylog: logging empty body", "kind", v.Kind().String(), "error", err)
	}

	parsed := options.Parse(optionInput)
	rec := model.Record{
		Time:  l.now(),
		Label: parsed.Label,
		Body:  body,
	}
	if parsed.Has(model.FlagPos) {
		rec.Caller = compose.CallerAt(entryDepth)
	}

	l.mu.RLock()
	if path == "" {
		path = l.path
	}
	hook, template := l.hook, l.template
	l.mu.RUnlock()

	if path == "" {
		l.recorder.RecordWriteError()
		return ErrConfiguration
	}

	fileErr := logfile.Append(path, compose.FileLine(rec))
	if fileErr != nil {
		l.recorder.RecordWriteError()
	} else {
		l.recorder.RecordWritten(rec.Label)
	}

	if hook != nil {
		if err := hook.Post(ctx, compose.WebhookPayload(rec, template)); err != nil {
			l.recorder.RecordWebhookFailure()
			l.log.WarnContext(ctx, "tinylog: webhook notification failed",
				slog.String("url", hook.URL()),
				slog.String("error", err.Error()),
			)
		}
	}

	return fileErr
}
