package compose

import (
	"reflect"
	"strings"

	"github.com/tinytelemetry/tinylog/internal/model"
)

// WebhookPayload builds the JSON document for the webhook. Without a template
// it is {"timestamp", "message", "type"}. With one, the template is copied and
// every string in it has the placeholders substituted. A string holding the
// timestamp placeholder is replaced as a whole by the numeric epoch so the
// field stays a number.
func WebhookPayload(rec model.Record, template map[string]any) map[string]any {
	epoch := rec.Time.Unix()
	if template == nil {
		return map[string]any{
			"timestamp": epoch,
			"message":   rec.Body,
			"type":      rec.Label,
		}
	}

	r := strings.NewReplacer(
		PlaceholderMessage, rec.Body,
		PlaceholderErrorType, rec.Label,
	)
	out, _ := substitute(template, r, epoch).(map[string]any)
	return out
}

func substitute(v any, r *strings.Replacer, epoch int64) any {
	switch t := v.(type) {
	case string:
		if strings.Contains(t, PlaceholderTimestamp) {
			return epoch
		}
		return r.Replace(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = substitute(val, r, epoch)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = substitute(val, r, epoch)
		}
		return out
	case nil:
		return nil
	}
	return substituteReflect(reflect.ValueOf(v), r, epoch)
}

// substituteReflect handles typed containers such as map[string]string or
// []string and named string types. Byte slices and maps with non-string keys
// are left alone.
func substituteReflect(rv reflect.Value, r *strings.Replacer, epoch int64) any {
	switch rv.Kind() {
	case reflect.String:
		return substitute(rv.String(), r, epoch)
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return rv.Interface()
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = substitute(iter.Value().Interface(), r, epoch)
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 || (rv.Kind() == reflect.Slice && rv.IsNil()) {
			return rv.Interface()
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = substitute(rv.Index(i).Interface(), r, epoch)
		}
		return out
	default:
		return rv.Interface()
	}
}
