// Package format renders a model.Value as the human readable body of a log
// record.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tinytelemetry/tinylog/internal/model"
)

// Indent is the indentation used for structured values.
const Indent = "    "

// Text renders v. It only fails for structured values that cannot be encoded
// as JSON; the returned text is then empty and the error wraps
// model.ErrEncoding.
func Text(v model.Value) (string, error) {
	switch v.Kind() {
	case model.KindString:
		return v.Str(), nil
	case model.KindInt:
		if u, ok := v.Uint64(); ok {
			return strconv.FormatUint(u, 10), nil
		}
		return strconv.FormatInt(v.Int64(), 10), nil
	case model.KindFloat:
		return strconv.FormatFloat(v.Float64(), 'g', -1, v.FloatBits()), nil
	case model.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case model.KindStructured:
		return JSON(v.Data())
	case model.KindError:
		return errorText(v.ErrorInfo()), nil
	default:
		return "null", nil
	}
}

// JSON pretty-prints data without escaping HTML or non-ASCII characters.
func JSON(data any) (out string, err error) {
	defer func() {
		// Marshalers of user types may panic; treat that as an encoding failure.
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", model.ErrEncoding, r)
		}
	}()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrEncoding, err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func errorText(info model.ErrorInfo) string {
	return fmt.Sprintf("%s in %s at line: %d\n%s", info.Message, info.File, info.Line, info.Stack)
}
