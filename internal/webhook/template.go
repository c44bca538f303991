package webhook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTemplate reads a custom payload template from a YAML file. JSON files
// are accepted as well since JSON is a subset of YAML.
func LoadTemplate(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("webhook: read template: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a template document. The top level must be a mapping.
func ParseTemplate(data []byte) (map[string]any, error) {
	var tmpl map[string]any
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("webhook: parse template: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("webhook: template is empty")
	}
	return normalize(tmpl).(map[string]any), nil
}

// normalize converts the map[any]any values yaml produces for non-string
// keys into map[string]any so the payload stays JSON encodable.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
