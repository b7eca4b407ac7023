// Package validate checks decoded JSON request bodies and query parameters
// against per-endpoint field rules. All functions are pure; the first
// failing field wins and its message is returned verbatim to the client.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Canonical 8-4-4-4-12 form, version nibble 1-5, variant nibble 8/9/a/b.
var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsUUID reports whether s is a canonically formatted UUID (case-insensitive).
func IsUUID(s string) bool {
	return uuidPattern.MatchString(strings.ToLower(s))
}

// Object asserts that a decoded JSON value is a plain key-value object.
func Object(v interface{}) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("Body must be a JSON object.")
	}
	return m, nil
}

// UnknownKeys rejects any key outside the allow-list, reporting all
// offending keys sorted in a single message.
func UnknownKeys(m map[string]interface{}, allowed map[string]bool) error {
	var unknown []string
	for key := range m {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("Unexpected fields: %s.", strings.Join(unknown, ", "))
	}
	return nil
}

// RequiredString returns the trimmed value of a mandatory string field.
func RequiredString(m map[string]interface{}, field string) (string, error) {
	s, ok := m[field].(string)
	if !ok {
		return "", fmt.Errorf("Field %q must be a string.", field)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Field %q must be a non-empty string.", field)
	}
	return trimmed, nil
}

// OptionalString handles a field that may be absent (nil, false), explicitly
// null (nil, true) or a non-empty string (trimmed value, true). Empty or
// whitespace-only strings and non-string types are errors.
func OptionalString(m map[string]interface{}, field string) (*string, bool, error) {
	v, present := m[field]
	if !present {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, true, fmt.Errorf("Field %q must be a string.", field)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, true, fmt.Errorf("Field %q must be a non-empty string.", field)
	}
	return &trimmed, true, nil
}

// OptionalBool returns the value of a field that must be strictly boolean
// when present, or nil when absent.
func OptionalBool(m map[string]interface{}, field string) (*bool, error) {
	v, present := m[field]
	if !present {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("Field %q must be a boolean.", field)
	}
	return &b, nil
}

// OptionalUUID returns the value of a field that must be a UUID string when
// present, or nil when absent.
func OptionalUUID(m map[string]interface{}, field string) (*string, error) {
	v, present := m[field]
	if !present {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok || !IsUUID(s) {
		return nil, fmt.Errorf("Field %q must be a UUID.", field)
	}
	return &s, nil
}

// RequiredObject returns a field that must be a plain JSON object.
func RequiredObject(m map[string]interface{}, field string) (map[string]interface{}, error) {
	obj, ok := m[field].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("Field %q must be a JSON object.", field)
	}
	return obj, nil
}

// QueryParam returns the trimmed value of an optional query parameter.
// An unset parameter yields an empty string; a set-but-blank parameter is
// an error, mirroring the body rules for optional strings.
func QueryParam(q url.Values, name string) (string, error) {
	values, ok := q[name]
	if !ok || len(values) == 0 {
		return "", nil
	}
	trimmed := strings.TrimSpace(values[0])
	if trimmed == "" {
		return "", fmt.Errorf("Query %q must be a non-empty string.", name)
	}
	return trimmed, nil
}

// Enum checks membership of a query value in a fixed allowed set.
func Enum(name, value string, allowed []string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("Query %q must be one of: %s.", name, strings.Join(allowed, ", "))
}
