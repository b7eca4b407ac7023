package validate

import (
	"net/url"
	"testing"
)

func TestObject(t *testing.T) {
	m, err := Object(map[string]interface{}{"a": 1})
	if err != nil {
		t.Fatalf("Expected object to be accepted, got error: %v", err)
	}
	if len(m) != 1 {
		t.Errorf("Expected 1 key, got %d", len(m))
	}

	if _, err := Object([]interface{}{"a"}); err == nil {
		t.Error("Expected error for JSON array body")
	}
	if _, err := Object("text"); err == nil {
		t.Error("Expected error for JSON string body")
	}
	if _, err := Object(nil); err == nil {
		t.Error("Expected error for JSON null body")
	}
}

func TestUnknownKeysReportedSorted(t *testing.T) {
	allowed := map[string]bool{"title": true}
	body := map[string]interface{}{"zz": 1, "aa": 2, "title": "ok"}

	err := UnknownKeys(body, allowed)
	if err == nil {
		t.Fatal("Expected error for unknown keys")
	}
	if err.Error() != "Unexpected fields: aa, zz." {
		t.Errorf("Expected sorted unknown keys message, got: %s", err.Error())
	}

	if err := UnknownKeys(map[string]interface{}{"title": "ok"}, allowed); err != nil {
		t.Errorf("Expected no error for allowed keys, got: %v", err)
	}
}

func TestRequiredString(t *testing.T) {
	m := map[string]interface{}{"ok": "  value  ", "blank": "   ", "num": float64(3)}

	value, err := RequiredString(m, "ok")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if value != "value" {
		t.Errorf("Expected trimmed 'value', got '%s'", value)
	}

	if _, err := RequiredString(m, "missing"); err == nil || err.Error() != `Field "missing" must be a string.` {
		t.Errorf("Expected string type error for missing field, got: %v", err)
	}
	if _, err := RequiredString(m, "num"); err == nil || err.Error() != `Field "num" must be a string.` {
		t.Errorf("Expected string type error for number, got: %v", err)
	}
	if _, err := RequiredString(m, "blank"); err == nil || err.Error() != `Field "blank" must be a non-empty string.` {
		t.Errorf("Expected non-empty error for whitespace, got: %v", err)
	}
}

func TestOptionalString(t *testing.T) {
	m := map[string]interface{}{
		"set":   " trimmed ",
		"null":  nil,
		"blank": "",
		"num":   float64(7),
	}

	value, present, err := OptionalString(m, "absent")
	if err != nil || present || value != nil {
		t.Errorf("Expected absent field to yield (nil, false, nil), got (%v, %v, %v)", value, present, err)
	}

	value, present, err = OptionalString(m, "null")
	if err != nil || !present || value != nil {
		t.Errorf("Expected explicit null to yield (nil, true, nil), got (%v, %v, %v)", value, present, err)
	}

	value, present, err = OptionalString(m, "set")
	if err != nil || !present {
		t.Fatalf("Unexpected result for set field: (%v, %v, %v)", value, present, err)
	}
	if *value != "trimmed" {
		t.Errorf("Expected trimmed value, got '%s'", *value)
	}

	if _, _, err := OptionalString(m, "blank"); err == nil {
		t.Error("Expected error for empty string")
	}
	if _, _, err := OptionalString(m, "num"); err == nil {
		t.Error("Expected error for non-string type")
	}
}

func TestOptionalBool(t *testing.T) {
	m := map[string]interface{}{"flag": true, "notflag": "true"}

	value, err := OptionalBool(m, "absent")
	if err != nil || value != nil {
		t.Errorf("Expected absent field to yield (nil, nil), got (%v, %v)", value, err)
	}

	value, err = OptionalBool(m, "flag")
	if err != nil || value == nil || !*value {
		t.Errorf("Expected true, got (%v, %v)", value, err)
	}

	if _, err := OptionalBool(m, "notflag"); err == nil {
		t.Error("Expected error for string posing as boolean")
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("Expected canonical UUID to be accepted")
	}
	if !IsUUID("550E8400-E29B-41D4-A716-446655440000") {
		t.Error("Expected uppercase UUID to be accepted")
	}
	if IsUUID("not-a-uuid") {
		t.Error("Expected 'not-a-uuid' to be rejected")
	}
	// Version nibble outside 1-5
	if IsUUID("550e8400-e29b-61d4-a716-446655440000") {
		t.Error("Expected version-6 UUID to be rejected")
	}
	// Variant nibble outside 8,9,a,b
	if IsUUID("550e8400-e29b-41d4-c716-446655440000") {
		t.Error("Expected invalid variant nibble to be rejected")
	}
	if IsUUID("550e8400e29b41d4a716446655440000") {
		t.Error("Expected undashed UUID to be rejected")
	}
}

func TestOptionalUUID(t *testing.T) {
	m := map[string]interface{}{
		"good": "550e8400-e29b-41d4-a716-446655440000",
		"bad":  "nope",
		"null": nil,
	}

	value, err := OptionalUUID(m, "absent")
	if err != nil || value != nil {
		t.Errorf("Expected absent field to yield (nil, nil), got (%v, %v)", value, err)
	}

	value, err = OptionalUUID(m, "good")
	if err != nil || value == nil {
		t.Fatalf("Unexpected result for valid UUID: (%v, %v)", value, err)
	}

	if _, err := OptionalUUID(m, "bad"); err == nil {
		t.Error("Expected error for malformed UUID")
	}
	// Explicit null is not a valid UUID; presence requires a string.
	if _, err := OptionalUUID(m, "null"); err == nil {
		t.Error("Expected error for explicit null UUID")
	}
}

func TestRequiredObject(t *testing.T) {
	m := map[string]interface{}{
		"obj":  map[string]interface{}{"a": float64(1)},
		"list": []interface{}{1, 2},
	}

	obj, err := RequiredObject(m, "obj")
	if err != nil || obj == nil {
		t.Fatalf("Unexpected result for object field: (%v, %v)", obj, err)
	}

	if _, err := RequiredObject(m, "list"); err == nil {
		t.Error("Expected error for array value")
	}
	if _, err := RequiredObject(m, "absent"); err == nil {
		t.Error("Expected error for missing object field")
	}
}

func TestQueryParam(t *testing.T) {
	q := url.Values{}
	q.Set("theme", "  stoicism  ")
	q.Set("blank", "   ")

	value, err := QueryParam(q, "theme")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if value != "stoicism" {
		t.Errorf("Expected trimmed 'stoicism', got '%s'", value)
	}

	value, err = QueryParam(q, "absent")
	if err != nil || value != "" {
		t.Errorf("Expected absent param to yield empty value, got ('%s', %v)", value, err)
	}

	if _, err := QueryParam(q, "blank"); err == nil {
		t.Error("Expected error for blank query parameter")
	}
}

func TestEnum(t *testing.T) {
	allowed := []string{"draft", "active", "archived"}

	if err := Enum("status", "draft", allowed); err != nil {
		t.Errorf("Expected 'draft' to be accepted, got: %v", err)
	}

	err := Enum("status", "published", allowed)
	if err == nil {
		t.Fatal("Expected error for unrecognized enum value")
	}
	if err.Error() != `Query "status" must be one of: draft, active, archived.` {
		t.Errorf("Unexpected enum error message: %s", err.Error())
	}
}
