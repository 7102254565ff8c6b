package announcements

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseBool interprets loosely typed form and JSON values as a boolean.
// bool maps to itself, any number to "nonzero", and a string to true only
// when it reads "true" (any case) or "1". ok is false for null and for any
// other type, leaving the caller to apply its own default.
func ParseBool(v any) (value bool, ok bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case float32:
		return t != 0, true
	case int:
		return t != 0, true
	case int32:
		return t != 0, true
	case int64:
		return t != 0, true
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0, true
	case string:
		return strings.ToLower(t) == "true" || t == "1", true
	default:
		return false, false
	}
}

// falsy mirrors the loose "empty value" test the banner editor relies on:
// null, false, zero and the empty string.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}

// text renders a scalar as the string the column stores. Objects and arrays
// are stored as their JSON encoding.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case nil:
		return ""
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

// nullableText stores null for falsy input.
func nullableText(v any) *string {
	if falsy(v) {
		return nil
	}
	s := text(v)
	return &s
}

// timestampLayouts are the accepted inputs for starts_at/ends_at: RFC 3339 and
// the values an HTML datetime-local control submits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp returns nil for falsy input. Zone-less values are read in
// the server's local time; the result is always in UTC.
func parseTimestamp(v any) (*time.Time, error) {
	if falsy(v) {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, fmt.Errorf("unsupported timestamp value %v", v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised timestamp %q", s)
}
