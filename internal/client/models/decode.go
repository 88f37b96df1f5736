package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// fields is a loosely decoded JSON object. Accessors take several candidate
// keys because the backend is inconsistent about English and Spanish names.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// raw returns the first non-null value among keys.
func (f fields) raw(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

// str returns the first non-empty value among keys as text. Numbers and
// booleans are rendered as written.
func (f fields) str(keys ...string) string {
	for _, k := range keys {
		v, ok := f.raw(k)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		if v[0] != '{' && v[0] != '[' {
			return string(bytes.TrimSpace(v))
		}
	}
	return ""
}

// int returns the first value among keys that reads as an integer, either a
// JSON number (fraction truncated) or a numeric string.
func (f fields) int(keys ...string) int64 {
	for _, k := range keys {
		v, ok := f.raw(k)
		if !ok {
			continue
		}
		if n, ok := parseNumber(v); ok {
			return n
		}
	}
	return 0
}

func (f fields) object(keys ...string) (fields, bool) {
	v, ok := f.raw(keys...)
	if !ok {
		return nil, false
	}
	obj, err := decodeFields(v)
	if err != nil {
		return nil, false
	}
	return obj, true
}

func parseNumber(v json.RawMessage) (int64, bool) {
	var num json.Number
	if err := json.Unmarshal(v, &num); err == nil {
		return numberToInt(string(num))
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return numberToInt(strings.TrimSpace(s))
	}
	return 0, false
}

func numberToInt(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
