package summary

import (
	"bytes"
	"encoding/json"
)

// Stored blobs have drifted over time, so every read here is lenient: a
// value of the wrong JSON type yields the field's default instead of an
// error.

type object map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeObject returns nil unless raw is a JSON object.
func decodeObject(raw []byte) object {
	if isNull(raw) {
		return nil
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// has reports whether key is present with a non-null value.
func (o object) has(key string) bool {
	raw, ok := o[key]
	return ok && !isNull(raw)
}

func (o object) str(key string) string {
	s, _ := decodeString(o[key])
	return s
}

// strPtr is nil when key is absent or null, mirroring a nullish fallback.
func (o object) strPtr(key string) *string {
	if !o.has(key) {
		return nil
	}
	s, ok := decodeString(o[key])
	if !ok {
		return nil
	}
	return &s
}

func (o object) obj(key string) object {
	return decodeObject(o[key])
}

// decodeString accepts JSON strings and numbers.
func decodeString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// decodeStrictString only accepts JSON strings.
func decodeStrictString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeArray returns the raw elements, or nil, false when raw is not an array.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// decodeList decodes an array element by element. Elements that do not fit
// T still occupy a slot as T's zero value so list length is preserved.
func decodeList[T any](raw json.RawMessage) []T {
	elems, ok := decodeArray(raw)
	out := make([]T, 0, len(elems))
	if !ok {
		return out
	}
	for _, elem := range elems {
		var v T
		// A type mismatch in one field still keeps the fields that decoded.
		_ = json.Unmarshal(elem, &v)
		out = append(out, v)
	}
	return out
}

func decodeStringList(raw json.RawMessage) []string {
	elems, ok := decodeArray(raw)
	out := make([]string, 0, len(elems))
	if !ok {
		return out
	}
	for _, elem := range elems {
		s, _ := decodeString(elem)
		out = append(out, s)
	}
	return out
}

// decodeStringMap keeps only string values.
func decodeStringMap(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	obj := decodeObject(raw)
	for k, v := range obj {
		if s, ok := decodeStrictString(v); ok {
			out[k] = s
		}
	}
	return out
}

// decodeScalarMap keeps string values and numbers, the latter as their
// literal text.
func decodeScalarMap(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	for k, v := range decodeObject(raw) {
		if s, ok := decodeString(v); ok {
			out[k] = s
		}
	}
	return out
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
