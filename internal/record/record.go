package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value.
type Field struct {
	Key   string
	Value any
}

// Fields is an insertion-ordered set of named values. Setting an existing key
// replaces its value in place.
type Fields []Field

// Of builds Fields from alternating key/value arguments.
func Of(kv ...any) Fields {
	out := make(Fields, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		out.Set(key, kv[i+1])
	}
	return out
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Set stores value under key.
func (f *Fields) Set(key string, value any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Merge sets every field of other on f, in other's order.
func (f *Fields) Merge(other Fields) {
	for _, field := range other {
		f.Set(field.Key, field.Value)
	}
}

// Keys returns the keys in order.
func (f Fields) Keys() []string {
	out := make([]string, len(f))
	for i, field := range f {
		out[i] = field.Key
	}
	return out
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	return append(Fields(nil), f...)
}

// MarshalJSON encodes the fields as a JSON object preserving order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", field.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Nested values
// decode as generic JSON values with numbers kept as json.Number.
func (f *Fields) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected object, got %v", token)
	}
	out := Fields{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("fields: expected key, got %v", token)
		}
		var value any
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("fields: decode %s: %w", key, err)
		}
		out.Set(key, normalizeNumber(value))
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// normalizeNumber turns json.Number into int64 when integral, float64 otherwise.
func normalizeNumber(value any) any {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := number.Int64(); err == nil {
		return i
	}
	if v, err := number.Float64(); err == nil {
		return v
	}
	return number.String()
}
