package batch

// Document is a decoded JSON object with defaulted field access.
// The upload schema is not enforced; every accessor returns its
// default when the key is absent or has the wrong type.
type Document map[string]any

func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d Document) String(key, def string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return def
}

// Int reads a numeric field. JSON numbers decode as float64.
func (d Document) Int(key string, def int) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func (d Document) Float(key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Array returns the field as a slice, or nil when absent.
func (d Document) Array(key string) []any {
	if v, ok := d[key].([]any); ok {
		return v
	}
	return nil
}

// Object returns a nested object, or nil when the field is absent
// or not an object.
func (d Document) Object(key string) Document {
	if v, ok := d[key].(map[string]any); ok {
		return Document(v)
	}
	return nil
}

// Strings returns the field as a string slice, skipping non-string
// elements.
func (d Document) Strings(key string) []string {
	arr := d.Array(key)
	if arr == nil {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
