package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// DateLayout is the wire format for all entity dates.
const DateLayout = "2006-01-02"

// Record is an entity as returned by the remote service, plus the linkage
// metadata a generator attaches for downstream stages (parent identifiers,
// type discriminators, anchor dates). Records round-trip through JSON
// checkpoints, so numeric values may surface as float64 or json.Number.
type Record map[string]any

// Int64 returns the named field as an int64, tolerating the numeric types
// JSON decoding produces. Missing or non-numeric fields return 0.
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Float returns the named field as a float64, or 0 when absent.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// String returns the named field as a string, or "" when absent.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Date parses the named field as a DateLayout date. The zero time is
// returned for missing or malformed values.
func (r Record) Date(key string) time.Time {
	s := r.String(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Has reports whether the named field is present and non-nil.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
