package common

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Helpers for pulling loosely typed values out of driver records and map
// projections. A missing key and a null value both read as absent.

func Get(record *neo4j.Record, key string) any {
	if record == nil {
		return nil
	}
	v, _ := record.Get(key)
	return v
}

func String(v any) string {
	s, _ := v.(string)
	return s
}

func OptString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// Millis converts an epoch-millisecond value written by timestamp().
func Millis(v any) (time.Time, bool) {
	ms, ok := Int64(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func OptMillis(v any) *time.Time {
	t, ok := Millis(v)
	if !ok {
		return nil
	}
	return &t
}

// Published applies the store rule: anything but an explicit false is
// published.
func Published(v any) bool {
	b, ok := v.(bool)
	return !ok || b
}

func Strings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
