package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimeLayout is the wire format of updated_time, e.g.
// "Mon, 01 Jan 2024 00:00:00 GMT". Values are always rendered in UTC.
const TimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatTime renders t with TimeLayout, or nil for the zero time.
func FormatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts TimeLayout and falls back to RFC 3339.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q is neither %q nor RFC 3339", s, TimeLayout)
	}
	return t.UTC(), nil
}

type fields map[string]any

func (f fields) lookup(prefix, key string) (any, error) {
	v, ok := f[key]
	if !ok {
		return nil, missingKeyError(prefix, key)
	}
	return v, nil
}

func (f fields) optionalString(prefix, key string) (*string, error) {
	v, err := f.lookup(prefix, key)
	if err != nil || v == nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalidAttributeError(key, fmt.Errorf("expected string, got %s", describe(v)))
	}
	return &s, nil
}

func (f fields) optionalInt(prefix, key string) (*int64, error) {
	v, err := f.lookup(prefix, key)
	if err != nil || v == nil {
		return nil, err
	}
	n, err := toInt64(v)
	if err != nil {
		return nil, invalidAttributeError(key, err)
	}
	return &n, nil
}

func (f fields) requiredString(prefix, key string) (string, error) {
	s, err := f.optionalString(prefix, key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", invalidAttributeError(key, fmt.Errorf("%s must not be null", key))
	}
	return *s, nil
}

func (f fields) requiredInt(prefix, key string) (int64, error) {
	n, err := f.optionalInt(prefix, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, invalidAttributeError(key, fmt.Errorf("%s must not be null", key))
	}
	return *n, nil
}

func (f fields) optionalTime(prefix, key string) (time.Time, error) {
	v, err := f.lookup(prefix, key)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		parsed, err := ParseTime(t)
		if err != nil {
			return time.Time{}, invalidAttributeError(key, err)
		}
		return parsed, nil
	default:
		return time.Time{}, invalidAttributeError(key, fmt.Errorf("expected string, got %s", describe(v)))
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || n >= 1<<63 || n < -(1<<63) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %s", describe(v))
	}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
