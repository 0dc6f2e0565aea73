package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-vulcanize/form"
)

// ErrInvalid is wrapped by every failure reported by the coercers in this package.
var ErrInvalid = errors.New("coerce: invalid value")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// text extracts the string form of a raw input value. Single element slices
// are unwrapped since url.Values style input often carries them.
func text(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case []string:
		if len(v) != 1 {
			return "", invalidf("expected a single value, got %d", len(v))
		}
		return v[0], nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), nil
	default:
		return "", invalidf("unsupported input type %T", raw)
	}
}

// String returns the raw value as a string.
var String form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	return text(raw)
})

// Trimmed returns the raw value with surrounding whitespace removed. A value
// that is only whitespace is rejected.
var Trimmed form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, invalidf("value is only whitespace")
	}
	return s, nil
})

// Int parses a base 10 integer.
var Int form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	if n, ok := raw.(int); ok {
		return n, nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidf("%q is not an integer", s)
	}
	return n, nil
})

// Float parses a 64 bit floating point number.
var Float form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	if f, ok := raw.(float64); ok {
		return f, nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, invalidf("%q is not a number", s)
	}
	return f, nil
})

// Bool accepts the usual boolean spellings (1/0, t/f, true/false, y/n, yes/no, on/off).
var Bool form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	b, err := parseBoolString(s)
	if err != nil {
		return nil, invalidf("%q is not a boolean", s)
	}
	return b, nil
})

// Duration parses values such as "90s" or "1h30m".
var Duration form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	if d, ok := raw.(time.Duration); ok {
		return d, nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidf("%q is not a duration", s)
	}
	return d, nil
})

// Time parses values using layout, e.g. time.DateOnly for <input type="date">.
func Time(layout string) form.Coercer {
	return form.CoercerFunc(func(raw any) (any, error) {
		if t, ok := raw.(time.Time); ok {
			return t, nil
		}
		s, err := text(raw)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			return nil, invalidf("%q does not match layout %q", s, layout)
		}
		return t, nil
	})
}

// OneOf accepts only the listed values, e.g. the options of a <select>.
func OneOf(values ...string) form.Coercer {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return form.CoercerFunc(func(raw any) (any, error) {
		s, err := text(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := allowed[s]; !ok {
			return nil, invalidf("%q is not one of %v", s, values)
		}
		return s, nil
	})
}

// List applies elem to every value of a multi-value input, e.g. a group of
// checkboxes sharing a name. A single string is treated as a one element list.
func List(elem form.Coercer) form.Coercer {
	return form.CoercerFunc(func(raw any) (any, error) {
		var items []any
		switch v := raw.(type) {
		case []string:
			for _, s := range v {
				items = append(items, s)
			}
		case []any:
			items = v
		default:
			items = []any{raw}
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			value, err := elem.Coerce(item)
			if err != nil {
				return nil, fmt.Errorf("%w: item %d: %w", ErrInvalid, i, err)
			}
			out = append(out, value)
		}
		return out, nil
	})
}

func parseBoolString(val string) (bool, error) {
	val = strings.TrimSpace(strings.ToLower(val))
	switch val {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return strconv.ParseBool(val)
	}
}
