package coerce

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// DefaultDecodeHooks returns the hook set used by Decode and by the bind
// package: durations, comma separated slices, boolean spellings, and
// encoding.TextUnmarshaler targets.
func DefaultDecodeHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		DurationHook(),
		SliceHook(","),
		BoolHook(),
		TextUnmarshalerHook(),
	}
}

// ComposeHooks folds hooks into a single DecodeHookFunc, skipping nils.
func ComposeHooks(hooks ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFunc {
	filtered := make([]mapstructure.DecodeHookFunc, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			filtered = append(filtered, hook)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return mapstructure.ComposeDecodeHookFunc(filtered...)
	}
}

// DurationHook converts strings (e.g., "5s") into time.Duration.
func DurationHook() mapstructure.DecodeHookFunc {
	return mapstructure.StringToTimeDurationHookFunc()
}

// SliceHook splits a string on sep when the target is a slice, so "1,2"
// decodes into []int{1, 2}. Byte slices are left alone.
func SliceHook(sep string) mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		if to.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		if s == "" {
			return []string{}, nil
		}
		return strings.Split(s, sep), nil
	}
}

// BoolHook accepts the spellings Bool understands (yes/no, on/off, ...) for
// bool targets. Weak typing alone only knows strconv.ParseBool.
func BoolHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		s := strings.TrimSpace(reflect.ValueOf(data).String())
		if s == "" {
			return false, nil
		}
		return parseBoolString(s)
	}
}

// TextUnmarshalerHook lets string input populate encoding.TextUnmarshaler
// targets. When the input is itself a string-kinded type with MarshalText,
// its marshalled form is what gets unmarshalled.
func TextUnmarshalerHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		result := reflect.New(to).Interface()
		unmarshaller, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return data, nil
		}
		text, err := textOf(reflect.ValueOf(data))
		if err != nil {
			return nil, err
		}
		if err := unmarshaller.UnmarshalText(text); err != nil {
			return nil, err
		}
		return result, nil
	}
}

func textOf(v reflect.Value) ([]byte, error) {
	if v.Type() != reflect.TypeOf("") {
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			return m.MarshalText()
		}
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		if m, ok := ptr.Interface().(encoding.TextMarshaler); ok {
			return m.MarshalText()
		}
	}
	return []byte(v.String()), nil
}
