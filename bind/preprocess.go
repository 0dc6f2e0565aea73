package bind

import (
	"fmt"
	"reflect"
)

// EvalFuncs replaces zero-argument function values with their results, so
// merged values can be computed at bind time:
//
//	bind.WithMerge[Order](map[string]any{"placed_at": time.Now})
//
// Functions may return (value) or (value, error). Nested maps and slices are
// walked; other functions are left untouched.
func EvalFuncs() Preprocessor {
	return func(in map[string]any) (map[string]any, error) {
		out := make(map[string]any, len(in))
		for key, value := range in {
			evaluated, err := evalValue(value)
			if err != nil {
				return nil, fmt.Errorf("bind: evaluate %q: %w", key, err)
			}
			out[key] = evaluated
		}
		return out, nil
	}
}

// WithEvalFuncs registers EvalFuncs as a preprocessor. Order matters: add it
// after WithMerge to evaluate merged functions.
func WithEvalFuncs[T any]() Option[T] {
	return WithPreprocess[T](EvalFuncs())
}

func evalValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return EvalFuncs()(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			evaluated, err := evalValue(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = evaluated
		}
		return out, nil
	}

	fn := reflect.ValueOf(value)
	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 0 || fn.IsNil() {
		return value, nil
	}
	return call(fn)
}

func call(fn reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("function panicked: %v", r)
		}
	}()

	outputs := fn.Call(nil)
	switch len(outputs) {
	case 1:
		return outputs[0].Interface(), nil
	case 2:
		if e, ok := outputs[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return outputs[0].Interface(), nil
	default:
		return fn.Interface(), nil
	}
}
