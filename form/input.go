package form

import (
	"net/http"
	"net/url"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Input is the raw key/value mapping a Form reads from. Values are usually
// strings, []string, or nil.
type Input map[string]any

// FromValues converts url.Values into an Input. Keys with a single value map
// to that string; keys with several values keep the slice.
func FromValues(values url.Values) Input {
	in := make(Input, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			in[key] = nil
		case 1:
			in[key] = vals[0]
		default:
			cp := make([]string, len(vals))
			copy(cp, vals)
			in[key] = cp
		}
	}
	return in
}

// FromRequest parses the query string and body of r into an Input.
func FromRequest(r *http.Request) (Input, error) {
	if r == nil {
		return Input{}, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return FromValues(r.Form), nil
}

// Clone returns a deep copy of the input.
func (in Input) Clone() (Input, error) {
	if in == nil {
		return Input{}, nil
	}
	cloned, err := copystructure.Copy(map[string]any(in))
	if err != nil {
		return nil, err
	}
	return Input(cloned.(map[string]any)), nil
}

func (in Input) shallowCopy() Input {
	out := make(Input, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// IsBlank reports whether raw counts as missing input: nil, an empty string,
// an empty slice, or a nil pointer.
func IsBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []byte:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	val := reflect.ValueOf(raw)
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return val.IsNil()
	}
	return false
}
