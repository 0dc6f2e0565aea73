package form

import "fmt"

// Fallback recovers from a coercion failure. It receives the raw input and
// the coercer's error and supplies the accessor's result.
type Fallback func(raw any, err error) (any, error)

// Form wraps one raw input mapping with the schema that interprets it.
// It never mutates the input or the schema.
type Form struct {
	schema *Schema
	input  Input
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *Schema {
	return f.schema
}

// Input returns a copy of the raw input.
func (f *Form) Input() Input {
	return f.input.shallowCopy()
}

// Lookup returns the raw input value backing the attribute name.
func (f *Form) Lookup(name string) (any, bool) {
	attr, ok := f.schema.Attribute(name)
	if !ok {
		return nil, false
	}
	raw, ok := f.input[attr.source()]
	return raw, ok
}

// Present reports whether the attribute has non-blank raw input.
func (f *Form) Present(name string) bool {
	raw, _ := f.Lookup(name)
	return !IsBlank(raw)
}

// Get coerces the attribute name. Blank input yields the declared default, or
// a required failure when the attribute is required. A coercion failure is
// handed to the first fallback when one is supplied; required failures never are.
func (f *Form) Get(name string, fallback ...Fallback) (any, error) {
	attr, ok := f.schema.Attribute(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return f.access(attr, firstFallback(fallback))
}

func (f *Form) access(attr Attribute, fallback Fallback) (any, error) {
	raw := f.input[attr.source()]

	if IsBlank(raw) {
		if attr.Required {
			return nil, requiredError(attr)
		}
		return attr.Default, nil
	}

	value, err := attr.Type.Coerce(raw)
	if err == nil {
		return value, nil
	}
	if fallback != nil {
		return fallback(raw, err)
	}
	return nil, coercionError(attr, raw, err)
}

func firstFallback(fallbacks []Fallback) Fallback {
	for _, fb := range fallbacks {
		if fb != nil {
			return fb
		}
	}
	return nil
}

// Valid accesses every declared attribute, public and private, and reports
// whether all of them succeed.
func (f *Form) Valid() bool {
	return f.Validate() == nil
}

// Validate is Valid returning the first failure instead of a boolean.
func (f *Form) Validate() error {
	if f.schema == nil {
		return nil
	}
	for _, attr := range f.schema.attrs {
		if _, err := f.access(attr, nil); err != nil {
			return err
		}
	}
	return nil
}

// Value is Get with the result asserted to T. A nil result (for example a nil
// default) yields the zero T.
func Value[T any](f *Form, name string, fallback ...Fallback) (T, error) {
	var zero T
	raw, err := f.Get(name, fallback...)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: attribute %q is %T, not %T", ErrTypeMismatch, name, raw, zero)
	}
	return typed, nil
}

// MustValue is Value that panics on error.
func MustValue[T any](f *Form, name string, fallback ...Fallback) T {
	v, err := Value[T](f, name, fallback...)
	if err != nil {
		panic(err)
	}
	return v
}
