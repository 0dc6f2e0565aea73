package form

import "fmt"

// Coercer converts a raw, non-blank input value into a typed value. A returned
// error is reported to callers as a coercion failure.
type Coercer interface {
	Coerce(raw any) (any, error)
}

// CoercerFunc adapts a plain function into a Coercer.
type CoercerFunc func(raw any) (any, error)

// Coerce implements Coercer.
func (fn CoercerFunc) Coerce(raw any) (any, error) {
	return fn(raw)
}

// Visibility controls whether an attribute shows up during enumeration.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

func (v Visibility) String() string {
	if v == VisibilityPrivate {
		return "private"
	}
	return "public"
}

// Attribute is a single named declaration on a Schema.
type Attribute struct {
	Name       string
	Type       Coercer
	Required   bool
	Default    any
	From       string
	Visibility Visibility
}

// AttrOption tweaks an Attribute while it is being declared.
type AttrOption func(*Attribute)

// Attr declares an attribute named name coerced by typ.
func Attr(name string, typ Coercer, opts ...AttrOption) Attribute {
	attr := Attribute{
		Name: name,
		Type: typ,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&attr)
	}
	return attr
}

// Required makes blank input fail instead of falling back to the default.
func Required() AttrOption {
	return func(a *Attribute) {
		a.Required = true
	}
}

// Default sets the value returned, uncoerced, for blank non-required input.
func Default(value any) AttrOption {
	return func(a *Attribute) {
		a.Default = value
	}
}

// From reads the raw value from key instead of the attribute name.
func From(key string) AttrOption {
	return func(a *Attribute) {
		a.From = key
	}
}

// Private hides the attribute from enumeration. It stays accessible by name.
func Private() AttrOption {
	return Visible(VisibilityPrivate)
}

// Visible sets the attribute visibility explicitly.
func Visible(v Visibility) AttrOption {
	return func(a *Attribute) {
		a.Visibility = v
	}
}

// IsPublic reports whether the attribute is included in enumeration.
func (a Attribute) IsPublic() bool {
	return a.Visibility != VisibilityPrivate
}

func (a Attribute) source() string {
	if a.From != "" {
		return a.From
	}
	return a.Name
}

// Source returns the input key the attribute reads from.
func (a Attribute) Source() string {
	return a.source()
}

func (a Attribute) validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: attribute name cannot be empty", ErrDeclaration)
	}
	if a.Type == nil {
		return fmt.Errorf("%w: attribute %q has no coercer", ErrDeclaration, a.Name)
	}
	switch a.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		return fmt.Errorf("%w: attribute %q has unknown visibility %d", ErrDeclaration, a.Name, a.Visibility)
	}
	return nil
}
