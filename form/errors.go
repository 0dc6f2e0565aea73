package form

import (
	"errors"
	"fmt"
)

var (
	// ErrAttributeRequired matches failures where a required attribute has blank input.
	ErrAttributeRequired = errors.New("form: attribute required")
	// ErrCoercion matches failures reported by an attribute's coercer.
	ErrCoercion = errors.New("form: coercion failed")
	// ErrUnknownAttribute is returned when accessing a name the schema does not declare.
	ErrUnknownAttribute = errors.New("form: unknown attribute")
	// ErrTypeMismatch is returned by Value when the coerced value has an unexpected type.
	ErrTypeMismatch = errors.New("form: type mismatch")
	// ErrDeclaration indicates an invalid attribute declaration.
	ErrDeclaration = errors.New("form: invalid declaration")
)

// Kind tags the two failure variants an accessor can report.
type Kind int

const (
	KindRequired Kind = iota + 1
	KindCoercion
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindCoercion:
		return "coercion"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindRequired:
		return ErrAttributeRequired
	case KindCoercion:
		return ErrCoercion
	default:
		return nil
	}
}

// AttributeError describes an accessor failure for a single attribute.
// Only KindCoercion errors are eligible for fallback recovery.
type AttributeError struct {
	Kind      Kind
	Attribute string
	Source    string
	Raw       any
	Err       error
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindRequired:
		if e.Source != "" && e.Source != e.Attribute {
			return fmt.Sprintf("form: attribute %q required (from %q)", e.Attribute, e.Source)
		}
		return fmt.Sprintf("form: attribute %q required", e.Attribute)
	case KindCoercion:
		if e.Err != nil {
			return fmt.Sprintf("form: attribute %q: coercion failed: %v", e.Attribute, e.Err)
		}
		return fmt.Sprintf("form: attribute %q: coercion failed", e.Attribute)
	default:
		return fmt.Sprintf("form: attribute %q: %v", e.Attribute, e.Err)
	}
}

// Unwrap exposes the coercer's error so callers can inspect it with errors.Is/As.
func (e *AttributeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches the kind sentinel or the wrapped error.
func (e *AttributeError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if base := e.Kind.sentinel(); base != nil && base == target {
		return true
	}
	return errors.Is(e.Err, target)
}

// IsRequired reports whether err is a required-attribute failure.
func IsRequired(err error) bool {
	return errors.Is(err, ErrAttributeRequired)
}

// IsCoercion reports whether err is a coercion failure.
func IsCoercion(err error) bool {
	return errors.Is(err, ErrCoercion)
}

func requiredError(attr Attribute) error {
	return &AttributeError{
		Kind:      KindRequired,
		Attribute: attr.Name,
		Source:    attr.source(),
	}
}

func coercionError(attr Attribute, raw any, err error) error {
	return &AttributeError{
		Kind:      KindCoercion,
		Attribute: attr.Name,
		Source:    attr.source(),
		Raw:       raw,
		Err:       err,
	}
}
