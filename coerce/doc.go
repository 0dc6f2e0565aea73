// Package coerce provides ready made form.Coercer implementations for the
// values HTML forms and query strings usually carry.
//
// Every failure wraps ErrInvalid. Coercers only see non-blank input: the form
// package resolves missing and empty values to defaults before calling them.
//
// Catalog:
//   - Scalars: String, Trimmed, Int, Float, Bool, Duration, Time(layout).
//   - Form controls: CheckBox ("on" is true), OneOf(values...), List(elem).
//   - Identifiers and text: UUID, Sanitized, Sanitize(policy).
//   - Generic: Text[T] for encoding.TextUnmarshaler types, Decode[T] via mapstructure.
//   - Registry maps names to coercers for data driven schemas.
package coerce
