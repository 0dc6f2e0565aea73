package bind

import (
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"
)

// Option configures a single Build call.
type Option[T any] func(*builder[T])

// Validator checks the decoded value. Returning an error fails the validate stage.
type Validator[T any] func(*T) error

// Preprocessor rewrites the attribute map between collect and decode.
type Preprocessor func(map[string]any) (map[string]any, error)

// WithDefaults starts decoding from a deep copy of value instead of the zero
// T. Attributes yielded by the form are decoded on top of it.
func WithDefaults[T any](value T) Option[T] {
	return WithDefaultFunc(func() (T, error) { return value, nil })
}

// WithDefaultFunc is WithDefaults with the value produced on demand. The last
// defaults option wins.
func WithDefaultFunc[T any](fn func() (T, error)) Option[T] {
	return func(b *builder[T]) {
		b.defaults = fn
	}
}

// WithPreprocess appends preprocessors; they run in registration order.
func WithPreprocess[T any](pre ...Preprocessor) Option[T] {
	return func(b *builder[T]) {
		b.preprocessors = append(b.preprocessors, pre...)
	}
}

func WithPreprocessFunc[T any](fn func(map[string]any) (map[string]any, error)) Option[T] {
	if fn == nil {
		return func(*builder[T]) {}
	}
	return WithPreprocess[T](fn)
}

// WithMerge overlays values onto the collected attributes, e.g. to inject a
// user id that never comes from the request. Later maps win.
func WithMerge[T any](sources ...map[string]any) Option[T] {
	return WithPreprocess[T](func(in map[string]any) (map[string]any, error) {
		out := maps.Clone(in)
		if out == nil {
			out = make(map[string]any)
		}
		for _, src := range sources {
			maps.Copy(out, src)
		}
		return out, nil
	})
}

// WithDecoder edits the mapstructure configuration directly. Result and
// DecodeHook are always set by Build.
func WithDecoder[T any](fn func(*mapstructure.DecoderConfig)) Option[T] {
	return func(b *builder[T]) {
		if fn != nil {
			fn(&b.decoderConfig)
		}
	}
}

// WithDecodeHooks adds hooks that run after the default hook set.
func WithDecodeHooks[T any](hooks ...mapstructure.DecodeHookFunc) Option[T] {
	return func(b *builder[T]) {
		for _, hook := range hooks {
			if hook != nil {
				b.decodeHooks = append(b.decodeHooks, hook)
			}
		}
	}
}

// WithStrictKeys fails decoding when an attribute has no matching field.
func WithStrictKeys[T any]() Option[T] {
	return WithDecoder[T](func(c *mapstructure.DecoderConfig) {
		c.ErrorUnused = true
	})
}

// WithWeakTyping turns mapstructure's weak typing on or off. It is on by default.
func WithWeakTyping[T any](enabled bool) Option[T] {
	return WithDecoder[T](func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = enabled
	})
}

// WithTagName reads field names from tag instead of "form".
func WithTagName[T any](tag string) Option[T] {
	return WithDecoder[T](func(c *mapstructure.DecoderConfig) {
		if tag != "" {
			c.TagName = tag
		}
	})
}

// WithValidator sets the validator. A second validator is an option error.
func WithValidator[T any](validator Validator[T]) Option[T] {
	return func(b *builder[T]) {
		switch {
		case validator == nil:
		case b.validator != nil:
			b.setOptionError("validator already registered")
		default:
			b.validator = validator
		}
	}
}

// WithValidatorFunc is WithValidator for validators that take T by value.
func WithValidatorFunc[T any](validator func(T) error) Option[T] {
	if validator == nil {
		return func(*builder[T]) {}
	}
	return WithValidator(func(v *T) error {
		var value T
		if v != nil {
			value = *v
		}
		return validator(value)
	})
}

// WithoutDefaultHooks drops coerce.DefaultDecodeHooks, leaving only hooks
// added with WithDecodeHooks.
func WithoutDefaultHooks[T any]() Option[T] {
	return hookSet[T](false)
}

// WithDefaultHooks restores coerce.DefaultDecodeHooks after WithoutDefaultHooks.
func WithDefaultHooks[T any]() Option[T] {
	return hookSet[T](true)
}

func hookSet[T any](enabled bool) Option[T] {
	return func(b *builder[T]) {
		b.useHookSet = enabled
	}
}

// WithIncludePrivate binds private attributes too. They are still read
// through their accessors.
func WithIncludePrivate[T any]() Option[T] {
	return func(b *builder[T]) {
		b.includePrivate = true
	}
}

// WithOptionError makes Build fail with err wrapped in ErrOption. Helpers
// that assemble options use it to report bad input. Only the first error is kept.
func WithOptionError[T any](err error) Option[T] {
	return func(b *builder[T]) {
		if err != nil && b.optionErr == nil {
			b.optionErr = fmt.Errorf("%w: %w", ErrOption, err)
		}
	}
}
