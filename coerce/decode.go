package coerce

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goliatone/go-vulcanize/form"
)

// DecodeOption adjusts the mapstructure configuration used by Decode.
type DecodeOption func(*mapstructure.DecoderConfig)

// WithDecodeHooks replaces the default hook set.
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) DecodeOption {
	return func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = ComposeHooks(hooks...)
	}
}

// WithStrictTyping disables weakly typed input, so "1" no longer decodes into an int.
func WithStrictTyping() DecodeOption {
	return func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = false
	}
}

// WithTagName sets the struct tag read when T is a struct. Defaults to "form".
func WithTagName(tag string) DecodeOption {
	return func(c *mapstructure.DecoderConfig) {
		if tag != "" {
			c.TagName = tag
		}
	}
}

// Decode builds a coercer that converts raw input into T with mapstructure,
// covering slices ("a,b,c" into []string), durations, TextUnmarshaler types,
// and map shaped input into structs.
func Decode[T any](opts ...DecodeOption) form.Coercer {
	return form.CoercerFunc(func(raw any) (any, error) {
		var out T
		conf := mapstructure.DecoderConfig{
			TagName:          "form",
			WeaklyTypedInput: true,
			DecodeHook:       ComposeHooks(DefaultDecodeHooks()...),
		}
		for _, opt := range opts {
			if opt != nil {
				opt(&conf)
			}
		}
		conf.Result = &out
		decoder, err := mapstructure.NewDecoder(&conf)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, invalidf("cannot decode %T into %s: %v", raw, reflect.TypeOf(&out).Elem(), err)
		}
		return out, nil
	})
}
