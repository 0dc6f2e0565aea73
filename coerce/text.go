package coerce

import (
	"encoding"

	"github.com/goliatone/go-vulcanize/form"
)

// Text coerces through T's encoding.TextUnmarshaler implementation, where
// *T implements UnmarshalText (for example net/netip.Addr or a custom enum).
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() form.Coercer {
	return form.CoercerFunc(func(raw any) (any, error) {
		if v, ok := raw.(T); ok {
			return v, nil
		}
		s, err := text(raw)
		if err != nil {
			return nil, err
		}
		var out T
		if err := PT(&out).UnmarshalText([]byte(s)); err != nil {
			return nil, invalidf("%q: %v", s, err)
		}
		return out, nil
	})
}
