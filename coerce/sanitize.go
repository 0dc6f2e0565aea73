package coerce

import (
	"strings"
	"sync"

	"github.com/goliatone/go-vulcanize/form"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Sanitized strips all markup from free text input. Input that is empty once
// sanitized is rejected.
var Sanitized form.Coercer = Sanitize(nil)

// Sanitize builds a coercer that cleans input with policy. A nil policy
// strips every tag.
func Sanitize(policy *bluemonday.Policy) form.Coercer {
	return form.CoercerFunc(func(raw any) (any, error) {
		s, err := text(raw)
		if err != nil {
			return nil, err
		}
		p := policy
		if p == nil {
			p = strictSanitizer()
		}
		cleaned := strings.TrimSpace(p.Sanitize(s))
		if cleaned == "" {
			return nil, invalidf("value is empty once sanitized")
		}
		return cleaned, nil
	})
}
