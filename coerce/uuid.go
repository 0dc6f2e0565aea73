package coerce

import (
	"strings"

	"github.com/goliatone/go-vulcanize/form"
	"github.com/google/uuid"
)

// UUID parses an RFC 4122 identifier into a uuid.UUID.
var UUID form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	if id, ok := raw.(uuid.UUID); ok {
		return id, nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, invalidf("%q is not a uuid: %v", s, err)
	}
	return id, nil
})
