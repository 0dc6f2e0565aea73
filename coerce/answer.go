package coerce

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/copystructure"

	"github.com/goliatone/go-vulcanize/form"
)

func init() {
	copystructure.Copiers[reflect.TypeOf(Answer{})] = func(v any) (any, error) {
		return v.(Answer), nil
	}
}

// Answer is the value of a yes/no question that may be left unanswered,
// e.g. a pair of radio buttons with neither selected. The zero value is
// unanswered.
type Answer struct {
	answered bool
	yes      bool
}

// Yes returns an answered Answer.
func Yes(v bool) Answer {
	return Answer{answered: true, yes: v}
}

// Answered reports whether a value was submitted.
func (a Answer) Answered() bool {
	return a.answered
}

// Bool returns the answer, false when unanswered.
func (a Answer) Bool() bool {
	return a.yes
}

// Or returns the answer, or def when unanswered.
func (a Answer) Or(def bool) bool {
	if !a.answered {
		return def
	}
	return a.yes
}

func (a Answer) String() string {
	if !a.answered {
		return "unanswered"
	}
	return strconv.FormatBool(a.yes)
}

func (a Answer) MarshalText() ([]byte, error) {
	if !a.answered {
		return []byte{}, nil
	}
	return []byte(strconv.FormatBool(a.yes)), nil
}

// UnmarshalText accepts the spellings Bool does. Blank text means unanswered.
func (a *Answer) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*a = Answer{}
		return nil
	}
	b, err := parseBoolString(s)
	if err != nil {
		return invalidf("%q is not a yes/no answer", s)
	}
	*a = Yes(b)
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.answered {
		return []byte("null"), nil
	}
	return json.Marshal(a.yes)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Answer{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = Yes(b)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return invalidf("unsupported answer payload %s", data)
	}
	return a.UnmarshalText([]byte(str))
}

// YesNo coerces input into an answered Answer.
var YesNo form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	switch v := raw.(type) {
	case Answer:
		return v, nil
	case bool:
		return Yes(v), nil
	}
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	var a Answer
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	if !a.answered {
		return nil, invalidf("value is only whitespace")
	}
	return a, nil
})
