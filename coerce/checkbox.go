package coerce

import "github.com/goliatone/go-vulcanize/form"

// CheckBox coerces input from <input type="checkbox" name="name">. Browsers
// send "on" when the box is checked and omit the key otherwise, so pair it
// with form.Default(false) to read unchecked boxes as false.
var CheckBox form.Coercer = form.CoercerFunc(func(raw any) (any, error) {
	s, err := text(raw)
	if err != nil {
		return nil, err
	}
	if s == "on" {
		return true, nil
	}
	return nil, invalidf("checkbox value %q is not \"on\"", s)
})
