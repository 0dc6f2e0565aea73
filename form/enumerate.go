package form

import "iter"

// Pair is one enumerated attribute and its coerced value.
type Pair struct {
	Name  string
	Value any
}

// Each calls fn for every public attribute in declaration order. The first
// accessor failure or non-nil error from fn stops the walk and is returned.
func (f *Form) Each(fn func(name string, value any) error) error {
	for _, attr := range f.public() {
		value, err := f.access(attr, nil)
		if err != nil {
			return err
		}
		if fn == nil {
			continue
		}
		if err := fn(attr.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// All is a range-over-func view of the public attributes. It stops silently
// on the first accessor failure; use Each or Enumerate to observe the error.
func (f *Form) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, attr := range f.public() {
			value, err := f.access(attr, nil)
			if err != nil {
				return
			}
			if !yield(attr.Name, value) {
				return
			}
		}
	}
}

// Map collects the public attributes keyed by name.
func (f *Form) Map() (map[string]any, error) {
	out := make(map[string]any)
	err := f.Each(func(name string, value any) error {
		out[name] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Enumerate returns a lazy sequence over the public attributes. Values are
// coerced as the enumerator advances, and separate enumerators never share
// position.
func (f *Form) Enumerate() *Enumerator {
	return &Enumerator{
		form:  f,
		attrs: f.public(),
	}
}

func (f *Form) public() []Attribute {
	if f.schema == nil {
		return nil
	}
	out := make([]Attribute, 0, len(f.schema.attrs))
	for _, attr := range f.schema.attrs {
		if attr.IsPublic() {
			out = append(out, attr)
		}
	}
	return out
}

// Enumerator walks a form's public attributes one pull at a time.
//
//	e := f.Enumerate()
//	for e.Next() {
//		p := e.Pair()
//	}
//	if err := e.Err(); err != nil { ... }
type Enumerator struct {
	form  *Form
	attrs []Attribute
	pos   int
	cur   Pair
	err   error
}

// Next advances to the next public attribute, coercing it. It returns false
// once the sequence is exhausted or an accessor failed.
func (e *Enumerator) Next() bool {
	if e.err != nil || e.pos >= len(e.attrs) {
		return false
	}
	attr := e.attrs[e.pos]
	e.pos++
	value, err := e.form.access(attr, nil)
	if err != nil {
		e.err = err
		e.cur = Pair{}
		return false
	}
	e.cur = Pair{Name: attr.Name, Value: value}
	return true
}

// Pair is the attribute produced by the latest successful Next.
func (e *Enumerator) Pair() Pair {
	return e.cur
}

// Err is the accessor failure that stopped the enumerator, if any.
func (e *Enumerator) Err() error {
	return e.err
}

// Reset rewinds the enumerator to the first public attribute.
func (e *Enumerator) Reset() {
	e.pos = 0
	e.cur = Pair{}
	e.err = nil
}

// Count is the number of pairs a full walk yields. It does not coerce.
func (e *Enumerator) Count() int {
	return len(e.attrs)
}

// Collect rewinds and walks the whole sequence.
func (e *Enumerator) Collect() ([]Pair, error) {
	e.Reset()
	pairs := make([]Pair, 0, len(e.attrs))
	for e.Next() {
		pairs = append(pairs, e.Pair())
	}
	if err := e.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
