package form

// Schema is an immutable, ordered set of attribute declarations shared by
// every Form built from it. Build one with NewSchema and derive variants
// with Extend.
type Schema struct {
	attrs []Attribute
	index map[string]int
}

// NewSchema declares attrs in order. Redeclaring a name replaces the earlier
// declaration but keeps its original position.
func NewSchema(attrs ...Attribute) (*Schema, error) {
	s := &Schema{
		index: make(map[string]int, len(attrs)),
	}
	if err := s.declare(attrs...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSchema is NewSchema that panics on invalid declarations.
func MustSchema(attrs ...Attribute) *Schema {
	s, err := NewSchema(attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend returns a new schema holding the receiver's declarations followed by
// attrs. The receiver is not modified.
func (s *Schema) Extend(attrs ...Attribute) (*Schema, error) {
	next := s.clone()
	if err := next.declare(attrs...); err != nil {
		return nil, err
	}
	return next, nil
}

// MustExtend is Extend that panics on invalid declarations.
func (s *Schema) MustExtend(attrs ...Attribute) *Schema {
	next, err := s.Extend(attrs...)
	if err != nil {
		panic(err)
	}
	return next
}

func (s *Schema) declare(attrs ...Attribute) error {
	for _, attr := range attrs {
		if err := attr.validate(); err != nil {
			return err
		}
		if pos, ok := s.index[attr.Name]; ok {
			s.attrs[pos] = attr
			continue
		}
		s.index[attr.Name] = len(s.attrs)
		s.attrs = append(s.attrs, attr)
	}
	return nil
}

func (s *Schema) clone() *Schema {
	next := &Schema{
		index: make(map[string]int),
	}
	if s == nil {
		return next
	}
	next.attrs = make([]Attribute, len(s.attrs))
	copy(next.attrs, s.attrs)
	for name, pos := range s.index {
		next.index[name] = pos
	}
	return next
}

// Attribute returns the declaration for name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	if s == nil {
		return Attribute{}, false
	}
	pos, ok := s.index[name]
	if !ok {
		return Attribute{}, false
	}
	return s.attrs[pos], true
}

// Attributes returns a copy of the declarations in declaration order.
func (s *Schema) Attributes() []Attribute {
	if s == nil {
		return nil
	}
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Names lists every declared attribute name, public and private, in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.attrs))
	for i, attr := range s.attrs {
		names[i] = attr.Name
	}
	return names
}

// Len is the number of declared attributes.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.attrs)
}

// New wraps input in a Form bound to this schema. A nil input is treated as empty.
func (s *Schema) New(input Input) *Form {
	if s == nil {
		s = &Schema{index: map[string]int{}}
	}
	return &Form{
		schema: s,
		input:  input.shallowCopy(),
	}
}
