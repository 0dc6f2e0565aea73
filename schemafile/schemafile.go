package schemafile

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-vulcanize/coerce"
	"github.com/goliatone/go-vulcanize/form"
	"github.com/goliatone/go-vulcanize/input"
	"github.com/goliatone/go-vulcanize/logger"
)

// listPrefix marks a multi-value attribute, e.g. "list:int".
const listPrefix = "list:"

// Document is the decoded form of a schema file.
type Document struct {
	Attributes []AttributeDoc `koanf:"attributes"`
}

// AttributeDoc declares one attribute. Type names a coercer in the
// registry; Options restricts a string attribute to the listed values.
type AttributeDoc struct {
	Name     string   `koanf:"name"`
	Type     string   `koanf:"type"`
	Required bool     `koanf:"required"`
	Default  any      `koanf:"default"`
	From     string   `koanf:"from"`
	Private  bool     `koanf:"private"`
	Options  []string `koanf:"options"`
}

type loader struct {
	base   *form.Schema
	logger logger.Logger
}

// Option configures Load and Parse.
type Option func(*loader)

// WithBase extends base instead of starting from an empty schema.
func WithBase(base *form.Schema) Option {
	return func(l *loader) {
		l.base = base
	}
}

// WithLogger reports how many attributes were declared. Nil keeps the no-op logger.
func WithLogger(lgr logger.Logger) Option {
	return func(l *loader) {
		if lgr != nil {
			l.logger = lgr
		}
	}
}

// Load reads the schema document at path. The format is inferred from the
// extension. A nil registry means coerce.Default().
func Load(path string, reg *coerce.Registry, opts ...Option) (*form.Schema, error) {
	ft := input.InferFileType(path)
	if err := ft.Valid(); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), ft.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to read schema file").
			WithTextCode("SCHEMA_FILE_LOAD_FAILED").
			WithMetadata(map[string]any{
				"filepath":  path,
				"file_type": string(ft),
			})
	}
	return build(k, reg, opts...)
}

// Parse builds a schema from an in-memory document.
func Parse(data []byte, ft input.FileType, reg *coerce.Registry, opts ...Option) (*form.Schema, error) {
	if err := ft.Valid(); err != nil {
		return nil, err
	}

	raw, err := ft.Parser().Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse schema document").
			WithTextCode("SCHEMA_PARSE_FAILED").
			WithMetadata(map[string]any{
				"file_type": string(ft),
			})
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(raw, ""), nil); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load schema document").
			WithTextCode("SCHEMA_PARSE_FAILED")
	}
	return build(k, reg, opts...)
}

func build(k *koanf.Koanf, reg *coerce.Registry, opts ...Option) (*form.Schema, error) {
	l := &loader{logger: logger.Nop{}}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if reg == nil {
		reg = coerce.Default()
	}

	if !k.Exists("attributes") {
		return nil, errors.New("schema document has no attributes", errors.CategoryValidation).
			WithTextCode("INVALID_SCHEMA_DOCUMENT")
	}

	var doc Document
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "malformed schema document").
			WithTextCode("INVALID_SCHEMA_DOCUMENT")
	}

	attrs := make([]form.Attribute, 0, len(doc.Attributes))
	for i, ad := range doc.Attributes {
		attr, err := ad.attribute(reg)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "invalid attribute declaration").
				WithTextCode("INVALID_ATTRIBUTE").
				WithMetadata(map[string]any{
					"attribute_index": i,
					"attribute":       ad.Name,
				})
		}
		attrs = append(attrs, attr)
	}

	var (
		schema *form.Schema
		err    error
	)
	if l.base != nil {
		schema, err = l.base.Extend(attrs...)
	} else {
		schema, err = form.NewSchema(attrs...)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to declare schema").
			WithTextCode("INVALID_SCHEMA")
	}

	l.logger.Debug("declared %d attributes", len(attrs))
	return schema, nil
}

func (ad AttributeDoc) attribute(reg *coerce.Registry) (form.Attribute, error) {
	typ, err := ad.coercer(reg)
	if err != nil {
		return form.Attribute{}, err
	}

	opts := []form.AttrOption{}
	if ad.Required {
		opts = append(opts, form.Required())
	}
	if ad.Default != nil {
		opts = append(opts, form.Default(ad.Default))
	}
	if ad.From != "" {
		opts = append(opts, form.From(ad.From))
	}
	if ad.Private {
		opts = append(opts, form.Private())
	}
	return form.Attr(ad.Name, typ, opts...), nil
}

func (ad AttributeDoc) coercer(reg *coerce.Registry) (form.Coercer, error) {
	if len(ad.Options) > 0 {
		if ad.Type != "" && ad.Type != "string" {
			return nil, errors.New("options require a string attribute", errors.CategoryValidation).
				WithTextCode("INVALID_OPTIONS").
				WithMetadata(map[string]any{
					"type": ad.Type,
				})
		}
		return coerce.OneOf(ad.Options...), nil
	}

	name := ad.Type
	if name == "" {
		return nil, errors.New("attribute type is required", errors.CategoryValidation).
			WithTextCode("MISSING_COERCER")
	}

	list := strings.HasPrefix(name, listPrefix)
	if list {
		name = strings.TrimPrefix(name, listPrefix)
	}

	c, ok := reg.Lookup(name)
	if !ok {
		return nil, errors.New("unknown attribute type", errors.CategoryValidation).
			WithTextCode("UNKNOWN_COERCER").
			WithMetadata(map[string]any{
				"type":        ad.Type,
				"valid_types": reg.Names(),
			})
	}
	if list {
		return coerce.List(c), nil
	}
	return c, nil
}
