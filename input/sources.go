package input

import (
	"context"
	goerrors "errors"
	"maps"
	"net/http"
	"os"
	"slices"
	"strings"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-vulcanize/form"
	"github.com/goliatone/go-vulcanize/input/env"
)

// SourceBuilder creates a Source bound to a collector.
type SourceBuilder func(*Collector) (Source, error)

// SourceType names where a source reads from.
type SourceType string

const (
	SourceTypeValues  SourceType = "values"
	SourceTypeStruct  SourceType = "struct"
	SourceTypeFile    SourceType = "file"
	SourceTypeEnv     SourceType = "env"
	SourceTypeFlag    SourceType = "pflag"
	SourceTypeRequest SourceType = "request"
)

func (s SourceType) String() string {
	return string(s)
}

func (s SourceType) validate() error {
	switch s {
	case SourceTypeValues, SourceTypeStruct, SourceTypeFile, SourceTypeEnv, SourceTypeFlag, SourceTypeRequest:
		return nil
	default:
		return errors.New("invalid input source type", errors.CategoryValidation).
			WithTextCode("INVALID_SOURCE_TYPE").
			WithMetadata(map[string]any{
				"source_type": string(s),
				"valid_types": []string{
					string(SourceTypeValues),
					string(SourceTypeStruct),
					string(SourceTypeFile),
					string(SourceTypeEnv),
					string(SourceTypeFlag),
					string(SourceTypeRequest),
				},
			})
	}
}

// Source loads raw values into the collector's koanf instance.
type Source interface {
	Type() SourceType
	Priority() int
	Validate() error
	Load(context.Context, *koanf.Koanf) error
}

// Loader is the Source implementation behind every builder in this package.
type Loader struct {
	order      int
	sourceType SourceType
	load       func(context.Context, *koanf.Koanf) error
}

func (l *Loader) Priority() int {
	return l.order
}

func (l *Loader) Type() SourceType {
	return l.sourceType
}

func (l *Loader) Load(ctx context.Context, k *koanf.Koanf) error {
	return l.load(ctx, k)
}

func (l *Loader) Validate() error {
	return l.sourceType.validate()
}

// Priority orders sources; higher priorities load later and win.
type Priority int

// WithOffset nudges a priority, e.g. PriorityFile.WithOffset(5) for an override file.
func (p Priority) WithOffset(offset int) Priority {
	return Priority(int(p) + offset)
}

var (
	PriorityValues  Priority = 0
	PriorityStruct  Priority = 10
	PriorityFile    Priority = 20
	PriorityEnv     Priority = 30
	PriorityFlags   Priority = 40
	PriorityRequest Priority = 50
)

var (
	DefaultEnvPrefix    = "FORM_"
	DefaultEnvDelimiter = "__"
)

var mergeIgnoringBlank = koanf.WithMergeFunc(MergeIgnoringBlank)

// Values loads a literal map, e.g. defaults or test fixtures. Keys may use
// the delimiter to address nested values, but a key may not also be the
// prefix of another key ("a" and "a.b").
func Values(values map[string]any, order ...int) SourceBuilder {
	return func(c *Collector) (Source, error) {
		if err := checkKeyConflicts(values, c.delimiter); err != nil {
			return &Loader{}, err
		}
		return &Loader{
			sourceType: SourceTypeValues,
			order:      getOrder(PriorityValues, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				c.logger.Debug("values source: %d keys", len(values))
				if err := k.Load(confmap.Provider(values, c.delimiter), nil, mergeIgnoringBlank); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load input values").
						WithTextCode("VALUES_LOAD_FAILED").
						WithMetadata(map[string]any{
							"values_count": len(values),
						})
				}
				return nil
			},
		}, nil
	}
}

// Request loads the query string and body of r. The form is parsed when the
// source is created; a field name that is the prefix of another field
// ("a" and "a.b") is rejected with INPUT_KEY_CONFLICT.
func Request(r *http.Request, order ...int) SourceBuilder {
	return func(c *Collector) (Source, error) {
		if r == nil {
			return &Loader{}, errors.New("request cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_REQUEST")
		}
		in, err := form.FromRequest(r)
		if err != nil {
			return &Loader{}, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request form").
				WithTextCode("REQUEST_PARSE_FAILED").
				WithMetadata(map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
				})
		}
		if err := checkKeyConflicts(in, c.delimiter); err != nil {
			return &Loader{}, err
		}
		return &Loader{
			sourceType: SourceTypeRequest,
			order:      getOrder(PriorityRequest, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				c.logger.Debug("request source: %d keys from %s %s", len(in), r.Method, r.URL.Path)
				if err := k.Load(confmap.Provider(map[string]any(in), c.delimiter), nil, mergeIgnoringBlank); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load request form").
						WithTextCode("REQUEST_LOAD_FAILED")
				}
				return nil
			},
		}, nil
	}
}

// checkKeyConflicts reports a key that is also a delimiter prefix of another
// key. Such pairs cannot be nested without one value replacing the other.
func checkKeyConflicts[M ~map[string]any](values M, delim string) error {
	if delim == "" {
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		for i := 0; ; {
			j := strings.Index(key[i:], delim)
			if j < 0 {
				break
			}
			prefix := key[:i+j]
			if _, ok := values[prefix]; ok {
				return errors.New("input key is both a value and a parent of another key", errors.CategoryBadInput).
					WithTextCode("INPUT_KEY_CONFLICT").
					WithMetadata(map[string]any{
						"key":        prefix,
						"nested_key": key,
						"delimiter":  delim,
					})
			}
			i += j + len(delim)
		}
	}
	return nil
}

// File loads a JSON, YAML, or TOML document; the format comes from the extension.
func File(path string, order ...int) SourceBuilder {
	filetype := InferFileType(path)

	return func(c *Collector) (Source, error) {
		if err := filetype.Valid(); err != nil {
			return &Loader{}, err
		}
		parser := filetype.Parser()
		kprovider := file.Provider(path)

		return &Loader{
			sourceType: SourceTypeFile,
			order:      getOrder(PriorityFile, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				c.logger.Debug("file source: %s", path)
				if err := k.Load(kprovider, parser, mergeIgnoringBlank); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load input from file").
						WithTextCode("FILE_LOAD_FAILED").
						WithMetadata(map[string]any{
							"filepath":  path,
							"file_type": string(filetype),
						})
				}
				return nil
			},
		}, nil
	}
}

// Env loads variables starting with prefix; delim separates nesting levels,
// so FORM_SHIPPING__CITY becomes shipping.city.
func Env(prefix, delim string, order ...int) SourceBuilder {
	return func(c *Collector) (Source, error) {
		return &Loader{
			sourceType: SourceTypeEnv,
			order:      getOrder(PriorityEnv, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				kprov := env.Provider(prefix, delim)
				kprov.SetLogger(c.logger)
				if err := k.Load(kprov, json.Parser(), mergeIgnoringBlank); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load environment variables").
						WithTextCode("ENV_LOAD_FAILED").
						WithMetadata(map[string]any{
							"prefix":    prefix,
							"delimiter": delim,
						})
				}
				return nil
			},
		}, nil
	}
}

// Flags loads a parsed pflag set. Flags the user did not set only fill keys
// that no earlier source provided.
func Flags(flagset *pflag.FlagSet, order ...int) SourceBuilder {
	return func(c *Collector) (Source, error) {
		if flagset == nil {
			return &Loader{}, errors.New("flagset cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_FLAGSET")
		}
		return &Loader{
			sourceType: SourceTypeFlag,
			order:      getOrder(PriorityFlags, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				c.logger.Debug("flags source")
				if err := k.Load(posflag.Provider(flagset, c.delimiter, k), nil); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load input from posix flags").
						WithTextCode("FLAGS_LOAD_FAILED").
						WithMetadata(map[string]any{
							"delimiter": c.delimiter,
						})
				}
				return nil
			},
		}, nil
	}
}

// Struct loads the exported fields of v, keyed by the tag (default "form").
func Struct(v any, tag string, order ...int) SourceBuilder {
	if tag == "" {
		tag = "form"
	}
	return func(c *Collector) (Source, error) {
		if v == nil {
			return &Loader{}, errors.New("struct cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_STRUCT")
		}
		kprv := structs.Provider(v, tag)
		return &Loader{
			sourceType: SourceTypeStruct,
			order:      getOrder(PriorityStruct, order...),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				c.logger.Debug("struct source: %T", v)
				if err := k.Load(kprv, nil, mergeIgnoringBlank); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load input from struct").
						WithTextCode("STRUCT_LOAD_FAILED")
				}
				return nil
			},
		}, nil
	}
}

// ErrorFilter reports whether a load error should be ignored.
type ErrorFilter func(err error) bool

// DefaultErrorFilter ignores the listed errors, or missing files when none are given.
func DefaultErrorFilter(allowedErrors ...error) ErrorFilter {
	return func(err error) bool {
		if err == nil {
			return false
		}
		if len(allowedErrors) == 0 {
			return os.IsNotExist(err) || goerrors.Is(err, syscall.ENOENT)
		}
		for _, allowed := range allowedErrors {
			if goerrors.Is(err, allowed) {
				return true
			}
		}
		return false
	}
}

// Optional wraps a builder so load errors accepted by filter are ignored,
// e.g. an override file that may not exist.
func Optional(f SourceBuilder, filters ...ErrorFilter) SourceBuilder {
	ignore := DefaultErrorFilter()
	if len(filters) > 0 && filters[0] != nil {
		ignore = filters[0]
	}

	return func(c *Collector) (Source, error) {
		base, err := f(c)
		if err != nil {
			return &Loader{}, err
		}
		return &Loader{
			sourceType: base.Type(),
			order:      base.Priority(),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				if err := base.Load(ctx, k); err != nil && !ignore(err) {
					return err
				}
				return nil
			},
		}, nil
	}
}

func getOrder(def Priority, orders ...int) int {
	if len(orders) > 0 {
		return orders[0]
	}
	return int(def)
}
