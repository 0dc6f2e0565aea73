package bind

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/copystructure"

	"github.com/goliatone/go-vulcanize/coerce"
	"github.com/goliatone/go-vulcanize/form"
)

const (
	stageDefaults   = "defaults"
	stageCollect    = "collect"
	stagePreprocess = "preprocess"
	stageDecode     = "decode"
	stageValidate   = "validate"
)

// Sentinels matched by the *StageError of the stage that failed.
var (
	ErrDefaults   = errors.New("bind: defaults stage failed")
	ErrCollect    = errors.New("bind: collect stage failed")
	ErrPreprocess = errors.New("bind: preprocess stage failed")
	ErrDecode     = errors.New("bind: decode stage failed")
	ErrValidate   = errors.New("bind: validate stage failed")
	ErrOption     = errors.New("bind: option configuration failed")
)

// StageError is returned by Build. It matches the stage sentinel (Base) and
// anything the cause (Err) matches, so errors.Is(err, form.ErrCoercion)
// works on a failed collect stage. Meta carries stage specific details such
// as the failing attribute.
type StageError struct {
	Stage string
	Base  error
	Err   error
	Meta  map[string]any
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return "bind " + e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Base, e.Err}
}

func stageError(stage string, base, err error, meta map[string]any) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Base: base, Err: err, Meta: meta}
}

type builder[T any] struct {
	form           *form.Form
	defaults       func() (T, error)
	preprocessors  []Preprocessor
	decodeHooks    []mapstructure.DecodeHookFunc
	decoderConfig  mapstructure.DecoderConfig
	validator      Validator[T]
	useHookSet     bool
	includePrivate bool
	optionErr      error
}

func newBuilder[T any](f *form.Form) *builder[T] {
	return &builder[T]{
		form: f,
		decoderConfig: mapstructure.DecoderConfig{
			TagName:          "form",
			WeaklyTypedInput: true,
		},
		useHookSet: true,
	}
}

// Build reads f's public attributes through their accessors and decodes them
// into T, running defaults, collect, preprocess, decode, and validate in that
// order. A failing stage returns a *StageError matching one of the Err*
// sentinels; accessor failures also match form.ErrAttributeRequired or
// form.ErrCoercion.
func Build[T any](f *form.Form, opts ...Option[T]) (T, error) {
	b := newBuilder[T](f)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.optionErr != nil {
		var zero T
		return zero, b.optionErr
	}
	if b.form == nil {
		var zero T
		return zero, fmt.Errorf("%w: nil form", ErrOption)
	}
	return b.build()
}

func (b *builder[T]) setOptionError(format string, args ...any) {
	if b.optionErr != nil {
		return
	}
	err := fmt.Errorf(format, args...)
	b.optionErr = fmt.Errorf("%w: %w", ErrOption, err)
}

func (b *builder[T]) build() (T, error) {
	var zero T

	result, err := b.applyDefaults()
	if err != nil {
		return zero, err
	}

	values, err := b.collect()
	if err != nil {
		return zero, err
	}

	current, err := b.applyPreprocessors(values)
	if err != nil {
		return zero, err
	}
	if current == nil {
		current = values
	}

	if err := b.decode(current, &result); err != nil {
		return zero, err
	}

	if err := b.runValidator(&result); err != nil {
		return zero, err
	}

	return result, nil
}

func (b *builder[T]) applyDefaults() (T, error) {
	if b.defaults == nil {
		var zero T
		return zero, nil
	}
	val, err := b.defaults()
	if err != nil {
		var zero T
		return zero, stageError(stageDefaults, ErrDefaults, err, nil)
	}
	cloned, err := cloneValue(val)
	if err != nil {
		var zero T
		return zero, stageError(stageDefaults, ErrDefaults, err, map[string]any{
			"reason": "clone",
		})
	}
	return cloned, nil
}

// collect gathers coerced values keyed by attribute name. Private attributes
// are only read when WithIncludePrivate is set.
func (b *builder[T]) collect() (map[string]any, error) {
	if !b.includePrivate {
		values, err := b.form.Map()
		if err != nil {
			return nil, stageError(stageCollect, ErrCollect, err, attributeMeta(err))
		}
		return values, nil
	}

	values := make(map[string]any)
	for _, name := range b.form.Schema().Names() {
		value, err := b.form.Get(name)
		if err != nil {
			return nil, stageError(stageCollect, ErrCollect, err, attributeMeta(err))
		}
		values[name] = value
	}
	return values, nil
}

func attributeMeta(err error) map[string]any {
	var attrErr *form.AttributeError
	if !errors.As(err, &attrErr) {
		return nil
	}
	return map[string]any{
		"attribute": attrErr.Attribute,
		"source":    attrErr.Source,
		"kind":      attrErr.Kind.String(),
	}
}

func (b *builder[T]) applyPreprocessors(input map[string]any) (map[string]any, error) {
	current := input
	for idx, pre := range b.preprocessors {
		if pre == nil {
			continue
		}
		next, err := pre(current)
		if err != nil {
			return nil, stageError(stagePreprocess, ErrPreprocess, err, map[string]any{
				"preprocessor_index": idx,
			})
		}
		current = next
	}
	return current, nil
}

func (b *builder[T]) decode(input map[string]any, result *T) error {
	target := decodeTarget(result)

	config := b.decoderConfig
	config.Result = target
	config.DecodeHook = b.composeDecodeHooks()
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return stageError(stageDecode, ErrDecode, err, map[string]any{"reason": "decoder_config"})
	}
	if err := decoder.Decode(input); err != nil {
		return stageError(stageDecode, ErrDecode, err, nil)
	}
	return nil
}

func (b *builder[T]) composeDecodeHooks() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(b.decodeHooks)+4)
	if b.useHookSet {
		hooks = append(hooks, coerce.DefaultDecodeHooks()...)
	}
	hooks = append(hooks, b.decodeHooks...)
	return coerce.ComposeHooks(hooks...)
}

// decodeTarget returns what mapstructure should decode into: result itself,
// or the value it points at when T is a pointer type (allocated if nil).
func decodeTarget[T any](result *T) any {
	v := reflect.ValueOf(result).Elem()
	if v.Kind() != reflect.Pointer {
		return result
	}
	if v.IsNil() {
		v.Set(reflect.New(v.Type().Elem()))
	}
	return v.Interface()
}

func (b *builder[T]) runValidator(result *T) error {
	if b.validator == nil {
		return nil
	}
	if err := b.validator(result); err != nil {
		return stageError(stageValidate, ErrValidate, err, nil)
	}
	return nil
}

func cloneValue[T any](value T) (T, error) {
	cloned, err := copystructure.Copy(value)
	if err != nil {
		var zero T
		return zero, err
	}
	if cloned == nil {
		var zero T
		return zero, nil
	}
	typed, ok := cloned.(T)
	if !ok {
		return typed, fmt.Errorf("bind: clone of %T has type %T", value, cloned)
	}
	return typed, nil
}
