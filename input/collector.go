package input

import (
	"context"
	"sort"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-vulcanize/form"
	"github.com/goliatone/go-vulcanize/input/solvers"
	"github.com/goliatone/go-vulcanize/logger"
)

var (
	DefaultDelimiter = "."
	DefaultTimeout   = 5 * time.Second
)

// Collector gathers raw form input from several sources. Sources load in
// ascending priority; a later source overrides earlier ones except where it
// carries a blank value.
type Collector struct {
	delimiter string
	timeout   time.Duration
	logger    logger.Logger
	builders  []SourceBuilder
	sources   []Source
	solvers   []solvers.Solver
}

// NewCollector creates a collector. With no sources Collect returns an empty Input.
func NewCollector(opts ...Option) (*Collector, error) {
	c := &Collector{
		delimiter: DefaultDelimiter,
		timeout:   DefaultTimeout,
		logger:    logger.Nop{},
	}

	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "failed to apply collector option").
				WithTextCode("OPTION_APPLY_FAILED").
				WithMetadata(map[string]any{
					"option_index":  i,
					"total_options": len(opts),
				})
		}
	}

	return c, nil
}

// MustCollector is NewCollector that panics on error.
func MustCollector(opts ...Option) *Collector {
	c, err := NewCollector(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// WithSource adds sources; they are created when Collect runs.
func (c *Collector) WithSource(builders ...SourceBuilder) *Collector {
	c.builders = append(c.builders, builders...)
	return c
}

// Delimiter returns the key path delimiter.
func (c *Collector) Delimiter() string {
	return c.delimiter
}

// Collect loads every source and returns the merged, flattened input.
// Nested keys are joined with the delimiter, so {"shipping": {"city": ..}}
// is returned as "shipping.city".
func (c *Collector) Collect(ctx context.Context) (form.Input, error) {
	k, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return form.Input(k.All()), nil
}

// CollectForm collects input and binds it to schema.
func (c *Collector) CollectForm(ctx context.Context, schema *form.Schema) (*form.Form, error) {
	if schema == nil {
		return nil, errors.New("schema cannot be nil", errors.CategoryBadInput).
			WithTextCode("NIL_SCHEMA")
	}
	in, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return schema.New(in), nil
}

// Load runs the sources and returns the underlying koanf instance.
func (c *Collector) Load(ctx context.Context) (*koanf.Koanf, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sources := make([]Source, 0, len(c.sources)+len(c.builders))
	sources = append(sources, c.sources...)

	for i, builder := range c.builders {
		src, err := builder(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create input source").
				WithTextCode("SOURCE_CREATION_FAILED").
				WithMetadata(map[string]any{
					"builder_index":  i,
					"total_builders": len(c.builders),
				})
		}
		sources = append(sources, src)
	}

	for i, src := range sources {
		if err := src.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "invalid input source type").
				WithTextCode("INVALID_SOURCE_TYPE").
				WithMetadata(map[string]any{
					"source_type":  string(src.Type()),
					"source_index": i,
				})
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	k := koanf.New(c.delimiter)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "input collection cancelled").
				WithTextCode("COLLECT_CANCELLED").
				WithMetadata(map[string]any{
					"source_index": i,
				})
		}
		c.logger.Debug("loading source %s (priority %d)", src.Type(), src.Priority())
		if err := src.Load(ctx, k); err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load input from source").
				WithTextCode("INPUT_LOAD_FAILED").
				WithMetadata(map[string]any{
					"source_type":   string(src.Type()),
					"source_index":  i,
					"total_sources": len(sources),
				})
		}
	}

	for _, s := range c.solvers {
		k = s.Solve(k)
	}

	c.logger.Info("collected %d keys from %d sources", len(k.Keys()), len(sources))
	return k, nil
}
