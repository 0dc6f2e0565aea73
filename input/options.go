package input

import (
	"time"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-vulcanize/input/solvers"
	"github.com/goliatone/go-vulcanize/logger"
)

// Option configures a Collector.
type Option func(*Collector) error

// WithDelimiter sets the key path delimiter used to nest and flatten keys.
func WithDelimiter(delim string) Option {
	return func(c *Collector) error {
		if delim == "" {
			return errors.New("delimiter cannot be empty", errors.CategoryBadInput).
				WithTextCode("EMPTY_DELIMITER")
		}
		c.delimiter = delim
		return nil
	}
}

// WithTimeout bounds a single Collect call.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) error {
		if d <= 0 {
			return errors.New("timeout must be positive", errors.CategoryBadInput).
				WithTextCode("INVALID_TIMEOUT").
				WithMetadata(map[string]any{
					"timeout": d.String(),
				})
		}
		c.timeout = d
		return nil
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Collector) error {
		if l == nil {
			l = logger.Nop{}
		}
		c.logger = l
		return nil
	}
}

// WithSources creates the sources eagerly, so builder errors surface from NewCollector.
func WithSources(builders ...SourceBuilder) Option {
	return func(c *Collector) error {
		for i, builder := range builders {
			src, err := builder(c)
			if err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to create input source").
					WithTextCode("SOURCE_CREATION_FAILED").
					WithMetadata(map[string]any{
						"builder_index":  i,
						"total_builders": len(builders),
					})
			}
			c.sources = append(c.sources, src)
		}
		return nil
	}
}

// WithSolver runs solvers over the merged input after every source loaded.
func WithSolver(s ...solvers.Solver) Option {
	return func(c *Collector) error {
		c.solvers = append(c.solvers, s...)
		return nil
	}
}

// WithInterpolation resolves ${key} references between collected values.
func WithInterpolation() Option {
	return WithSolver(solvers.NewVariablesSolver("${", "}"))
}
