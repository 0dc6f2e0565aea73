package solvers

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

// Solver rewrites collected input in place, e.g. resolving references
// between keys, and returns the same instance.
type Solver interface {
	Solve(k *koanf.Koanf) *koanf.Koanf
}

// ToString formats a resolved value for embedding in a larger string.
func ToString(v any) string {
	return fmt.Sprintf("%v", v)
}

type delimiters struct {
	Start string
	End   string
}
