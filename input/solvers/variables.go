package solvers

import (
	"strings"

	"github.com/knadh/koanf/v2"
)

type variables struct {
	delimiters delimiters
}

// NewVariablesSolver resolves references such as ${shipping.city} to the
// value stored under that key. A value that is exactly one reference takes
// the referenced value with its type; references embedded in longer strings
// are formatted into the string. Unknown keys are left untouched.
func NewVariablesSolver(start, end string) Solver {
	return &variables{
		delimiters: delimiters{
			Start: start,
			End:   end,
		},
	}
}

// Solve replaces references in every string value.
func (s *variables) Solve(k *koanf.Koanf) *koanf.Koanf {
	for key, val := range k.All() {
		str, ok := val.(string)
		if !ok {
			continue
		}
		if resolved, changed := s.resolve(key, str, k); changed {
			k.Set(key, resolved)
		}
	}
	return k
}

func (s *variables) resolve(key, val string, k *koanf.Koanf) (any, bool) {
	if path, ok := s.whole(val); ok {
		if path == key || !k.Exists(path) {
			return nil, false
		}
		return k.Get(path), true
	}

	var (
		out     strings.Builder
		changed bool
		rest    = val
	)
	for {
		start := strings.Index(rest, s.delimiters.Start)
		if start == -1 {
			break
		}
		tail := rest[start+len(s.delimiters.Start):]
		end := strings.Index(tail, s.delimiters.End)
		if end == -1 {
			break
		}
		path := tail[:end]
		out.WriteString(rest[:start])
		if path != key && path != "" && k.Exists(path) {
			out.WriteString(ToString(k.Get(path)))
			changed = true
		} else {
			out.WriteString(rest[start : start+len(s.delimiters.Start)+end+len(s.delimiters.End)])
		}
		rest = tail[end+len(s.delimiters.End):]
	}
	out.WriteString(rest)
	return out.String(), changed
}

func (s *variables) whole(val string) (string, bool) {
	if !strings.HasPrefix(val, s.delimiters.Start) || !strings.HasSuffix(val, s.delimiters.End) {
		return "", false
	}
	path := val[len(s.delimiters.Start) : len(val)-len(s.delimiters.End)]
	if path == "" || strings.Contains(path, s.delimiters.Start) {
		return "", false
	}
	return path, true
}
