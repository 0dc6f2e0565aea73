// Package env reads environment variables as nested form input.
//
// Keys are split on a delimiter so APP_SHIPPING__CITY=Lyon becomes
// {"shipping": {"city": "Lyon"}}, and numeric segments build arrays:
//
//	APP_ITEMS__0__SKU=a1
//	APP_ITEMS__1__SKU=b2
//
// yields {"items": [{"sku": "a1"}, {"sku": "b2"}]}.
package env

import (
	"errors"
	"os"
	"strings"

	"github.com/goliatone/go-vulcanize/logger"
	"github.com/tidwall/sjson"
)

// KeyFunc maps a raw variable name to an input key. Returning "" drops the variable.
type KeyFunc func(key, value string) (string, any)

// Env is a koanf provider that emits JSON built from matching variables.
type Env struct {
	prefix  string
	delim   string
	keyFunc KeyFunc
	environ func() []string
	logger  logger.Logger
}

// Provider captures variables starting with prefix (case-sensitive). The
// prefix is stripped, the rest lowercased, and delim turned into nesting.
func Provider(prefix, delim string) *Env {
	return &Env{
		prefix: prefix,
		delim:  delim,
		keyFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, prefix)), value
		},
		environ: os.Environ,
	}
}

// ProviderWithKeyFunc is Provider with a custom key/value mapping, e.g. to
// return a []string for a multi-value attribute.
func ProviderWithKeyFunc(prefix, delim string, fn KeyFunc) *Env {
	e := Provider(prefix, delim)
	if fn != nil {
		e.keyFunc = fn
	}
	return e
}

// SetLogger enables debug output while reading.
func (e *Env) SetLogger(l logger.Logger) {
	e.logger = l
}

// ReadBytes collects the variables into a JSON document.
func (e *Env) ReadBytes() ([]byte, error) {
	out := "{}"
	count := 0
	for _, kv := range e.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, e.prefix) {
			continue
		}

		key, val := e.keyFunc(name, value)
		if key == "" {
			continue
		}
		if e.delim != "" {
			key = strings.ReplaceAll(key, e.delim, ".")
		}

		next, err := sjson.Set(out, key, val)
		if err != nil {
			return nil, err
		}
		out = next
		count++
	}

	if e.logger != nil {
		e.logger.Debug("env provider read %d variables with prefix %q", count, e.prefix)
	}
	return []byte(out), nil
}

// Read is not supported; load through ReadBytes with a JSON parser.
func (e *Env) Read() (map[string]any, error) {
	return nil, errors.New("env provider does not support Read, use ReadBytes")
}
