package env

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnviron(e *Env, vars ...string) *Env {
	e.environ = func() []string { return vars }
	return e
}

func TestProvider(t *testing.T) {
	tests := []struct {
		name     string
		vars     []string
		expected string
	}{
		{
			name:     "single key",
			vars:     []string{"FORM_EMAIL=a@example.com"},
			expected: `{"email":"a@example.com"}`,
		},
		{
			name:     "nested keys",
			vars:     []string{"FORM_SHIPPING__CITY=Lyon", "FORM_SHIPPING__ZIP=69001"},
			expected: `{"shipping":{"city":"Lyon","zip":"69001"}}`,
		},
		{
			name:     "array handling",
			vars:     []string{"FORM_ITEMS__0__SKU=a1", "FORM_ITEMS__1__SKU=b2"},
			expected: `{"items":[{"sku":"a1"},{"sku":"b2"}]}`,
		},
		{
			name:     "prefix filtering",
			vars:     []string{"FORM_KEY=in", "OTHER_KEY=out", "PATH=/bin"},
			expected: `{"key":"in"}`,
		},
		{
			name:     "value containing equals sign",
			vars:     []string{"FORM_QUERY=a=b"},
			expected: `{"query":"a=b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := withEnviron(Provider("FORM_", "__"), tt.vars...)
			data, err := provider.ReadBytes()
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestProviderReadsProcessEnvironment(t *testing.T) {
	t.Setenv("VULCANIZE_TEST_ITEM", "valid")

	data, err := Provider("VULCANIZE_TEST_", "__").ReadBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"valid"}`, string(data))
}

func TestProviderWithKeyFunc(t *testing.T) {
	provider := withEnviron(ProviderWithKeyFunc("FORM_", "__", func(key, value string) (string, any) {
		if strings.HasSuffix(key, "_SKIP") {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, "FORM_")), strings.Split(value, ",")
	}), "FORM_TAGS=a,b", "FORM_X_SKIP=1")

	data, err := provider.ReadBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":["a","b"]}`, string(data))
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(format string, args ...any) { r.lines = append(r.lines, format) }
func (r *recordingLogger) Info(format string, args ...any)  {}
func (r *recordingLogger) Error(format string, args ...any) {}

func TestProviderLogs(t *testing.T) {
	l := &recordingLogger{}
	provider := withEnviron(Provider("FORM_", "__"), "FORM_A=1")
	provider.SetLogger(l)

	_, err := provider.ReadBytes()
	require.NoError(t, err)
	assert.Len(t, l.lines, 1)
}

func TestReadNotSupported(t *testing.T) {
	_, err := Provider("", "__").Read()
	assert.Error(t, err)
}
