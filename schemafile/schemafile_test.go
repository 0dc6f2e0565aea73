package schemafile

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vulcanize/coerce"
	"github.com/goliatone/go-vulcanize/form"
	"github.com/goliatone/go-vulcanize/input"
)

const orderYAML = `
attributes:
  - name: quantity
    type: int
    required: true
  - name: size
    options: [s, m, l]
    default: m
  - name: tags
    type: list:trimmed
  - name: token
    type: uuid
    from: csrf_token
    private: true
`

func textCode(t *testing.T, err error) string {
	t.Helper()
	var gerr *errors.Error
	require.True(t, goerrors.As(err, &gerr), "expected *errors.Error, got %T", err)
	return gerr.TextCode
}

func TestParseYAML(t *testing.T) {
	schema, err := Parse([]byte(orderYAML), input.FileTypeYAML, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"quantity", "size", "tags", "token"}, schema.Names())

	token, ok := schema.Attribute("token")
	require.True(t, ok)
	assert.False(t, token.IsPublic())
	assert.Equal(t, "csrf_token", token.Source())

	f := schema.New(form.Input{
		"quantity":   "3",
		"tags":       []string{" a ", "b"},
		"csrf_token": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	})
	require.NoError(t, f.Validate())

	m, err := f.Map()
	require.NoError(t, err)
	assert.Equal(t, 3, m["quantity"])
	assert.Equal(t, "m", m["size"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
	assert.NotContains(t, m, "token")

	bad := schema.New(form.Input{"quantity": "3", "size": "xl"})
	_, err = bad.Get("size")
	assert.ErrorIs(t, err, form.ErrCoercion)

	missing := schema.New(nil)
	assert.False(t, missing.Valid())
}

func TestParseJSONAndTOML(t *testing.T) {
	jsonDoc := `{"attributes": [{"name": "age", "type": "int", "default": 18}]}`
	tomlDoc := "[[attributes]]\nname = \"age\"\ntype = \"int\"\ndefault = 18\n"

	for ft, doc := range map[input.FileType]string{
		input.FileTypeJSON: jsonDoc,
		input.FileTypeTOML: tomlDoc,
	} {
		schema, err := Parse([]byte(doc), ft, coerce.Default())
		require.NoError(t, err, ft)

		v, err := schema.New(nil).Get("age")
		require.NoError(t, err, ft)
		assert.EqualValues(t, 18, v, ft)

		v, err = schema.New(form.Input{"age": "40"}).Get("age")
		require.NoError(t, err, ft)
		assert.Equal(t, 40, v, ft)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.yml")
	require.NoError(t, os.WriteFile(path, []byte(orderYAML), 0o600))

	schema, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, schema.Len())

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Equal(t, "SCHEMA_FILE_LOAD_FAILED", textCode(t, err))

	_, err = Load("schema.ini", nil)
	require.Error(t, err)
	assert.Equal(t, "INVALID_FILE_TYPE", textCode(t, err))

	existing := filepath.Join(t.TempDir(), "order.txt")
	require.NoError(t, os.WriteFile(existing, []byte(`{"attributes": []}`), 0o600))
	_, err = Load(existing, nil)
	require.Error(t, err)
	assert.Equal(t, "INVALID_FILE_TYPE", textCode(t, err), "json content behind an unknown extension is not parsed")
}

func TestWithBase(t *testing.T) {
	base := form.MustSchema(form.Attr("email", coerce.Trimmed, form.Required()))

	schema, err := Parse([]byte(orderYAML), input.FileTypeYAML, nil, WithBase(base))
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "quantity", "size", "tags", "token"}, schema.Names())
	assert.Equal(t, 1, base.Len())
}

func TestCustomRegistry(t *testing.T) {
	reg := coerce.NewRegistry()
	reg.MustRegister("upper", form.CoercerFunc(func(raw any) (any, error) {
		s, _ := raw.(string)
		return s + "!", nil
	}))

	schema, err := Parse([]byte("attributes:\n  - name: shout\n    type: upper\n"), input.FileTypeYAML, reg)
	require.NoError(t, err)
	v, err := schema.New(form.Input{"shout": "hi"}).Get("shout")
	require.NoError(t, err)
	assert.Equal(t, "hi!", v)

	_, err = Parse([]byte("attributes:\n  - name: n\n    type: int\n"), input.FileTypeYAML, reg)
	require.Error(t, err)
	assert.Equal(t, "INVALID_ATTRIBUTE", textCode(t, err))
}

func TestParseErrors(t *testing.T) {
	type testCase struct {
		name string
		doc  string
		code string
	}

	cases := []testCase{
		{name: "broken yaml", doc: "attributes: [", code: "SCHEMA_PARSE_FAILED"},
		{name: "no attributes", doc: "fields: []", code: "INVALID_SCHEMA_DOCUMENT"},
		{name: "attributes not a list", doc: "attributes: [3]", code: "INVALID_SCHEMA_DOCUMENT"},
		{name: "missing type", doc: "attributes:\n  - name: a\n", code: "INVALID_ATTRIBUTE"},
		{name: "unknown type", doc: "attributes:\n  - name: a\n    type: money\n", code: "INVALID_ATTRIBUTE"},
		{name: "unknown list type", doc: "attributes:\n  - name: a\n    type: list:money\n", code: "INVALID_ATTRIBUTE"},
		{name: "options on int", doc: "attributes:\n  - name: a\n    type: int\n    options: [a]\n", code: "INVALID_ATTRIBUTE"},
		{name: "empty name", doc: "attributes:\n  - type: int\n", code: "INVALID_SCHEMA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), input.FileTypeYAML, nil)
			require.Error(t, err)
			assert.Equal(t, tc.code, textCode(t, err))
		})
	}
}
