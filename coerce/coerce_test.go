package coerce

import (
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vulcanize/form"
)

func TestCheckBox(t *testing.T) {
	v, err := CheckBox.Coerce("on")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = CheckBox.Coerce("bad")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCheckBoxInForm(t *testing.T) {
	schema := form.MustSchema(form.Attr("subscribe", CheckBox, form.Default(false)))

	checked, err := form.Value[bool](schema.New(form.Input{"subscribe": "on"}), "subscribe")
	require.NoError(t, err)
	assert.True(t, checked)

	unchecked, err := form.Value[bool](schema.New(nil), "subscribe")
	require.NoError(t, err)
	assert.False(t, unchecked)

	f := schema.New(form.Input{"subscribe": "yes"})
	assert.False(t, f.Valid())
	_, err = f.Get("subscribe")
	assert.ErrorIs(t, err, form.ErrCoercion)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestScalars(t *testing.T) {
	cases := []struct {
		name    string
		coercer form.Coercer
		raw     any
		want    any
		wantErr bool
	}{
		{name: "string", coercer: String, raw: "abc", want: "abc"},
		{name: "string from single slice", coercer: String, raw: []string{"abc"}, want: "abc"},
		{name: "string from multi slice", coercer: String, raw: []string{"a", "b"}, wantErr: true},
		{name: "string from unsupported", coercer: String, raw: struct{}{}, wantErr: true},
		{name: "trimmed", coercer: Trimmed, raw: "  abc ", want: "abc"},
		{name: "trimmed whitespace", coercer: Trimmed, raw: "   ", wantErr: true},
		{name: "int", coercer: Int, raw: " 42", want: 42},
		{name: "int passthrough", coercer: Int, raw: 7, want: 7},
		{name: "int invalid", coercer: Int, raw: "4.2", wantErr: true},
		{name: "float", coercer: Float, raw: "4.5", want: 4.5},
		{name: "float invalid", coercer: Float, raw: "four", wantErr: true},
		{name: "bool yes", coercer: Bool, raw: "yes", want: true},
		{name: "bool off", coercer: Bool, raw: "OFF", want: false},
		{name: "bool invalid", coercer: Bool, raw: "maybe", wantErr: true},
		{name: "duration", coercer: Duration, raw: "90s", want: 90 * time.Second},
		{name: "duration invalid", coercer: Duration, raw: "soon", wantErr: true},
		{name: "date", coercer: Time(time.DateOnly), raw: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "date invalid", coercer: Time(time.DateOnly), raw: "29/02/2024", wantErr: true},
		{name: "one of", coercer: OneOf("red", "green"), raw: "green", want: "green"},
		{name: "one of invalid", coercer: OneOf("red", "green"), raw: "blue", wantErr: true},
		{name: "list", coercer: List(Int), raw: []string{"1", "2"}, want: []any{1, 2}},
		{name: "list single", coercer: List(Int), raw: "3", want: []any{3}},
		{name: "list invalid item", coercer: List(Int), raw: []string{"1", "x"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.coercer.Coerce(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUUID(t *testing.T) {
	id := uuid.New()
	got, err := UUID.Coerce(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = UUID.Coerce("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSanitized(t *testing.T) {
	got, err := Sanitized.Coerce(`<b>hello</b><script>alert(1)</script>`)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = Sanitized.Coerce(`<script>alert(1)</script>`)
	assert.ErrorIs(t, err, ErrInvalid)

	ugc := Sanitize(bluemonday.UGCPolicy())
	got, err = ugc.Coerce(`<b>hello</b>`)
	require.NoError(t, err)
	assert.Equal(t, "<b>hello</b>", got)
}

func TestText(t *testing.T) {
	addr := Text[netip.Addr]()
	got, err := addr.Coerce("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), got)

	_, err = addr.Coerce("10.0.0")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecode(t *testing.T) {
	ints := Decode[[]int]()
	got, err := ints.Coerce("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	_, err = ints.Coerce("1,x")
	assert.ErrorIs(t, err, ErrInvalid)

	type window struct {
		Every time.Duration `form:"every"`
		Quiet bool          `form:"quiet"`
	}
	w, err := Decode[window]().Coerce(map[string]any{"every": "5m", "quiet": "on"})
	require.NoError(t, err)
	assert.Equal(t, window{Every: 5 * time.Minute, Quiet: true}, w)

	_, err = Decode[int](WithStrictTyping()).Coerce("5")
	assert.ErrorIs(t, err, ErrInvalid)

	type tagged struct {
		Name string `json:"name"`
	}
	tg, err := Decode[tagged](WithTagName("json"), WithDecodeHooks()).Coerce(map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, tagged{Name: "x"}, tg)
}

func TestRegistry(t *testing.T) {
	r := Default()
	c, ok := r.Lookup("checkbox")
	require.True(t, ok)
	v, err := c.Coerce("on")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	assert.Error(t, r.Register("checkbox", Bool))
	assert.Error(t, r.Register("", Bool))
	assert.Error(t, r.Register("nil", nil))
	assert.Panics(t, func() { r.MustRegister("int", Int) })

	require.NoError(t, r.Register("color", OneOf("red")))
	assert.Contains(t, r.Names(), "color")
	assert.IsIncreasing(t, r.Names())

	_, ok = NewRegistry().Lookup("string")
	assert.False(t, ok)
}
