package bind

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-vulcanize/coerce"
	"github.com/goliatone/go-vulcanize/form"
)

type signup struct {
	Email      string        `form:"email"`
	Age        int           `form:"age"`
	Newsletter bool          `form:"newsletter"`
	Remind     time.Duration `form:"remind"`
	Token      string        `form:"token"`
}

func signupSchema() *form.Schema {
	return form.MustSchema(
		form.Attr("email", coerce.Trimmed, form.Required()),
		form.Attr("age", coerce.Int, form.Default(18)),
		form.Attr("newsletter", coerce.CheckBox, form.Default(false)),
		form.Attr("remind", coerce.String, form.Default("24h")),
		form.Attr("token", coerce.String, form.From("csrf_token"), form.Private()),
	)
}

func TestBuildNoOptions(t *testing.T) {
	runTestCases(t, []testCase{
		{
			name: "value target",
			run: func(t *testing.T) {
				f := signupSchema().New(form.Input{
					"email":      " a@example.com ",
					"age":        "30",
					"newsletter": "on",
					"csrf_token": "secret",
				})
				s, err := Build[signup](f)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				want := signup{Email: "a@example.com", Age: 30, Newsletter: true, Remind: 24 * time.Hour}
				if s != want {
					t.Fatalf("unexpected result: %#v", s)
				}
			},
		},
		{
			name: "pointer target",
			run: func(t *testing.T) {
				f := signupSchema().New(form.Input{"email": "b@example.com"})
				s, err := Build[*signup](f)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s == nil {
					t.Fatalf("expected non-nil pointer result")
				}
				if s.Email != "b@example.com" || s.Age != 18 || s.Newsletter {
					t.Fatalf("unexpected result: %#v", s)
				}
			},
		},
	})
}

func TestBuildCollectErrors(t *testing.T) {
	runTestCases(t, []testCase{
		{
			name: "required attribute missing",
			run: func(t *testing.T) {
				_, err := Build[signup](signupSchema().New(nil))
				if !errors.Is(err, ErrCollect) || !errors.Is(err, form.ErrAttributeRequired) {
					t.Fatalf("expected ErrCollect wrapping ErrAttributeRequired, got %v", err)
				}
				var stageErr *StageError
				if !errors.As(err, &stageErr) {
					t.Fatalf("expected StageError, got %T", err)
				}
				if stageErr.Meta["attribute"] != "email" || stageErr.Meta["kind"] != "required" {
					t.Fatalf("unexpected metadata: %+v", stageErr.Meta)
				}
			},
		},
		{
			name: "coercion failure",
			run: func(t *testing.T) {
				f := signupSchema().New(form.Input{"email": "a@example.com", "age": "old"})
				_, err := Build[signup](f)
				if !errors.Is(err, ErrCollect) || !errors.Is(err, form.ErrCoercion) || !errors.Is(err, coerce.ErrInvalid) {
					t.Fatalf("expected collect coercion error, got %v", err)
				}
			},
		},
		{
			name: "private attribute ignored by default",
			run: func(t *testing.T) {
				schema := signupSchema().MustExtend(
					form.Attr("token", coerce.String, form.From("csrf_token"), form.Private(), form.Required()),
				)
				s, err := Build[signup](schema.New(form.Input{"email": "a@example.com"}))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.Token != "" {
					t.Fatalf("private attribute leaked: %#v", s)
				}
			},
		},
	})
}

func TestBuildIncludePrivate(t *testing.T) {
	f := signupSchema().New(form.Input{"email": "a@example.com", "csrf_token": "secret"})
	s, err := Build[signup](f, WithIncludePrivate[signup]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Token != "secret" {
		t.Fatalf("expected private token bound, got %#v", s)
	}

	required := signupSchema().MustExtend(
		form.Attr("token", coerce.String, form.From("csrf_token"), form.Private(), form.Required()),
	)
	_, err = Build[signup](required.New(form.Input{"email": "a@example.com"}), WithIncludePrivate[signup]())
	if !errors.Is(err, form.ErrAttributeRequired) {
		t.Fatalf("expected required failure for private attribute, got %v", err)
	}
}

func TestBuildNilForm(t *testing.T) {
	_, err := Build[signup](nil)
	if !errors.Is(err, ErrOption) {
		t.Fatalf("expected ErrOption, got %v", err)
	}
}

func TestBuildPreprocessorError(t *testing.T) {
	preOpt := WithPreprocessFunc[signup](func(map[string]any) (map[string]any, error) {
		return nil, errors.New("boom")
	})

	_, err := Build[signup](signupSchema().New(form.Input{"email": "x"}), preOpt)
	if !errors.Is(err, ErrPreprocess) {
		t.Fatalf("expected ErrPreprocess, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %T", err)
	}
	if stageErr.Meta["preprocessor_index"] != 0 {
		t.Fatalf("expected preprocessor_index metadata, got %+v", stageErr.Meta)
	}
}

func TestBuildDecodeError(t *testing.T) {
	schema := form.MustSchema(form.Attr("age", coerce.String))
	_, err := Build[signup](schema.New(form.Input{"age": "many"}))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestBuildValidatorError(t *testing.T) {
	validate := WithValidator(func(s *signup) error {
		if s.Age < 21 {
			return errors.New("too young")
		}
		return nil
	})

	_, err := Build[signup](signupSchema().New(form.Input{"email": "x"}), validate)
	if !errors.Is(err, ErrValidate) {
		t.Fatalf("expected ErrValidate, got %v", err)
	}
	if err.Error() != "bind validate: too young" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func ExampleBuild() {
	type Contact struct {
		Name    string `form:"name"`
		Updates bool   `form:"updates"`
	}

	schema := form.MustSchema(
		form.Attr("name", coerce.Trimmed, form.Required()),
		form.Attr("updates", coerce.CheckBox, form.Default(false)),
	)
	f := schema.New(form.Input{"name": "  Ada ", "updates": "on"})

	c, err := Build[Contact](f)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s %v\n", c.Name, c.Updates)
	// Output: Ada true
}
