// Package form declares typed attributes over untyped key/value input.
//
// A Schema lists attribute declarations in order. Each declaration names a
// Coercer and may be Required, carry a Default, read From another input key,
// or be Private. A Form wraps one Input with a Schema:
//
//	schema := form.MustSchema(
//		form.Attr("age", coerce.Int, form.Required()),
//		form.Attr("newsletter", coerce.CheckBox, form.Default(false)),
//		form.Attr("token", coerce.String, form.From("csrf_token"), form.Private()),
//	)
//	f := schema.New(form.FromValues(r.PostForm))
//	age, err := form.Value[int](f, "age")
//
// Accessor rules:
//   - Blank input (absent, nil, "") on a required attribute fails with ErrAttributeRequired.
//   - Blank input otherwise returns the Default without calling the coercer.
//   - A coercer failure is ErrCoercion unless a Fallback is passed to Get.
//
// Enumeration (Each, Enumerate, All, Map) visits public attributes only, in
// declaration order. Valid and Validate access every attribute, private ones included.
package form
