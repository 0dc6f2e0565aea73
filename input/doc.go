// Package input collects raw form input from request bodies, files,
// environment variables, command line flags, structs and literal maps.
//
//	c, err := input.NewCollector(input.WithInterpolation())
//	c.WithSource(
//		input.Values(map[string]any{"country": "US"}),
//		input.Optional(input.File("signup.yaml")),
//		input.Env("SIGNUP_", "__"),
//		input.Request(r),
//	)
//	f, err := c.CollectForm(ctx, schema)
//
// Sources load in priority order (values, struct, file, env, flags,
// request). Blank values such as an empty text field never override a
// value loaded by an earlier source.
package input
