// Package bind decodes a validated form into a typed struct.
//
// Build walks the form's public attributes through their accessors (so
// defaults, required checks, and coercion all apply), then decodes the
// resulting name/value map into T with mapstructure using the "form" tag.
//
//	type Signup struct {
//		Email      string `form:"email"`
//		Newsletter bool   `form:"newsletter"`
//	}
//	s, err := bind.Build[Signup](f, bind.WithValidatorFunc(func(s Signup) error { ... }))
//
// Option catalog:
//   - Defaults: WithDefaults, WithDefaultFunc.
//   - Collection: WithIncludePrivate.
//   - Preprocessing: WithPreprocess, WithPreprocessFunc, WithMerge,
//     WithEvalFuncs.
//   - Decoder behavior: WithDecoder, WithDecodeHooks, WithStrictKeys, WithWeakTyping,
//     WithTagName, WithoutDefaultHooks/WithDefaultHooks.
//   - Validation: WithValidator, WithValidatorFunc.
//   - Diagnostics: WithOptionError lets wrappers surface invalid option state.
package bind
