// Package schemafile declares form schemas in JSON, YAML or TOML:
//
//	attributes:
//	  - name: quantity
//	    type: int
//	    required: true
//	  - name: size
//	    options: [s, m, l]
//	    default: m
//	  - name: tags
//	    type: list:trimmed
//	  - name: token
//	    type: uuid
//	    from: csrf_token
//	    private: true
//
// Types are looked up in a coerce.Registry. A "list:" prefix applies the
// named coercer to every value of a multi-value field.
package schemafile
