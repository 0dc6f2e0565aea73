package input

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// FileType names the document formats File and schemafile understand.
type FileType string

const (
	FileTypeYAML FileType = "yaml"
	FileTypeTOML FileType = "toml"
	FileTypeJSON FileType = "json"
)

func (f FileType) String() string {
	return string(f)
}

// Valid reports an error for unsupported file types.
func (f FileType) Valid() error {
	switch f {
	case FileTypeJSON, FileTypeYAML, FileTypeTOML:
		return nil
	default:
		return errors.New("invalid input file type", errors.CategoryValidation).
			WithTextCode("INVALID_FILE_TYPE").
			WithMetadata(map[string]any{
				"file_type": string(f),
				"valid_types": []string{
					string(FileTypeJSON),
					string(FileTypeYAML),
					string(FileTypeTOML),
				},
			})
	}
}

// Parser returns the koanf parser for the type. It panics on invalid types;
// check Valid first.
func (f FileType) Parser() koanf.Parser {
	switch f {
	case FileTypeJSON:
		return json.Parser()
	case FileTypeTOML:
		return toml.Parser()
	case FileTypeYAML:
		return yaml.Parser()
	default:
		panic(fmt.Errorf("invalid input file type: %s", f))
	}
}

// InferFileType picks a FileType from the path extension. Unknown
// extensions yield def when given, otherwise a FileType named after the
// extension that fails Valid.
func InferFileType(path string, def ...FileType) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		return FileTypeTOML
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	}
	if len(def) > 0 {
		return def[0]
	}
	return FileType(strings.TrimPrefix(ext, "."))
}
