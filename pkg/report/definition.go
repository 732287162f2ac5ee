package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

//go:embed definition.yaml
var defaultDefinitionYAML []byte

// Default returns the built-in report definition.
func Default() (*Definition, error) {
	return Parse(defaultDefinitionYAML)
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, werrors.Config(err, werrors.ErrDefinitionParseFailed, "failed to parse report definition")
	}

	if violations := validateDocument(doc); len(violations) > 0 {
		return nil, werrors.Validation(werrors.ErrDefinitionInvalid,
			"report definition is invalid:\n  "+strings.Join(violations, "\n  ")).
			WithContext("violations", fmt.Sprintf("%d", len(violations)))
	}

	var file definitionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, werrors.Config(err, werrors.ErrDefinitionParseFailed, "failed to decode report definition")
	}
	return &Definition{file: file}, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.Config(err, werrors.ErrDefinitionParseFailed, "failed to read report definition").
			WithContext("path", path)
	}
	def, err := Parse(data)
	if err != nil {
		if re, ok := werrors.AsReportError(err); ok {
			re.WithContext("path", path)
		}
		return nil, err
	}
	return def, nil
}
