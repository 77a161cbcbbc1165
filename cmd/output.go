package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"

	jsonPrefix = ""
	jsonIndent = "  "
	yamlIndent = 2
)

var outputFormats = []string{formatText, formatJSON, formatYAML}

func validateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return &UnsupportedFormatError{Format: format, Allowed: outputFormats}
}

// writeOutput prints v in the configured format; text delegates to printText.
func writeOutput(w io.Writer, format string, v any, printText func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case formatJSON:
		data, err := json.MarshalIndent(v, jsonPrefix, jsonIndent)
		if err != nil {
			return fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%w: %v", sharedErrors.ErrSerializationFailed, err)
		}
		return enc.Close()
	case formatText, "":
		return printText(w)
	default:
		return &UnsupportedFormatError{Format: format, Allowed: outputFormats}
	}
}
