package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stacktrail/guardrail/internal/checker"
	"github.com/stacktrail/guardrail/internal/domain/assessment"
	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

// loadAssessment reads a questionnaire file and rejects invalid values before
// anything is scored.
func loadAssessment(path string) (*assessment.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: --input", sharedErrors.ErrMissingRequired)
	}
	doc, err := assessment.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// loadScanResult reads a scan previously written with `guardrail scan -o json|yaml`.
func loadScanResult(path string) (*checker.ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan result: %w", err)
	}

	var result checker.ScanResult
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &result)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &result)
	default:
		return nil, &UnsupportedFormatError{Format: ext, Allowed: []string{".json", ".yaml", ".yml"}}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sharedErrors.ErrDeserializationFailed, err)
	}
	if result.Domain == "" {
		return nil, fmt.Errorf("%s: %w: domain", path, sharedErrors.ErrMissingRequired)
	}
	return &result, nil
}
