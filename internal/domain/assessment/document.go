package assessment

import (
	"errors"
	"fmt"
	"os"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

// Document is a questionnaire submission: the organization profile, its
// answers and optional per-item notes. JSON input parses as well since the
// YAML decoder accepts it.
type Document struct {
	Organization Profile                 `json:"organization" yaml:"organization"`
	Answers      AnswerSet               `json:"answers" yaml:"answers"`
	Notes        map[ChecklistKey]string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type documentFile struct {
	Organization Profile           `yaml:"organization"`
	Answers      yaml.Node         `yaml:"answers"`
	Notes        map[string]string `yaml:"notes"`
}

// LoadFile reads and parses a submission document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assessment file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a submission document and applies profile defaults.
func Parse(data []byte) (*Document, error) {
	var raw documentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrDeserializationFailed, err)
	}

	doc := &Document{
		Organization: raw.Organization,
		Answers:      AnswerSet{},
		Notes:        make(map[ChecklistKey]string, len(raw.Notes)),
	}
	doc.Organization.ApplyDefaults()

	switch raw.Answers.Kind {
	case 0:
		// no answers section: every item reads as "no"
	case yaml.MappingNode:
		answers := map[string]string{}
		if err := raw.Answers.Decode(&answers); err != nil {
			return nil, fmt.Errorf("%w: %v", sharedErrors.ErrDeserializationFailed, err)
		}
		doc.Answers = NewAnswerSet(answers)
	default:
		return nil, newValidationError("answers", "", sharedErrors.ErrAnswersNotMapping)
	}

	for k, v := range raw.Notes {
		doc.Notes[ChecklistKey(normalizeEnum(k))] = v
	}
	return doc, nil
}

// Validate checks both the profile and the answers.
func (d *Document) Validate() error {
	return errors.Join(d.Organization.Validate(), d.Answers.Validate())
}
