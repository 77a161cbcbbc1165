package cmd

import (
	"errors"
	"testing"

	"github.com/stacktrail/guardrail/internal/checker"
	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
)

func TestLoadAssessment(t *testing.T) {
	doc, err := loadAssessment(writeTempFile(t, "assessment.yaml", demoAssessmentYAML))
	if err != nil {
		t.Fatalf("loadAssessment returned error: %v", err)
	}
	if doc.Organization.Name != "Demo Law Firm" {
		t.Fatalf("unexpected organization: %+v", doc.Organization)
	}
	if doc.Notes["shared_logins"] == "" {
		t.Fatal("expected notes to be loaded")
	}
}

func TestLoadAssessmentErrors(t *testing.T) {
	if _, err := loadAssessment("  "); !errors.Is(err, sharedErrors.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}

	invalid := writeTempFile(t, "bad.yaml", "organization:\n  business_type: bakery\n  employee_count: 3\nanswers:\n  mfa_all: sometimes\n")
	_, err := loadAssessment(invalid)
	if !errors.Is(err, sharedErrors.ErrUnknownBusinessType) {
		t.Fatalf("expected ErrUnknownBusinessType, got %v", err)
	}
	if !errors.Is(err, sharedErrors.ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer alongside, got %v", err)
	}
}

func TestLoadScanResult(t *testing.T) {
	jsonPath := writeTempFile(t, "scan.json", `{"domain":"example.com","overall_status":"warning","issues":["no_hsts"]}`)
	result, err := loadScanResult(jsonPath)
	if err != nil {
		t.Fatalf("loadScanResult(json) returned error: %v", err)
	}
	if result.Domain != "example.com" || result.Status != checker.StatusWarning {
		t.Fatalf("unexpected scan result: %+v", result)
	}

	yamlPath := writeTempFile(t, "scan.yml", "domain: example.org\noverall_status: ok\nissues: []\n")
	result, err = loadScanResult(yamlPath)
	if err != nil {
		t.Fatalf("loadScanResult(yaml) returned error: %v", err)
	}
	if result.Domain != "example.org" || result.Status != checker.StatusOK {
		t.Fatalf("unexpected scan result: %+v", result)
	}
}

func TestLoadScanResultErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unsupported extension", "scan.txt", "domain: example.com", sharedErrors.ErrUnsupportedFormat},
		{"malformed json", "scan.json", "{", sharedErrors.ErrDeserializationFailed},
		{"missing domain", "scan.json", `{"overall_status":"ok"}`, sharedErrors.ErrMissingRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScanResult(writeTempFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
