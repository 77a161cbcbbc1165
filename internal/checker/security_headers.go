package checker

import (
	"net/http"
	"strings"
)

// securityHeaderSpec describes one header the scanner requires.
type securityHeaderSpec struct {
	Name           string
	Severity       string
	Satisfied      func(value string) bool
	Recommendation string
}

// securityHeaderSpecs lists the required headers in report order.
var securityHeaderSpecs = []securityHeaderSpec{
	{
		Name:           "Strict-Transport-Security",
		Severity:       "high",
		Satisfied:      hstsPresent,
		Recommendation: "Add 'Strict-Transport-Security: max-age=31536000; includeSubDomains'",
	},
	{
		Name:           "X-Content-Type-Options",
		Severity:       "medium",
		Satisfied:      isNoSniff,
		Recommendation: "Add 'X-Content-Type-Options: nosniff'",
	},
}

// AnalyzeSecurityHeaders evaluates response headers. Header names are matched
// case-insensitively; the captured map uses lower-cased names.
func AnalyzeSecurityHeaders(headers http.Header) HeaderCheck {
	result := HeaderCheck{Headers: make(map[string]string, len(headers))}
	for name, values := range headers {
		result.Headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}

	for _, spec := range securityHeaderSpecs {
		value, present := result.Headers[strings.ToLower(spec.Name)]
		ok := present && spec.Satisfied(value)
		switch spec.Name {
		case "Strict-Transport-Security":
			result.HSTS = ok
		case "X-Content-Type-Options":
			result.XContentTypeOptions = ok
		}
		if !ok {
			result.Missing = append(result.Missing, spec.Name)
			result.Recommendations = append(result.Recommendations, spec.Severity+": "+spec.Recommendation)
		}
	}
	return result
}

// hstsPresent only requires the header to exist; policy strength is not graded.
func hstsPresent(string) bool {
	return true
}

func isNoSniff(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "nosniff")
}
