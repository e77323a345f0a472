package mcp

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed report-schema.json
var reportSchemaJSON []byte

// ErrReportSchemaViolation indicates the report payload does not match the
// embedded vulnerability report schema.
var ErrReportSchemaViolation = errors.New("report does not match schema")

// validateReportSchema checks the report payload shape against the embedded
// JSON schema. Field-level validation runs first; this catches structural
// problems the per-field checks cannot see.
func validateReportSchema(vulnerabilities []Vulnerability) error {
	payload, err := json.Marshal(vulnerabilities)
	if err != nil {
		return fmt.Errorf("encode report payload: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(reportSchemaJSON),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("validate report payload: %w", err)
	}

	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		descriptions = append(descriptions, verr.Field()+": "+verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrReportSchemaViolation, strings.Join(descriptions, "; "))
}
