package evaluation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

func validResponse() map[string]any {
	return map[string]any{
		"content_score":       json.Number("4"),
		"content_explanation": "Addresses the main issue adequately.",
		"format_score":        json.Number("5"),
		"format_explanation":  "Well-structured and error-free.",
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	result, err := ValidateResponse(validResponse())
	require.NoError(t, err)

	require.NotNil(t, result.ContentScore)
	require.NotNil(t, result.FormatScore)
	assert.Equal(t, 4, *result.ContentScore)
	assert.Equal(t, 5, *result.FormatScore)
	assert.Equal(t, "Addresses the main issue adequately.", result.ContentExplanation)
	assert.Equal(t, "Well-structured and error-free.", result.FormatExplanation)
}

func TestValidateResponse_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		remove  []string
		missing []string
	}{
		{
			name:    "single missing field",
			remove:  []string{"format_explanation"},
			missing: []string{"format_explanation"},
		},
		{
			name:    "both scores missing",
			remove:  []string{"content_score", "format_score"},
			missing: []string{"content_score", "format_score"},
		},
		{
			name:    "empty object",
			remove:  []string{"content_score", "content_explanation", "format_score", "format_explanation"},
			missing: []string{"content_score", "content_explanation", "format_score", "format_explanation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validResponse()
			for _, field := range tt.remove {
				delete(raw, field)
			}

			_, err := ValidateResponse(raw)
			require.Error(t, err)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, domain.SchemaErrorMissingFields, schemaErr.Kind)
			assert.ElementsMatch(t, tt.missing, schemaErr.Fields)
		})
	}
}

func TestValidateResponse_ScoreEnforcement(t *testing.T) {
	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{name: "minimum score", value: json.Number("1"), valid: true},
		{name: "maximum score", value: json.Number("5"), valid: true},
		{name: "zero", value: json.Number("0"), valid: false},
		{name: "above range", value: json.Number("6"), valid: false},
		{name: "negative", value: json.Number("-1"), valid: false},
		{name: "numeric string", value: "5", valid: false},
		{name: "float literal", value: json.Number("5.0"), valid: false},
		{name: "fractional", value: json.Number("3.7"), valid: false},
		{name: "null", value: nil, valid: false},
		{name: "boolean", value: true, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validResponse()
			raw["format_score"] = tt.value

			result, err := ValidateResponse(raw)
			if tt.valid {
				require.NoError(t, err)
				require.NotNil(t, result.FormatScore)
				return
			}

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %v", err)
			assert.Equal(t, domain.SchemaErrorInvalidScore, schemaErr.Kind)
			assert.Equal(t, "format_score", schemaErr.Field)
		})
	}
}

func TestValidateResponse_NonStringExplanation(t *testing.T) {
	// Only presence is required for explanations; odd types are carried
	// through as text rather than rejected.
	raw := validResponse()
	raw["content_explanation"] = json.Number("42")

	result, err := ValidateResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", result.ContentExplanation)
}
