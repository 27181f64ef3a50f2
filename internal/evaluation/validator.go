// Package evaluation implements the per-row evaluation core: response
// schema validation, the retry-wrapped scoring client, and the row
// evaluator that isolates per-row failures so a batch always completes.
package evaluation

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

// requiredFields lists the four keys every oracle response must carry,
// in output-column order.
var requiredFields = []string{
	"content_score",
	"content_explanation",
	"format_score",
	"format_explanation",
}

// ValidateResponse checks a raw decoded oracle response against the required
// evaluation schema and converts it into a domain.EvaluationResult.
// The raw map must come from a json.Decoder with UseNumber enabled so that
// numeric fields arrive as json.Number and integer-ness can be enforced.
//
// It fails with a domain.SchemaError naming the exact missing keys when any
// required field is absent, and with an invalid-score SchemaError when a
// score is not an integer between 1 and 5. Values are never coerced: a
// string "5" and a float 5.0 are both rejected. This guards against the
// oracle returning loosely-typed JSON.
func ValidateResponse(raw map[string]any) (domain.EvaluationResult, error) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return domain.EvaluationResult{}, domain.NewMissingFieldsError(missing)
	}

	contentScore, err := parseScore("content_score", raw["content_score"])
	if err != nil {
		return domain.EvaluationResult{}, err
	}
	formatScore, err := parseScore("format_score", raw["format_score"])
	if err != nil {
		return domain.EvaluationResult{}, err
	}

	return domain.EvaluationResult{
		ContentScore:       &contentScore,
		ContentExplanation: asText(raw["content_explanation"]),
		FormatScore:        &formatScore,
		FormatExplanation:  asText(raw["format_explanation"]),
	}, nil
}

// parseScore enforces that a score value is a JSON integer within [1, 5].
// json.Number preserves the literal representation, so "5.0" is still
// distinguishable from "5" and rejected.
func parseScore(field string, value any) (int, error) {
	num, ok := value.(json.Number)
	if !ok {
		return 0, domain.NewInvalidScoreError(field, value)
	}

	score, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return 0, domain.NewInvalidScoreError(field, num.String())
	}
	if score < 1 || score > 5 {
		return 0, domain.NewInvalidScoreError(field, score)
	}

	return int(score), nil
}

// asText renders an explanation value as a string. Explanations are only
// required to be present; a non-string value is carried through verbatim
// rather than rejected.
func asText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
