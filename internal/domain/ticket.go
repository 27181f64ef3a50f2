// Package domain defines the core entities of the ticket-reply evaluation
// pipeline: input rows, per-row evaluation results, and the run summary
// derived from a completed batch. The package has no external dependencies
// and no side effects.
package domain

import "strings"

// TicketRow is one input record: the original customer message and the
// reply under evaluation. A TicketRow is immutable once read.
type TicketRow struct {
	// Ticket is the original customer message.
	Ticket string `json:"ticket"`

	// Reply is the AI-generated response being evaluated.
	Reply string `json:"reply"`
}

// HasData reports whether both fields are non-empty after trimming
// whitespace. Rows without data are skipped without contacting the oracle.
func (r TicketRow) HasData() bool {
	return strings.TrimSpace(r.Ticket) != "" && strings.TrimSpace(r.Reply) != ""
}

// EvaluationResult holds the two quality scores and their justifications for
// a single row. A nil score pointer means the score is absent: the row was
// skipped for missing data or permanently failed after retries. Scores are
// either both present or both absent; the explanation fields always carry
// either the model's rationale or a human-readable skip/error reason.
type EvaluationResult struct {
	// ContentScore rates relevance, correctness, and completeness (1-5).
	ContentScore *int `json:"content_score"`

	// ContentExplanation is the rationale for the content score, or the
	// skip/error reason when the score is absent.
	ContentExplanation string `json:"content_explanation"`

	// FormatScore rates clarity, structure, and grammar (1-5).
	FormatScore *int `json:"format_score"`

	// FormatExplanation is the rationale for the format score, or the
	// skip/error reason when the score is absent.
	FormatExplanation string `json:"format_explanation"`
}

// AbsentResult returns an EvaluationResult with both scores absent and both
// explanations set to the given reason. It is the uniform shape for skipped
// and permanently failed rows.
func AbsentResult(reason string) EvaluationResult {
	return EvaluationResult{
		ContentExplanation: reason,
		FormatExplanation:  reason,
	}
}

// EvaluatedRow is the terminal representation of one row: the input pair
// plus its evaluation, written to output at the same ordinal position the
// input occupied.
type EvaluatedRow struct {
	TicketRow
	EvaluationResult
}

// ScoreStats aggregates one score dimension across a batch, ignoring rows
// where the score is absent.
type ScoreStats struct {
	// Count is the number of rows carrying a value for this dimension.
	Count int

	// Mean is the arithmetic mean of present values. Zero when Count is zero.
	Mean float64

	// Min and Max are the extremes of present values. Zero when Count is zero.
	Min int
	Max int
}

func (s *ScoreStats) observe(score int) {
	if s.Count == 0 || score < s.Min {
		s.Min = score
	}
	if s.Count == 0 || score > s.Max {
		s.Max = score
	}
	// Mean is accumulated as a running sum and finalized in Summarize.
	s.Mean += float64(score)
	s.Count++
}

func (s *ScoreStats) finalize() {
	if s.Count > 0 {
		s.Mean /= float64(s.Count)
	}
}

// RunSummary is the read-only aggregate over a completed batch. It is
// computed once after all rows finish and printed to the console; it is
// never persisted.
type RunSummary struct {
	// Total is the number of rows processed, including skipped and failed.
	Total int

	// Content and Format aggregate the two score dimensions.
	Content ScoreStats
	Format  ScoreStats

	// Failed counts rows with an absent content score, covering both
	// missing-data skips and permanent per-row failures.
	Failed int
}

// Summarize computes the run summary for a batch of evaluated rows.
func Summarize(rows []EvaluatedRow) RunSummary {
	summary := RunSummary{Total: len(rows)}

	for _, row := range rows {
		if row.ContentScore == nil {
			summary.Failed++
		} else {
			summary.Content.observe(*row.ContentScore)
		}
		if row.FormatScore != nil {
			summary.Format.observe(*row.FormatScore)
		}
	}

	summary.Content.finalize()
	summary.Format.finalize()

	return summary
}
