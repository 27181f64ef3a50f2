package evaluation

import (
	"context"

	"go.uber.org/zap"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

// MissingDataReason is recorded in both explanation fields when a row is
// skipped for an empty ticket or reply. The skip is not an error; the
// oracle is never contacted for such rows.
const MissingDataReason = "Missing data"

// RowEvaluator orchestrates the scoring client for one row at a time.
// It is the isolation boundary of the pipeline: every failure path resolves
// to a result with absent scores and an explanatory message, so a single
// bad row can never abort the batch or affect sibling rows.
type RowEvaluator struct {
	scorer TicketScorer
	logger *zap.Logger
}

// NewRowEvaluator creates a row evaluator around the given scoring client.
func NewRowEvaluator(scorer TicketScorer, logger *zap.Logger) *RowEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RowEvaluator{scorer: scorer, logger: logger}
}

// EvaluateRow evaluates one row and never fails. Rows with an empty ticket
// or reply (after trimming) are skipped without an oracle call; rows whose
// scoring exhausts the retry budget are recorded as permanent failures with
// an "Error: ..." explanation. index is zero-based and used only for
// progress logging against total.
func (e *RowEvaluator) EvaluateRow(ctx context.Context, index, total int, row domain.TicketRow) domain.EvaluationResult {
	e.logger.Info("evaluating row", zap.Int("row", index+1), zap.Int("total", total))

	if !row.HasData() {
		e.logger.Warn("empty ticket or reply, skipping row", zap.Int("row", index+1))
		return domain.AbsentResult(MissingDataReason)
	}

	result, err := e.scorer.Evaluate(ctx, row.Ticket, row.Reply)
	if err != nil {
		e.logger.Error("permanent row failure",
			zap.Int("row", index+1),
			zap.Error(err))
		return domain.AbsentResult("Error: " + err.Error())
	}

	e.logger.Info("row evaluated",
		zap.Int("row", index+1),
		zap.Intp("content_score", result.ContentScore),
		zap.Intp("format_score", result.FormatScore))

	return result
}
