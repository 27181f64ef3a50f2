package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ahrav/go-ticketeval/internal/domain"
	"github.com/ahrav/go-ticketeval/internal/evaluation"
	"github.com/ahrav/go-ticketeval/internal/ports"
)

// Pipeline drives the batch: it runs the row evaluator across all rows
// strictly in input order and assembles the output slice. Rows share no
// mutable state, but the reference behavior is sequential: no row starts
// before the previous row, including all its retries, has finished.
type Pipeline struct {
	evaluator *evaluation.RowEvaluator
	metrics   ports.MetricsCollector
	logger    *zap.Logger
}

// NewPipeline creates a pipeline around the given row evaluator.
// metrics may be nil to disable row-outcome counters.
func NewPipeline(evaluator *evaluation.RowEvaluator, metrics ports.MetricsCollector, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{evaluator: evaluator, metrics: metrics, logger: logger}
}

// Run evaluates all rows and returns one EvaluatedRow per input row, in the
// same order. Per-row failures are contained by the evaluator; Run itself
// cannot fail once started.
func (p *Pipeline) Run(ctx context.Context, rows []domain.TicketRow) []domain.EvaluatedRow {
	start := time.Now()

	if empty := countEmptyRows(rows); empty > 0 {
		p.logger.Warn("rows with empty cells will be skipped", zap.Int("rows", empty))
	}

	results := make([]domain.EvaluatedRow, 0, len(rows))
	for i, row := range rows {
		result := p.evaluator.EvaluateRow(ctx, i, len(rows), row)
		results = append(results, domain.EvaluatedRow{TicketRow: row, EvaluationResult: result})

		if p.metrics != nil {
			p.metrics.RecordCounter("rows_processed_total", 1, map[string]string{
				"status": rowStatus(result),
			})
		}
	}

	if p.metrics != nil {
		p.metrics.RecordLatency("pipeline_run", time.Since(start), nil)
	}

	return results
}

func countEmptyRows(rows []domain.TicketRow) int {
	empty := 0
	for _, row := range rows {
		if !row.HasData() {
			empty++
		}
	}
	return empty
}

func rowStatus(result domain.EvaluationResult) string {
	switch {
	case result.ContentScore != nil:
		return "scored"
	case result.ContentExplanation == evaluation.MissingDataReason:
		return "skipped"
	default:
		return "failed"
	}
}
