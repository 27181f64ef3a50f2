package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

// OutputColumns is the fixed output header: the input pair followed by the
// four evaluation columns, in this exact order.
var OutputColumns = []string{
	"ticket",
	"reply",
	"content_score",
	"content_explanation",
	"format_score",
	"format_explanation",
}

// WriteEvaluated writes the evaluated rows to path as UTF-8 CSV with
// exactly the six output columns, one row per input row in input order.
// Absent scores render as empty cells.
func WriteEvaluated(path string, rows []domain.EvaluatedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := writeEvaluated(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// writeEvaluated encodes rows as CSV onto w.
func writeEvaluated(w io.Writer, rows []domain.EvaluatedRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(OutputColumns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Ticket,
			row.Reply,
			scoreCell(row.ContentScore),
			row.ContentExplanation,
			scoreCell(row.FormatScore),
			row.FormatExplanation,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func scoreCell(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}
