// Package tabular reads and writes the CSV tables that bound the pipeline:
// a ticket/reply input table and the six-column evaluated output table.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

// Required input column names.
const (
	ColumnTicket = "ticket"
	ColumnReply  = "reply"
)

// Table holds the parsed input: the original header (for logging) and the
// rows projected onto the required columns. Extra columns are ignored.
type Table struct {
	// Columns is the full input header in file order.
	Columns []string

	// Rows are the ticket/reply pairs in input order.
	Rows []domain.TicketRow
}

// ReadTickets reads the input table from path. It fails if the file does
// not exist or if either required column (ticket, reply) is missing from
// the header; rows with empty cells are kept and flow into the pipeline's
// skip path.
func ReadTickets(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	table, err := parseTickets(f)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// parseTickets decodes CSV content into a Table.
func parseTickets(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	// Rows may legitimately have trailing empty cells trimmed by the
	// producer; missing cells read as empty strings.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, fmt.Errorf("input is empty")
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	ticketIdx, replyIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnTicket:
			ticketIdx = i
		case ColumnReply:
			replyIdx = i
		}
	}

	var missing []string
	if ticketIdx < 0 {
		missing = append(missing, ColumnTicket)
	}
	if replyIdx < 0 {
		missing = append(missing, ColumnReply)
	}
	if len(missing) > 0 {
		return Table{}, domain.NewMissingColumnsError(missing)
	}

	table := Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row %d: %w", len(table.Rows)+1, err)
		}

		table.Rows = append(table.Rows, domain.TicketRow{
			Ticket: cell(record, ticketIdx),
			Reply:  cell(record, replyIdx),
		})
	}

	return table, nil
}

func cell(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}
