package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ticketeval/internal/domain"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTickets_Valid(t *testing.T) {
	path := writeTempCSV(t, "ticket,reply\n"+
		"\"My order is late.\",\"We apologize for the delay.\"\n"+
		"\"Where is my refund?\",\"It was issued yesterday.\"\n")

	table, err := ReadTickets(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ticket", "reply"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "My order is late.", table.Rows[0].Ticket)
	assert.Equal(t, "We apologize for the delay.", table.Rows[0].Reply)
	assert.Equal(t, "Where is my refund?", table.Rows[1].Ticket)
}

func TestReadTickets_ExtraColumnsIgnored(t *testing.T) {
	path := writeTempCSV(t, "id,ticket,priority,reply\n"+
		"1,hello,high,hi there\n")

	table, err := ReadTickets(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "ticket", "priority", "reply"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "hello", table.Rows[0].Ticket)
	assert.Equal(t, "hi there", table.Rows[0].Reply)
}

func TestReadTickets_EmptyCellsKept(t *testing.T) {
	path := writeTempCSV(t, "ticket,reply\n"+
		"has ticket,\n"+
		",has reply\n")

	table, err := ReadTickets(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.False(t, table.Rows[0].HasData())
	assert.False(t, table.Rows[1].HasData())
	assert.Equal(t, "has ticket", table.Rows[0].Ticket)
	assert.Equal(t, "has reply", table.Rows[1].Reply)
}

func TestReadTickets_ShortRecords(t *testing.T) {
	path := writeTempCSV(t, "ticket,reply\n"+
		"only ticket\n")

	table, err := ReadTickets(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "only ticket", table.Rows[0].Ticket)
	assert.Empty(t, table.Rows[0].Reply)
}

func TestReadTickets_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		missing []string
	}{
		{name: "no reply column", header: "ticket,response", missing: []string{"reply"}},
		{name: "no ticket column", header: "issue,reply", missing: []string{"ticket"}},
		{name: "neither column", header: "a,b", missing: []string{"ticket", "reply"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.header+"\nx,y\n")

			_, err := ReadTickets(path)
			require.Error(t, err)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, domain.SchemaErrorMissingColumns, schemaErr.Kind)
			assert.ElementsMatch(t, tt.missing, schemaErr.Fields)
		})
	}
}

func TestReadTickets_FileNotFound(t *testing.T) {
	_, err := ReadTickets(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTickets_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := ReadTickets(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadTickets_UnicodePreserved(t *testing.T) {
	path := writeTempCSV(t, "ticket,reply\n"+
		"\"Problema con mi pedido número 1234 🚚\",\"Lamentamos el inconveniente.\"\n")

	table, err := ReadTickets(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Problema con mi pedido número 1234 🚚", table.Rows[0].Ticket)
}
