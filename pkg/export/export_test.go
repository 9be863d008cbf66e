package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Gradebook",
		Headers: []string{"Course", "Assignment", "Grade"},
		Rows: [][]string{
			{"Go Basics", "Write a loop, with commas", "85 / 100"},
			{"Go Basics", "Closures", "N/A"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Course,Assignment,Grade\nGo Basics,\"Write a loop, with commas\",85 / 100\nGo Basics,Closures,N/A\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"only one"})
	_, err := NewCSVExporter().Render(table)
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Table{})
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnopqrstuvwxyz", 20))
}
