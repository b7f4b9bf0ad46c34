package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/application/handlers"
	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

var testProgress = []entities.ProgressEntry{
	{Project: "book.novx", Date: "2024-03-01", Count: 1000, WithUnused: 1200},
	{Project: "book.novx", Date: "2024-03-02", Count: 1500, WithUnused: 1500},
}

func TestFormatProgressJSON(t *testing.T) {
	var buf bytes.Buffer
	err := formatProgress(&buf, "json", testProgress)
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	require.Len(t, parsed, 2)
	assert.Equal(t, "2024-03-01", parsed[0]["date"])
	assert.InDelta(t, 1000, parsed[0]["count"], 0)
	assert.InDelta(t, 1200, parsed[0]["with_unused"], 0)
}

func TestFormatProgressCSV(t *testing.T) {
	var buf bytes.Buffer
	err := formatProgress(&buf, "csv", testProgress)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,count,with_unused", lines[0])
	assert.Equal(t, "2024-03-02,1500,1500", lines[2])
}

func TestFormatProgressMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := formatProgress(&buf, "markdown", testProgress)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "| Date | Words | With unused |")
	assert.Contains(t, buf.String(), "| 2024-03-01 | 1000 | 1200 |")
}

func TestFormatProgress_UnknownFormat(t *testing.T) {
	err := formatProgress(&bytes.Buffer{}, "xml", testProgress)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestDisplayInfo_SkipsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	err := displayInfo(&buf, &handlers.InfoResult{
		Title:     "Book",
		Languages: []string{"fr-FR", "de-DE"},
		Sections:  3,
		Words:     42,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Title:      Book\n")
	assert.Contains(t, out, "Languages:  de-DE, fr-FR\n")
	assert.Contains(t, out, "Words:      42 (0 with unused)\n")
	assert.NotContains(t, out, "Author")
}

func TestIsYes(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Yes", true},
		{" YES \n", true},
		{"", false},
		{"n", false},
		{"yeah", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, isYes(tt.answer))
		})
	}
}

func TestTerminalUI_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	ui := &terminalUI{out: &out}

	assert.False(t, ui.Ask("Overwrite?"))

	ui.yes = true
	assert.True(t, ui.Ask("Overwrite?"))

	ui.SetStatus("#Action canceled by user.")
	assert.Equal(t, "#Action canceled by user.\n", out.String())
}
