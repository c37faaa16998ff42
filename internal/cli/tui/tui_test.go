package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/expensetrack/internal/delivery"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/export"
	"github.com/GustavoCaso/expensetrack/internal/testutil"
)

var now = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

func testModel(t *testing.T) (model, string) {
	t.Helper()

	dir := t.TempDir()
	logger := testutil.TestLogger(t)
	exporter := export.NewExporter(
		delivery.NewFileDeliverer(dir, logger),
		logger,
		export.WithSettleDelay(0),
		export.WithClock(func() time.Time { return now }),
	)

	return initialModel(context.Background(), expense.Samples(), exporter, now, 100), dir
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()

	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(model)
		require.True(t, ok)
	}
	return m
}

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	left     = tea.KeyMsg{Type: tea.KeyLeft}
	right    = tea.KeyMsg{Type: tea.KeyRight}
	space    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()
	if cmd == nil {
		t.Error("NewCommand() returned nil")
	}
	assert.Equal(t, "Interactive export of the recorded expenses", cmd.Description())
}

func TestInitialModel(t *testing.T) {
	m, _ := testModel(t)

	assert.Equal(t, focusFormat, m.focus)
	assert.Equal(t, export.FormatCSV, m.format)
	assert.Equal(t, "", m.from.Value())
	assert.Equal(t, "2026-02-20", m.to.Value())
	assert.True(t, m.categories.IsFull())
	assert.Equal(t, "expenses-2026-02-20", m.filename.Value())
	assert.Equal(t, 12, m.preview.Summary.MatchedCount)
	assert.Equal(t, 12, m.previewTable.Len())
	assert.True(t, m.canExport())
	assert.Contains(t, m.View(), "12 records ready to export as CSV")
	assert.Contains(t, m.View(), "$1860.93 total")
}

func TestFormatTabs(t *testing.T) {
	m, _ := testModel(t)

	m = send(t, m, right)
	assert.Equal(t, export.FormatJSON, m.format)

	m = send(t, m, right, right)
	assert.Equal(t, export.FormatCSV, m.format)

	m = send(t, m, left)
	assert.Equal(t, export.FormatPDF, m.format)
	assert.Contains(t, m.View(), ".pdf")
}

func TestFocusCycle(t *testing.T) {
	m, _ := testModel(t)

	m = send(t, m, tab)
	assert.Equal(t, focusFrom, m.focus)
	assert.True(t, m.from.Focused())

	m = send(t, m, tab)
	assert.Equal(t, focusTo, m.focus)
	assert.False(t, m.from.Focused())

	m = send(t, m, shiftTab, shiftTab, shiftTab)
	assert.Equal(t, focusExport, m.focus)
}

func TestCategoryChips(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tab, tab, tab)
	require.Equal(t, focusCategories, m.focus)

	// Food is under the cursor
	m = send(t, m, space)
	assert.False(t, m.categories.Has(expense.Food))
	assert.Equal(t, 9, m.preview.Summary.MatchedCount)

	m = send(t, m, right, space)
	assert.False(t, m.categories.Has(expense.Transport))
	assert.Equal(t, 6, m.preview.Summary.MatchedCount)

	m = send(t, m, runes("a"))
	assert.True(t, m.categories.IsFull())
	assert.Equal(t, 12, m.preview.Summary.MatchedCount)

	m = send(t, m, runes("a"))
	assert.Equal(t, 0, m.categories.Len())
	assert.Equal(t, 0, m.preview.Summary.MatchedCount)
	assert.False(t, m.canExport())
	assert.Contains(t, m.View(), "No records match your filters")
}

func TestDateInputs(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tab, runes("2026-02-01"))

	assert.Equal(t, "2026-02-01", m.from.Value())
	assert.Equal(t, 5, m.preview.Summary.MatchedCount)

	m = send(t, m, tab, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Error(t, m.filterErr)
	assert.False(t, m.canExport())
}

func TestFilenameIsSanitized(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tab, tab, tab, tab)
	require.Equal(t, focusFilename, m.focus)

	m = send(t, m, runes(" jan/feb"))
	assert.Equal(t, "expenses-2026-02-20-jan-feb", m.filename.Value())
}

func TestTypingDoesNotTriggerShortcuts(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tab, tab, tab, tab, runes("a"))

	assert.True(t, m.categories.IsFull())
	assert.Equal(t, "expenses-2026-02-20a", m.filename.Value())
}

func TestTogglePreview(t *testing.T) {
	m, _ := testModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.False(t, m.showPreview)
	assert.Contains(t, m.View(), "Preview hidden")
}

func TestExport(t *testing.T) {
	m, dir := testModel(t)
	m = send(t, m, right, shiftTab)
	require.Equal(t, focusExport, m.focus)

	updated, cmd := m.Update(enter)
	m = updated.(model)
	require.NotNil(t, cmd)
	assert.True(t, m.exporting)
	assert.Contains(t, m.View(), "Exporting...")

	// locked while exporting
	m = send(t, m, tab, esc)
	assert.Equal(t, focusExport, m.focus)

	done := m.exportCmd()()
	updated, cmd = m.Update(done)
	m = updated.(model)
	require.NotNil(t, cmd)
	assert.False(t, m.exporting)
	require.NotNil(t, m.result)
	assert.Equal(t, "expenses-2026-02-20.json", m.result.Filename)

	_, err := os.Stat(filepath.Join(dir, "expenses-2026-02-20.json"))
	assert.NoError(t, err)
}

func TestExportDisabledWithoutMatches(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tab, tab, tab, runes("a"))
	require.Equal(t, 0, m.preview.Summary.MatchedCount)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(model)
	assert.Nil(t, cmd)
	assert.False(t, m.exporting)
}

func TestExportFailureKeepsModalOpen(t *testing.T) {
	m, _ := testModel(t)
	m.exporting = true

	m = send(t, m, exportDoneMsg{err: errors.New("disk full")})
	assert.False(t, m.exporting)
	assert.Nil(t, m.result)
	assert.Contains(t, m.View(), "Export failed: disk full")
}

func TestWindowResize(t *testing.T) {
	m, _ := testModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	assert.Equal(t, 140, m.width)
}
