package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/export"
	"github.com/GustavoCaso/expensetrack/internal/filter"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

type focusField int

const (
	focusFormat focusField = iota
	focusFrom
	focusTo
	focusCategories
	focusFilename
	focusExport

	numberOfFields
)

const (
	dateInputWidth     = 10
	filenameInputWidth = 40
	defaultWidth       = 80
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(12)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Reverse(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Bold(true).Background(lipgloss.Color("69")).Foreground(lipgloss.Color("231"))
	disabledStyle = buttonStyle.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("250"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(1, 2)
)

// exportDoneMsg carries the outcome of an export started by the modal.
type exportDoneMsg struct {
	result export.Result
	err    error
}

type model struct {
	ctx      context.Context
	records  []expense.Expense
	exporter *export.Exporter

	format     export.Format
	from       textinput.Model
	to         textinput.Model
	categories expense.CategorySet
	chipCursor int
	filename   textinput.Model

	focus       focusField
	showPreview bool
	preview     export.Preview
	filterErr   error

	previewTable previewTable
	spinner      spinner.Model
	help         help.Model
	keys         modalKeymap

	exporting bool
	result    *export.Result
	err       error

	width int
}

func newDateInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = len(expense.DateLayout)
	ti.Width = dateInputWidth
	ti.SetValue(value)
	return ti
}

func initialModel(ctx context.Context, records []expense.Expense, exporter *export.Exporter, now time.Time, width int) model {
	defaults := filter.Default(now)

	filename := textinput.New()
	filename.Width = filenameInputWidth
	filename.SetValue(filter.DefaultFilename(now))

	if width <= 0 {
		width = defaultWidth
	}

	m := model{
		ctx:      ctx,
		records:  records,
		exporter: exporter,

		format:     export.FormatCSV,
		from:       newDateInput("YYYY-MM-DD", ""),
		to:         newDateInput("YYYY-MM-DD", *defaults.EndDate),
		categories: defaults.Categories,
		filename:   filename,

		focus:       focusFormat,
		showPreview: true,

		previewTable: newPreviewTable(nil, width),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         modalKeyMap(),

		width: width,
	}

	m.refresh()

	return m
}

// refresh recomputes the selection from the current inputs.
func (m *model) refresh() {
	f, err := filter.Parse(m.from.Value(), m.to.Value(), nil)
	if err != nil {
		m.filterErr = err
		m.preview = export.Preview{}
		m.previewTable = m.previewTable.SetRecords(nil)
		return
	}

	f.Categories = m.categories.Clone()
	m.filterErr = nil
	m.preview = m.exporter.Preview(m.records, f)
	m.previewTable = m.previewTable.SetRecords(m.preview.Records)
}

func (m model) request() export.Request {
	f, _ := filter.Parse(m.from.Value(), m.to.Value(), nil)
	f.Categories = m.categories.Clone()

	return export.Request{
		Filter:   f,
		Format:   m.format,
		Filename: m.filename.Value(),
	}
}

func (m model) canExport() bool {
	return !m.exporting &&
		m.filterErr == nil &&
		m.preview.CanExport() &&
		m.filename.Value() != ""
}

func (m model) exportCmd() tea.Cmd {
	ctx := m.ctx
	exporter := m.exporter
	records := m.records
	req := m.request()

	return func() tea.Msg {
		result, err := exporter.Export(ctx, records, req)
		return exportDoneMsg{result: result, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.previewTable = m.previewTable.UpdateDimensions(msg.Width - modalStyle.GetHorizontalFrameSize())
		return m, nil
	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.result = &msg.result
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// the modal is locked while an export runs
	if m.exporting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % numberOfFields)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + numberOfFields - 1) % numberOfFields)
	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
		return m, nil
	case key.Matches(msg, m.keys.Export) && (m.focus == focusExport || msg.String() != "enter"):
		return m.startExport()
	}

	switch m.focus {
	case focusFormat:
		return m.updateFormat(msg), nil
	case focusCategories:
		return m.updateCategories(msg), nil
	case focusExport:
		return m, nil
	default:
		return m.updateFocusedInput(msg)
	}
}

func (m model) startExport() (tea.Model, tea.Cmd) {
	if !m.canExport() {
		return m, nil
	}

	m.exporting = true
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd())
}

func (m model) setFocus(f focusField) (tea.Model, tea.Cmd) {
	m.focus = f
	m.from.Blur()
	m.to.Blur()
	m.filename.Blur()

	var cmd tea.Cmd
	switch f {
	case focusFrom:
		cmd = m.from.Focus()
	case focusTo:
		cmd = m.to.Focus()
	case focusFilename:
		cmd = m.filename.Focus()
	}

	return m, cmd
}

func (m model) updateFormat(msg tea.KeyMsg) model {
	formats := export.Formats()
	idx := int(m.format)

	switch {
	case key.Matches(msg, m.keys.Left):
		idx = (idx + len(formats) - 1) % len(formats)
	case key.Matches(msg, m.keys.Right):
		idx = (idx + 1) % len(formats)
	}

	m.format = formats[idx]
	return m
}

func (m model) updateCategories(msg tea.KeyMsg) model {
	all := expense.AllCategories()

	switch {
	case key.Matches(msg, m.keys.Left):
		m.chipCursor = (m.chipCursor + len(all) - 1) % len(all)
	case key.Matches(msg, m.keys.Right):
		m.chipCursor = (m.chipCursor + 1) % len(all)
	case key.Matches(msg, m.keys.Toggle):
		m.categories = m.categories.Clone()
		m.categories.Toggle(all[m.chipCursor])
		m.refresh()
	case key.Matches(msg, m.keys.ToggleAll):
		if m.categories.IsFull() {
			m.categories = expense.NewCategorySet()
		} else {
			m.categories = expense.FullCategorySet()
		}
		m.refresh()
	}

	return m
}

func (m model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case focusFrom:
		before := m.from.Value()
		m.from, cmd = m.from.Update(msg)
		if m.from.Value() != before {
			m.refresh()
		}
	case focusTo:
		before := m.to.Value()
		m.to, cmd = m.to.Update(msg)
		if m.to.Value() != before {
			m.refresh()
		}
	case focusFilename:
		m.filename, cmd = m.filename.Update(msg)
		if sanitized := filter.SanitizeFilename(m.filename.Value()); sanitized != m.filename.Value() {
			m.filename.SetValue(sanitized)
		}
	}

	return m, cmd
}

func (m model) label(f focusField, text string) string {
	if m.focus == f {
		return labelStyle.Inherit(focusedStyle).Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m model) formatView() string {
	tabs := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		if f == m.format {
			tabs = append(tabs, activeTab.Render(f.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(f.String()))
		}
	}

	return m.label(focusFormat, "Format") +
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...) +
		mutedStyle.Render("  "+m.format.Description())
}

func (m model) datesView() string {
	from := m.label(focusFrom, "From") + m.from.View()
	to := m.label(focusTo, "To") + m.to.View()

	view := lipgloss.JoinVertical(lipgloss.Left, from, to)
	if m.filterErr != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errorStyle.Render("  "+m.filterErr.Error()))
	}
	return view
}

func (m model) categoriesView() string {
	chips := make([]string, 0, len(expense.AllCategories()))
	for i, c := range expense.AllCategories() {
		box := "[ ]"
		if m.categories.Has(c) {
			box = "[x]"
		}

		chip := box + " " + c.String()
		if m.focus == focusCategories && i == m.chipCursor {
			chip = focusedStyle.Underline(true).Render(chip)
		}
		chips = append(chips, chip)
	}

	toggle := "select all"
	if m.categories.IsFull() {
		toggle = "deselect all"
	}

	return m.label(focusCategories, "Categories") +
		strings.Join(chips, "  ") +
		mutedStyle.Render("  (a: "+toggle+")")
}

func (m model) filenameView() string {
	return m.label(focusFilename, "Filename") +
		m.filename.View() +
		mutedStyle.Render("."+m.format.Extension())
}

func (m model) summaryView() string {
	if m.filterErr != nil || !m.preview.CanExport() {
		return warningStyle.Render("⚠ No records match your filters, adjust dates or categories.")
	}

	count := m.preview.Summary.MatchedCount
	plural := "s"
	if count == 1 {
		plural = ""
	}

	return successStyle.Render(fmt.Sprintf("✓ %d record%s ready to export as %s", count, plural, m.format)) +
		"   " + successStyle.Render(util.FormatMoney(m.preview.Summary.TotalAmount)+" total")
}

func (m model) previewView() string {
	if !m.showPreview {
		return mutedStyle.Render("Preview hidden (ctrl+p to show)")
	}
	if m.previewTable.Len() == 0 {
		return mutedStyle.Render("No records match the current filters.")
	}
	return m.previewTable.View()
}

func (m model) buttonView() string {
	if m.exporting {
		return m.spinner.View() + " Exporting..."
	}

	button := "Export " + m.format.String()
	style := buttonStyle
	if !m.canExport() {
		style = disabledStyle
	}
	if m.focus == focusExport {
		button = "> " + button + " <"
	}

	view := style.Render(button)
	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errorStyle.Render("Export failed: "+m.err.Error()))
	}
	return view
}

func (m model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Export Expenses"),
		m.formatView(),
		"",
		m.datesView(),
		"",
		m.categoriesView(),
		"",
		m.filenameView(),
		"",
		m.summaryView(),
		"",
		m.previewView(),
		"",
		m.buttonView(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modalStyle.Render(body), m.help.View(m.keys))
}
