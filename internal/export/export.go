package export

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/GustavoCaso/expensetrack/internal/expense"
	"github.com/GustavoCaso/expensetrack/internal/filter"
	"github.com/GustavoCaso/expensetrack/internal/logger"
	"github.com/GustavoCaso/expensetrack/internal/report"
)

// DefaultSettleDelay keeps the Exporting state visible before the payload is built.
const DefaultSettleDelay = 600 * time.Millisecond

var (
	ErrNoMatches        = errors.New("no records match the current filters")
	ErrExportInProgress = errors.New("an export is already in progress")
	ErrEmptyFilename    = errors.New("export filename cannot be empty")
)

// State is the delivery state of an Exporter.
type State int32

const (
	StateIdle State = iota
	StateExporting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExporting:
		return "exporting"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Deliverer hands a finished payload to its destination.
type Deliverer interface {
	Deliver(ctx context.Context, name, mimeType string, payload []byte) error
}

// Request describes one export. Filename must already be sanitized.
type Request struct {
	Filter   filter.Filter
	Format   Format
	Filename string
}

// Preview is the filtered selection with its summary.
type Preview struct {
	Records []expense.Expense
	Summary report.Summary
}

// CanExport is false when nothing matches; delivery is not allowed then.
func (p Preview) CanExport() bool {
	return p.Summary.MatchedCount > 0
}

// Result describes a delivered export.
type Result struct {
	Filename string
	MIMEType string
	Size     int
	Summary  report.Summary
}

type Option func(*Exporter)

func WithSettleDelay(d time.Duration) Option {
	return func(e *Exporter) {
		e.settleDelay = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// WithStateObserver registers fn to be called on every state transition.
func WithStateObserver(fn func(State)) Option {
	return func(e *Exporter) {
		e.observer = fn
	}
}

// Exporter runs filter, summary, encoder and delivery for a request.
// It allows a single export at a time.
type Exporter struct {
	deliverer   Deliverer
	logger      *logger.Logger
	settleDelay time.Duration
	now         func() time.Time
	observer    func(State)
	state       atomic.Int32
}

func NewExporter(deliverer Deliverer, l *logger.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		deliverer:   deliverer,
		logger:      l.With("component", "exporter"),
		settleDelay: DefaultSettleDelay,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Exporter) State() State {
	return State(e.state.Load())
}

// Preview filters the records and summarizes the selection.
func (e *Exporter) Preview(records []expense.Expense, f filter.Filter) Preview {
	matched := filter.Apply(records, f)
	return Preview{
		Records: matched,
		Summary: report.Summarize(matched),
	}
}

// Export encodes the records selected by req and delivers them as
// "<filename>.<ext>". The state returns to idle whatever the outcome.
func (e *Exporter) Export(ctx context.Context, records []expense.Expense, req Request) (Result, error) {
	if req.Filename == "" {
		return Result{}, ErrEmptyFilename
	}

	preview := e.Preview(records, req.Filter)
	if !preview.CanExport() {
		return Result{}, ErrNoMatches
	}

	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateExporting)) {
		return Result{}, ErrExportInProgress
	}
	e.notify(StateExporting)

	defer func() {
		e.state.Store(int32(StateIdle))
		e.notify(StateIdle)
	}()

	e.settle()

	payload, err := Encode(preview.Records, req.Format, e.now())
	if err != nil {
		e.logger.Error("export encoding failed", "format", req.Format.String(), "error", err)
		return Result{}, err
	}

	name := req.Format.Filename(req.Filename)
	if err = e.deliverer.Deliver(ctx, name, req.Format.MIMEType(), payload); err != nil {
		e.logger.Error("export delivery failed", "file", name, "error", err)
		return Result{}, fmt.Errorf("failed to deliver %s: %w", name, err)
	}

	e.logger.Info("export delivered",
		"file", name,
		"records", preview.Summary.MatchedCount,
		"total", preview.Summary.FormatTotal(),
		"bytes", len(payload),
	)

	return Result{
		Filename: name,
		MIMEType: req.Format.MIMEType(),
		Size:     len(payload),
		Summary:  preview.Summary,
	}, nil
}

// settle waits out the settle delay. It cannot be cancelled.
func (e *Exporter) settle() {
	if e.settleDelay <= 0 {
		return
	}
	time.Sleep(e.settleDelay)
}

func (e *Exporter) notify(s State) {
	if e.observer != nil {
		e.observer(s)
	}
}

// Encode dispatches the records to the encoder for format.
func Encode(records []expense.Expense, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatCSV:
		return CSV(records), nil
	case FormatJSON:
		return JSON(records, now)
	case FormatPDF:
		return PDF(records, now)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
