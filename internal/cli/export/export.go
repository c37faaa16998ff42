package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/GustavoCaso/expensetrack/internal/cli"
	"github.com/GustavoCaso/expensetrack/internal/expense"
	internalExport "github.com/GustavoCaso/expensetrack/internal/export"
	"github.com/GustavoCaso/expensetrack/internal/filter"
	"github.com/GustavoCaso/expensetrack/internal/util"
)

const spinnerInterval = 100 * time.Millisecond

type exportCommand struct {
	from       string
	to         string
	month      string
	categories []string
	format     string
	filename   string
	out        string
	preview    bool
	quiet      bool
}

func NewCommand() cli.Command {
	return &exportCommand{}
}

func (c *exportCommand) Description() string {
	return "Exports the filtered expenses as CSV, JSON or PDF"
}

func (c *exportCommand) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.from, "from", "", "first day to include, YYYY-MM-DD")
	fs.StringVar(&c.to, "to", "", "last day to include, YYYY-MM-DD (default today)")
	fs.StringVar(&c.month, "month", "", "export a whole month, YYYY-MM (overrides --from and --to)")
	fs.StringSliceVar(&c.categories, "category", []string{"all"}, "categories to include, repeatable or comma separated")
	fs.StringVar(&c.format, "format", "csv", "output format: csv, json or pdf")
	fs.StringVar(&c.filename, "filename", "", "file name without extension (default expenses-<today>)")
	fs.StringVar(&c.out, "out", "", "directory to write the file to (default from config)")
	fs.BoolVar(&c.preview, "preview", false, "show what would be exported without writing a file")
	fs.BoolVar(&c.quiet, "quiet", false, "do not show the progress spinner")
}

func (c *exportCommand) request(now time.Time) (internalExport.Request, error) {
	from, to := c.from, c.to
	if to == "" {
		to = now.Format(expense.DateLayout)
	}

	if c.month != "" {
		var err error
		from, to, err = util.MonthBounds(c.month)
		if err != nil {
			return internalExport.Request{}, err
		}
	}

	f, err := filter.Parse(from, to, c.categories)
	if err != nil {
		return internalExport.Request{}, err
	}

	format, err := internalExport.ParseFormat(c.format)
	if err != nil {
		return internalExport.Request{}, err
	}

	name := c.filename
	if name == "" {
		name = filter.DefaultFilename(now)
	}

	return internalExport.Request{
		Filter:   f,
		Format:   format,
		Filename: filter.SanitizeFilename(name),
	}, nil
}

func (c *exportCommand) Run(ctx context.Context, app *cli.App) error {
	req, err := c.request(app.Now())
	if err != nil {
		return err
	}

	deliverer := app.Deliverer(c.out)
	var opts []internalExport.Option
	if !c.quiet && !c.preview {
		opts = append(opts, internalExport.WithStateObserver(newSpinner(app.Out).observe))
	}
	exporter := app.NewExporter(deliverer, opts...)

	records := app.Session.Records()
	preview := exporter.Preview(records, req.Filter)

	if c.preview {
		printPreview(app.Out, preview, req, deliverer.Path(req.Format.Filename(req.Filename)))
		return nil
	}

	result, err := exporter.Export(ctx, records, req)
	if errors.Is(err, internalExport.ErrNoMatches) {
		fmt.Fprintln(app.Out, util.Warning("No expenses match the current filters, nothing was exported"))
		return err
	}
	if err != nil {
		fmt.Fprintln(app.Out, util.Failure("Export failed"))
		return err
	}

	fmt.Fprintf(app.Out, "%s %d expenses (%s) to %s, %d bytes\n",
		util.Success("Exported"),
		result.Summary.MatchedCount,
		util.FormatMoney(result.Summary.TotalAmount),
		deliverer.Path(result.Filename),
		result.Size,
	)

	return nil
}

func printPreview(w io.Writer, p internalExport.Preview, req internalExport.Request, path string) {
	if !p.CanExport() {
		fmt.Fprintln(w, util.Warning("No expenses match the current filters"))
		return
	}

	fmt.Fprintf(w, "%s %s\n", util.ColorOutput("Format:", "bold"), req.Format)
	fmt.Fprintf(w, "%s %s\n", util.ColorOutput("File:", "bold"), path)
	fmt.Fprintf(w, "%s %d expenses, total %s\n",
		util.ColorOutput("Selection:", "bold"),
		p.Summary.MatchedCount,
		util.FormatMoney(p.Summary.TotalAmount),
	)

	for _, r := range p.Records {
		fmt.Fprintf(w, "  %s  %-13s %10s  %s\n", r.Date(), r.Category(), util.FormatMoney(r.Amount()), r.Description())
	}
}

// spinner animates a progress bar while the exporter is busy.
type spinner struct {
	w    io.Writer
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newSpinner(w io.Writer) *spinner {
	return &spinner{w: w}
}

func (s *spinner) observe(state internalExport.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state {
	case internalExport.StateExporting:
		if s.stop != nil {
			return
		}
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.spin(s.stop, s.done)
	case internalExport.StateIdle:
		if s.stop == nil {
			return
		}
		close(s.stop)
		<-s.done
		s.stop, s.done = nil, nil
	}
}

func (s *spinner) spin(stop, done chan struct{}) {
	defer close(done)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription("Exporting..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			_ = bar.Finish()
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
