package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/mgpai22/asslrc/internal/config"
	"github.com/mgpai22/asslrc/internal/convert"
)

// decides between a table and plain lines for the summary
func useTable(mode string, w io.Writer) bool {
	switch mode {
	case config.SummaryTable:
		return true
	case config.SummaryPlain:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func writeSummary(w io.Writer, summary convert.Summary, asTable bool) {
	if asTable {
		fmt.Fprintln(w, renderSummaryTable(summary))
	} else {
		for _, r := range summary.NotConverted() {
			fmt.Fprintf(w, "%s not converted (%s)\n", filepath.Base(r.InputPath), reason(r))
		}
	}
	fmt.Fprintf(
		w,
		"Found %d files, converted %d.\n",
		summary.Found(),
		summary.Converted(),
	)
}

func reason(r convert.Result) string {
	switch r.Outcome {
	case convert.OutcomeNoEntries:
		return "no usable dialogue"
	case convert.OutcomeFailed:
		if r.Err != nil {
			return r.Err.Error()
		}
		return "failed"
	default:
		return string(r.Outcome)
	}
}

func renderSummaryTable(summary convert.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Outcome", "Lines", "Skipped", "Output"})

	for _, r := range summary.Results {
		skipped := 0
		for _, n := range r.Skipped {
			skipped += n
		}
		output := ""
		if r.Outcome == convert.OutcomeConverted || r.Outcome == convert.OutcomeExists {
			output = r.OutputPath
		}
		outcome := string(r.Outcome)
		if r.Outcome == convert.OutcomeNoEntries || r.Outcome == convert.OutcomeFailed {
			outcome = reason(r)
		}
		tw.AppendRow(table.Row{
			filepath.Base(r.InputPath),
			outcome,
			strconv.Itoa(r.Entries),
			strconv.Itoa(skipped),
			output,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	return tw.Render()
}
