// Package console implements terminal output with spinners, progress bars,
// tables, and score bars on top of pterm.
package console

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

// richTagRe matches [tag]...[/tag] style markup so messages written for
// the terminal can be reused in plain-text contexts.
var richTagRe = regexp.MustCompile(`\[/?[a-zA-Z0-9 _#=]*\]`)

// CleanRichTags strips rich markup tags from text.
func CleanRichTags(text string) string {
	return richTagRe.ReplaceAllString(text, "")
}

// Console writes formatted output to a terminal.
type Console struct {
	writer io.Writer
	quiet  bool
}

var _ types.ConsoleInterface = (*Console)(nil)

func NewConsole() *Console {
	return &Console{writer: os.Stdout}
}

// NewQuietConsole suppresses spinners and progress bars; log lines still
// print. Used when output is piped.
func NewQuietConsole(w io.Writer) *Console {
	return &Console{writer: w, quiet: true}
}

func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.writer, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.writer, format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.writer, a...)
}

func (c *Console) LogInfo(format string, a ...interface{}) {
	c.logWith(color.New(color.FgCyan), "INFO", format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	c.logWith(color.New(color.FgYellow), "WARN", format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	c.logWith(color.New(color.FgRed, color.Bold), "ERROR", format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	c.logWith(color.New(color.FgGreen), "OK", format, a...)
}

func (c *Console) logWith(col *color.Color, level, format string, a ...interface{}) {
	msg := CleanRichTags(fmt.Sprintf(format, a...))
	fmt.Fprintf(c.writer, "%s %s\n", col.Sprintf("[%s]", level), msg)
}

// Status starts a spinner with the given message.
func (c *Console) Status(message string) types.StatusHandle {
	if c.quiet {
		return noopStatus{}
	}
	spinner, err := pterm.DefaultSpinner.Start(CleanRichTags(message))
	if err != nil {
		return noopStatus{}
	}
	return &statusHandle{spinner: spinner}
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

func (s *statusHandle) Update(message string) {
	s.spinner.UpdateText(CleanRichTags(message))
}

func (s *statusHandle) Stop() {
	_ = s.spinner.Stop()
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

// ProgressWithTotal starts a progress bar over a known number of steps.
func (c *Console) ProgressWithTotal(title string, total int) types.ProgressHandle {
	if c.quiet || total <= 0 {
		return noopProgress{}
	}
	bar, err := pterm.DefaultProgressbar.WithTitle(CleanRichTags(title)).WithTotal(total).Start()
	if err != nil {
		return noopProgress{}
	}
	return &progressHandle{bar: bar}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

func (p *progressHandle) Increment() {
	p.bar.Increment()
}

func (p *progressHandle) Stop() {
	_, _ = p.bar.Stop()
}

type noopProgress struct{}

func (noopProgress) Increment() {}
func (noopProgress) Stop()      {}

// CreateTable returns an empty table builder.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// Table builds a boxed pterm table.
type Table struct {
	headers []string
	rows    [][]string
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.headers = append(t.headers, name)
}

func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = CleanRichTags(fmt.Sprint(cell))
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render() string {
	data := pterm.TableData{t.headers}
	for _, row := range t.rows {
		data = append(data, row)
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		var b strings.Builder
		for _, row := range data {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}
	return out
}

// DisplayScoreBars prints a labelled horizontal bar per point, scaled to
// the largest score. Zero points print nothing.
func (c *Console) DisplayScoreBars(title string, points []types.ScorePoint) {
	if len(points) == 0 {
		return
	}
	var max float64
	labelWidth := 0
	for _, p := range points {
		if p.Score > max {
			max = p.Score
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}
	if max <= 0 {
		max = 1
	}

	c.Println()
	pterm.DefaultSection.Println(CleanRichTags(title))
	const barWidth = 40
	for _, p := range points {
		n := int(p.Score / max * barWidth)
		bar := strings.Repeat("█", n)
		c.Printf("%-*s %s %.0f\n", labelWidth, p.Label, color.CyanString(bar), p.Score)
	}
	c.Println()
}
