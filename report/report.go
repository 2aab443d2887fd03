// Package report renders solver and benchmark summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/subsetsum/benchmark"
	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#2CD7C7")
	ColorBorder  = lipgloss.Color("#16858E")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Box     lipgloss.Style
	Cell    lipgloss.Style
	Header  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorAccent),
		Label:   r.NewStyle().Bold(true).Width(14),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		Cell:   r.NewStyle().PaddingRight(2),
		Header: r.NewStyle().Bold(true).Underline(true).PaddingRight(2),
	}
}

// Printer writes styled output; colors follow the capabilities of the writer
type Printer struct {
	w      io.Writer
	styles styles
}

// New creates a printer for w
func New(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// ProgressLine formats the per-generation line of the solve commands
func ProgressLine(out driver.Outcome) string {
	return fmt.Sprintf("[%05d] Fitness: %s Subset size: %d",
		out.Generation, fitness(out.IterationBestFitness), out.IterationBestBitsSet)
}

// Progress writes ProgressLine(out)
func (p *Printer) Progress(out driver.Outcome) {
	fmt.Fprintln(p.w, ProgressLine(out))
}

// Subset renders the final result of a single-set run
func (p *Printer) Subset(out driver.Outcome, target decimal.Decimal, elapsed time.Duration) {
	var solution []decimal.Decimal
	if len(out.Best) > 0 {
		solution = out.Best[0]
	}

	rows := [][2]string{
		{"Target", target.String()},
		{"Fitness", fitness(out.BestFitness)},
		{"Subset size", fmt.Sprint(len(solution))},
		{"Subset sum", total(solution).String()},
		{"Subset", join(solution)},
	}
	p.result("Subset sum", out, rows, elapsed)
}

// Balance renders the final result of a two-set run
func (p *Printer) Balance(out driver.Outcome, elapsed time.Duration) {
	var first, second []decimal.Decimal
	if len(out.Best) == 2 {
		first, second = out.Best[0], out.Best[1]
	}

	rows := [][2]string{
		{"Fitness", fitness(out.BestFitness)},
		{"First size", fmt.Sprint(len(first))},
		{"First sum", total(first).String()},
		{"First", join(first)},
		{"Second size", fmt.Sprint(len(second))},
		{"Second sum", total(second).String()},
		{"Second", join(second)},
	}
	p.result("Balance", out, rows, elapsed)
}

func (p *Printer) result(title string, out driver.Outcome, rows [][2]string, elapsed time.Duration) {
	s := p.styles

	verdict := s.Warning.Render("threshold not reached")
	if out.ThresholdSatisfied {
		verdict = s.Success.Render("threshold satisfied")
	}

	lines := []string{
		s.Title.Render(title) + "  " + verdict,
		s.Label.Render("Generations") + fmt.Sprint(out.Generation),
	}
	for _, r := range rows {
		lines = append(lines, s.Label.Render(r[0])+r[1])
	}
	lines = append(lines, s.Label.Render("Total")+fmt.Sprintf("%.5f (s)", elapsed.Seconds()))

	fmt.Fprintln(p.w, s.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// Bench renders a per-run table and the aggregate summary
func (p *Printer) Bench(r *benchmark.Report) {
	s := p.styles

	header := []string{"RUN", "TARGET", "GENERATIONS", "BEST FITNESS", "TIME", "RESULT"}
	cols := make([][]string, len(header))
	for i, h := range header {
		cols[i] = []string{s.Header.Render(h)}
	}

	for _, run := range r.Runs {
		target := "-"
		if !run.Target.IsZero() {
			target = run.Target.String()
		}
		result := s.Warning.Render("unsolved")
		if run.Solved {
			result = s.Success.Render("solved")
		}
		cells := []string{
			fmt.Sprintf("%03d", run.Index),
			target,
			fmt.Sprint(run.Generations),
			fitness(run.BestFitness),
			fmt.Sprintf("%.3fs", run.Elapsed.Seconds()),
			result,
		}
		for i, c := range cells {
			cols[i] = append(cols[i], s.Cell.Render(c))
		}
	}

	blocks := make([]string, len(cols))
	for i, c := range cols {
		blocks[i] = lipgloss.JoinVertical(lipgloss.Left, c...)
	}
	fmt.Fprintln(p.w, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))

	summary := []string{
		s.Title.Render("Benchmark") + "  " + s.Muted.Render(r.ID.String()),
		s.Label.Render("Mode") + r.Mode,
		s.Label.Render("Solved") + fmt.Sprintf("%d/%d", r.Solved(), len(r.Runs)),
		s.Label.Render("Generations") + fmt.Sprintf("%.1f mean", r.MeanGenerations()),
		s.Label.Render("Run time") + fmt.Sprintf("%.3fs mean", r.MeanElapsed().Seconds()),
		s.Label.Render("Total") + fmt.Sprintf("%.3fs", r.Elapsed.Seconds()),
	}
	fmt.Fprintln(p.w, s.Box.Render(lipgloss.JoinVertical(lipgloss.Left, summary...)))
}

// fitness renders the infeasible sentinel as a dash
func fitness(v decimal.Decimal) string {
	if !v.LessThan(genetic.MaxFitness) {
		return "-"
	}
	return v.String()
}

func total(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum
}

func join(values []decimal.Decimal) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
