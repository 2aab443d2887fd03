// Package monitor renders live solver progress from a status registry to a terminal screen.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/parameter"
	"github.com/lixenwraith/subsetsum/status"
)

// ErrQuit is returned by Run when the user closes the view
var ErrQuit = errors.New("monitor: closed by user")

// Column layout: label, state, generation, best, iteration best, bits, elapsed
var columns = []struct {
	title string
	width int
}{
	{"RUN", 10},
	{"STATE", 9},
	{"GEN", 8},
	{"BEST", 16},
	{"ITERATION", 16},
	{"BITS", 6},
	{"TIME", 9},
}

var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleRunning = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleSolved  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStopped = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleFooter  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Monitor draws one row per run registered in a status registry
type Monitor struct {
	screen   tcell.Screen
	registry *status.Registry
	title    string
	refresh  time.Duration

	width, height int
}

// New creates a monitor over an initialized screen; the caller owns the screen lifecycle
func New(screen tcell.Screen, registry *status.Registry, title string) *Monitor {
	m := &Monitor{
		screen:   screen,
		registry: registry,
		title:    title,
		refresh:  parameter.MonitorRefresh,
	}
	m.width, m.height = screen.Size()
	return m
}

// Run redraws on every refresh tick until ctx is done or the user quits
// Returns nil on context completion, ErrQuit on user exit
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.refresh)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := m.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	m.Draw()
	for {
		select {
		case <-ctx.Done():
			// Final frame shows the completed state
			m.Draw()
			return nil

		case ev := <-eventChan:
			if !m.HandleEvent(ev) {
				return ErrQuit
			}

		case <-ticker.C:
			m.Draw()
		}
	}
}

// HandleEvent processes input; returns false when the view should close
func (m *Monitor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventResize:
		m.width, m.height = m.screen.Size()
		m.screen.Sync()
		m.Draw()
	}

	return true
}

// Draw renders the current registry contents
func (m *Monitor) Draw() {
	m.screen.Clear()

	m.drawText(0, 0, m.title, styleTitle)

	x := 0
	for _, col := range columns {
		m.drawText(x, 1, pad(col.title, col.width), styleHeader)
		x += col.width + 1
	}

	labels := m.registry.Labels()
	done := 0
	for i, label := range labels {
		y := 2 + i
		if y >= m.height-1 {
			break
		}

		s := m.registry.Progress(label).Snapshot()
		if s.Completed {
			done++
		}
		m.drawRow(y, s)
	}

	m.drawText(0, m.height-1,
		fmt.Sprintf("%d/%d completed  q: quit", done, len(labels)), styleFooter)

	m.screen.Show()
}

func (m *Monitor) drawRow(y int, s status.Snapshot) {
	style := styleRunning
	switch {
	case s.ThresholdSatisfied:
		style = styleSolved
	case s.Completed:
		style = styleStopped
	}

	cells := []string{
		s.Label,
		s.State,
		fmt.Sprintf("%d", s.Generation),
		fitnessCell(s.BestFitness, s.Published),
		fitnessCell(s.IterationFitness, s.Published),
		fmt.Sprintf("%d", s.IterationBitsSet),
		fmt.Sprintf("%.2fs", s.Elapsed.Seconds()),
	}

	x := 0
	for i, col := range columns {
		m.drawText(x, y, pad(cells[i], col.width), style)
		x += col.width + 1
	}
}

// drawText writes s from (x, y), clipped to the screen width
func (m *Monitor) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= m.width {
			return
		}
		m.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// pad truncates or right-pads s to width runes
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		// Mark truncation with a trailing ellipsis
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// fitnessCell hides unpublished values and the infeasible sentinel
func fitnessCell(v decimal.Decimal, published bool) string {
	if !published || v.Equal(genetic.MaxFitness) {
		return "-"
	}
	return v.String()
}
