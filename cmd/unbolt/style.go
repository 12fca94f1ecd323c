package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/physics"
	"github.com/vovakirdan/unbolt/internal/scene"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

var traceColors = map[scene.TraceKind]core.Color{
	scene.TraceSelect:  core.ColorCyan,
	scene.TraceSwap:    core.ColorBlue,
	scene.TraceLock:    core.ColorGray,
	scene.TracePivot:   core.ColorYellow,
	scene.TraceFall:    core.ColorOrange,
	scene.TraceDestroy: core.ColorRed,
	scene.TraceWin:     core.ColorBrightGreen,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// printer writes report lines to stdout, styled only on a terminal.
type printer struct {
	styled bool
}

func newPrinter() printer {
	return printer{styled: term.IsTerminal(int(os.Stdout.Fd()))}
}

func (p printer) paint(c core.Color, s string) string {
	if !p.styled {
		return s
	}
	return colorStyles[c].Render(s)
}

func (p printer) header(s string) {
	if p.styled {
		s = headerStyle.Render(s)
	}
	fmt.Println(s)
}

func (p printer) trace(e scene.TraceEvent) {
	fmt.Printf("  %s\n", p.paint(traceColors[e.Kind], e.String()))
}

func (p printer) outcome(won bool) string {
	if won {
		return p.paint(core.ColorBrightGreen, "WON")
	}
	return p.paint(core.ColorRed, "not won")
}

func (p printer) detail(d scene.DetailState) {
	var state string
	var c core.Color
	switch {
	case d.Destroyed:
		state, c = "destroyed", core.ColorRed
	case d.Mode == physics.Static:
		state, c = "locked", core.ColorGray
	case d.Joint != "":
		state, c = "pivots on "+d.Joint, core.ColorYellow
	default:
		state, c = "falling", core.ColorOrange
	}
	fmt.Printf("  %-12s %d/%d bolts  y=%-9.1f angle=%-6.2f %s\n", d.Name, d.Filled, d.Total, d.Y, d.Angle, p.paint(c, state))
}
