// Package report renders the survey statistics as console text:
// frequency tables, summary lines and histograms drawn as bars.
package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Colour palette
var (
	Primary = lipgloss.Color("#101F38")
	Accent  = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#6b7280")
	Success = lipgloss.Color("#8BC34A")

	// Histogram bars, one colour per series.
	Chart1 = lipgloss.Color("#2196F3")
	Chart2 = lipgloss.Color("#e57373")
	Chart3 = lipgloss.Color("#4db6ac")
)

// Styles holds the styles of the report components.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Success lipgloss.Style
	Bars    []lipgloss.Style
}

// NewStyles returns the report styles for the given renderer.  If color
// is false the styles carry no colours or text attributes.
func NewStyles(r *lipgloss.Renderer, color bool) Styles {

	if !color {
		plain := r.NewStyle()
		return Styles{
			Title:   plain,
			Label:   plain,
			Value:   plain,
			Muted:   plain,
			Header:  plain.Padding(0, 1),
			Cell:    plain.Padding(0, 1),
			Success: plain,
			Bars:    []lipgloss.Style{plain},
		}
	}

	return Styles{
		Title: r.NewStyle().
			Foreground(Primary).
			Bold(true),

		Label: r.NewStyle().
			Foreground(Muted),

		Value: r.NewStyle().
			Bold(true),

		Muted: r.NewStyle().
			Foreground(Muted),

		Header: r.NewStyle().
			Bold(true).
			Padding(0, 1),

		Cell: r.NewStyle().
			Padding(0, 1),

		Success: r.NewStyle().
			Foreground(Success).
			Bold(true),

		Bars: []lipgloss.Style{
			r.NewStyle().Foreground(Chart1),
			r.NewStyle().Foreground(Chart2),
			r.NewStyle().Foreground(Chart3),
		},
	}
}

// Bar returns the style of the k'th bar series.
func (s Styles) Bar(k int) lipgloss.Style {
	return s.Bars[k%len(s.Bars)]
}
