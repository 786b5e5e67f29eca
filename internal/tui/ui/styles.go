package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/worktimer/internal/daytype"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// History rows
	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	RowDate     lipgloss.Style
	RowHours    lipgloss.Style

	// Day types
	DayWorkday     lipgloss.Style
	DayWeekend     lipgloss.Style
	DayHoliday     lipgloss.Style
	DayRestdayWork lipgloss.Style

	// Countdown
	Countdown     lipgloss.Style
	CountdownOver lipgloss.Style
	EndTime       lipgloss.Style

	// Dashboard figures
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Overtime  lipgloss.Style
	Deficit   lipgloss.Style
	Muted     lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette is the set of semantic colors a Styles is built from.
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	err       lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	selection lipgloss.TerminalColor
}

// DefaultStyles returns styles built from a fixed 256-color palette.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),  // Purple
		secondary: lipgloss.Color("39"),  // Cyan
		accent:    lipgloss.Color("212"), // Pink
		muted:     lipgloss.Color("240"), // Gray
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		err:       lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		selection: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// This maps theme colors to semantic UI elements:
// - Primary: Purple (tabs, titles, workdays)
// - Secondary: Cyan (dates, keys, weekends)
// - Accent: BrightPurple (countdown, compensated workdays)
// - Muted: BrightBlack (inactive elements, labels)
// - Success/Warning/Error: Green/Yellow/Red (overtime, holidays, deficit)
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		err:       r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		selection: r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RowSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		RowDate: lipgloss.NewStyle().
			Foreground(p.secondary),
		RowHours: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(9).
			Align(lipgloss.Right),

		DayWorkday: lipgloss.NewStyle().
			Foreground(p.primary),
		DayWeekend: lipgloss.NewStyle().
			Foreground(p.secondary),
		DayHoliday: lipgloss.NewStyle().
			Foreground(p.warning),
		DayRestdayWork: lipgloss.NewStyle().
			Foreground(p.accent),

		Countdown: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		CountdownOver: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		EndTime: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		Overtime: lipgloss.NewStyle().
			Foreground(p.success),
		Deficit: lipgloss.NewStyle().
			Foreground(p.err),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(60),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.err),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}

// DayType returns the style used to label days of type t.
func (s Styles) DayType(t daytype.DayType) lipgloss.Style {
	switch t {
	case daytype.Weekend:
		return s.DayWeekend
	case daytype.Holiday:
		return s.DayHoliday
	case daytype.RestdayWork:
		return s.DayRestdayWork
	}
	return s.DayWorkday
}
