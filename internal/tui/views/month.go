package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/tui/ui"
)

// MonthModel shows the dashboard of one month and a row per day.
type MonthModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	month   time.Time
	result  *service.MonthResult
	records map[string]service.DayRecord
	cursor  int
	offset  int
	loading bool
	err     error

	notice    string
	actionErr error
}

// NewMonthModel creates a month view starting at the current month
func NewMonthModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) MonthModel {
	return MonthModel{
		services: services,
		styles:   styles,
		keys:     keys,
		month:    timeutil.StartOfMonth(services.Now()),
		cursor:   -1,
		loading:  true,
	}
}

// monthLoadedMsg is sent when the month dashboard and history are loaded
type monthLoadedMsg struct {
	month   time.Time
	result  *service.MonthResult
	history []service.DayRecord
	err     error
}

// monthActionMsg reports the outcome of a day type change
type monthActionMsg struct {
	notice string
	err    error
}

// Init implements tea.Model
func (m MonthModel) Init() tea.Cmd {
	return m.loadMonth()
}

// Update implements tea.Model
func (m MonthModel) Update(msg tea.Msg) (MonthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			return m.showMonth(timeutil.PreviousMonth(m.month))
		case key.Matches(msg, m.keys.NextMonth):
			return m.showMonth(timeutil.NextMonth(m.month))
		case key.Matches(msg, m.keys.ThisMonth):
			return m.showMonth(timeutil.StartOfMonth(m.services.Now()))
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.updateOffset()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.dates())-1 {
				m.cursor++
				m.updateOffset()
			}
			return m, nil
		case key.Matches(msg, m.keys.CycleDayType):
			if date, ok := m.selectedDate(); ok {
				next := nextDayType(m.dayTypeOf(date))
				return m, m.setDayType(date, next)
			}
			return m, nil
		case key.Matches(msg, m.keys.ResetDayType):
			if date, ok := m.selectedDate(); ok {
				return m, m.resetDayType(date)
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadMonth()
		}

	case monthLoadedMsg:
		if !msg.month.Equal(m.month) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.result = msg.result
		m.records = make(map[string]service.DayRecord, len(msg.history))
		for _, rec := range msg.history {
			m.records[rec.Date] = rec
		}
		if m.cursor < 0 || m.cursor >= len(m.dates()) {
			m.cursor = m.initialCursor()
		}
		m.updateOffset()
		return m, nil

	case monthActionMsg:
		m.notice = msg.notice
		m.actionErr = msg.err
		return m, m.loadMonth()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m MonthModel) showMonth(month time.Time) (MonthModel, tea.Cmd) {
	m.month = month
	m.cursor = -1
	m.offset = 0
	m.notice = ""
	m.actionErr = nil
	return m, m.loadMonth()
}

// initialCursor points at today when the current month is shown, else at the first day.
func (m MonthModel) initialCursor() int {
	today := timeutil.DateKey(m.services.Now())
	for i, d := range m.dates() {
		if d == today {
			return i
		}
	}
	return 0
}

func (m MonthModel) dates() []string {
	if m.result == nil {
		return nil
	}
	return m.result.Stats.Dates
}

func (m MonthModel) selectedDate() (string, bool) {
	dates := m.dates()
	if m.cursor < 0 || m.cursor >= len(dates) {
		return "", false
	}
	return dates[m.cursor], true
}

func (m MonthModel) dayTypeOf(date string) daytype.DayType {
	if m.result != nil {
		if calc, ok := m.result.Stats.Day(date); ok {
			return calc.DayType
		}
	}
	return daytype.Default(date)
}

func (m MonthModel) visibleRows() int {
	if m.height <= 0 {
		return 10
	}
	return max(5, m.height-18)
}

// updateOffset adjusts scroll offset to keep cursor visible
func (m *MonthModel) updateOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model
func (m MonthModel) View() string {
	var b strings.Builder

	title := m.month.Format("January 2006")
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.result == nil {
		b.WriteString("No data")
		return b.String()
	}

	b.WriteString(m.renderDashboard(m.result.Stats))
	if m.result.Comparison != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Comparison:"))
		b.WriteString(" ")
		b.WriteString(m.styles.StatValue.Render(m.result.Comparison))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderDays())

	if m.actionErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.actionErr)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m MonthModel) renderDashboard(s stats.DashboardStats) string {
	var b strings.Builder

	b.WriteString(renderStatLine(m.styles, "Workdays:",
		fmt.Sprintf("%d %s, %s", s.TotalWorkdayCount, pluralize("day", s.TotalWorkdayCount), formatHours(s.TotalWorkdayHours))))
	b.WriteString(renderStatLine(m.styles, "Weekend work:",
		fmt.Sprintf("%d %s, %s", s.TotalWeekendDayCount, pluralize("day", s.TotalWeekendDayCount), formatHours(s.TotalWeekendHours))))
	b.WriteString(renderStatLine(m.styles, "Average per day:",
		fmt.Sprintf("%s (target %s)", formatHours(s.AverageHours), formatHours(stats.TargetDailyHours))))
	b.WriteString(m.styles.StatLabel.Render("Overtime:"))
	b.WriteString(" ")
	b.WriteString(m.styles.Overtime.Render(formatHours(s.TotalOvertime)))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (workdays %s, weekends %s)",
		formatHours(s.WorkdayOvertime), formatHours(s.WeekendOvertime))))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("Deficit:"))
	b.WriteString(" ")
	if s.IsDeficit {
		b.WriteString(m.styles.Deficit.Render(formatHours(s.DeficitHours)))
	} else {
		b.WriteString(m.styles.StatValue.Render("none"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m MonthModel) renderDays() string {
	var b strings.Builder

	hourFormat := m.services.Config.Get().HourFormat
	dates := m.dates()
	end := min(m.offset+m.visibleRows(), len(dates))

	if m.offset > 0 {
		b.WriteString(m.styles.Muted.Render("  ↑ earlier days"))
		b.WriteString("\n")
	}

	for i := m.offset; i < end; i++ {
		date := dates[i]
		calc, _ := m.result.Stats.Day(date)
		rec, hasRecord := m.records[date]

		day, _ := timeutil.ParseDate(date)
		dateCol := m.styles.RowDate.Render(day.Format("Mon Jan 02"))

		label := fmt.Sprintf("%-20s", calc.DayType.Label())
		if hasRecord && rec.Overridden {
			label = fmt.Sprintf("%-20s", calc.DayType.Label()+"*")
		}
		typeCol := m.styles.DayType(calc.DayType).Render(label)

		timeCol := fmt.Sprintf("%-17s", "")
		if hasRecord && !rec.Entry.IsEmpty() {
			timeCol = fmt.Sprintf("%-17s", formatClock(rec.Entry.Start, hourFormat)+" - "+formatClock(rec.Entry.End, hourFormat))
		}
		hoursCol := m.styles.RowHours.Render(formatHours(calc.EffectiveHours))

		line := fmt.Sprintf("%s  %s %s %s", dateCol, typeCol, timeCol, hoursCol)
		if i == m.cursor {
			b.WriteString(m.styles.RowSelected.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.RowNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if end < len(dates) {
		b.WriteString(m.styles.Muted.Render("  ↓ later days"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("  * day type set manually"))
	b.WriteString("\n")

	return b.String()
}

// SetSize sets the view dimensions
func (m *MonthModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateOffset()
}

func (m MonthModel) loadMonth() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		ctx := context.Background()
		result, err := m.services.Dashboard.Month(ctx, month)
		if err != nil {
			return monthLoadedMsg{month: month, err: err}
		}
		history, err := m.services.Dashboard.History(ctx, month)
		return monthLoadedMsg{month: month, result: result, history: history, err: err}
	}
}

func (m MonthModel) setDayType(date string, t daytype.DayType) tea.Cmd {
	return func() tea.Msg {
		set, _, err := m.services.DayType.Set(context.Background(), string(t), []string{date})
		if err != nil {
			return monthActionMsg{err: err}
		}
		return monthActionMsg{notice: fmt.Sprintf("Marked %s as %s", date, set.Label())}
	}
}

func (m MonthModel) resetDayType(date string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.DayType.Reset(context.Background(), []string{date}); err != nil {
			return monthActionMsg{err: err}
		}
		return monthActionMsg{notice: fmt.Sprintf("Reset %s to %s", date, daytype.Default(date).Label())}
	}
}
