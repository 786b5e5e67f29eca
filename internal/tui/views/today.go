package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/tui/ui"
)

// TodayModel shows today's entry and counts down to the projected end of work.
type TodayModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	status  *service.TodayStatus
	loading bool
	err     error

	notice    string
	actionErr error

	// Entry form: start and end inputs
	editing bool
	inputs  []textinput.Model
	focused int
}

// NewTodayModel creates a new today view model
func NewTodayModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) TodayModel {
	start := textinput.New()
	start.Placeholder = "09:00"
	start.CharLimit = 8
	start.Width = 10

	end := textinput.New()
	end.Placeholder = "18:00"
	end.CharLimit = 8
	end.Width = 10

	return TodayModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
		inputs:   []textinput.Model{start, end},
	}
}

// todayStatusMsg is sent when today's status is loaded
type todayStatusMsg struct {
	status *service.TodayStatus
	err    error
}

// todayActionMsg reports the outcome of a write started from the view
type todayActionMsg struct {
	notice string
	err    error
}

// todayTickMsg is sent every second to advance the countdown
type todayTickMsg time.Time

// Init implements tea.Model
func (m TodayModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadStatus(),
		m.tick(),
	)
}

// Update implements tea.Model
func (m TodayModel) Update(msg tea.Msg) (TodayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.ClockIn):
			return m, m.clockIn()
		case key.Matches(msg, m.keys.ClockOut):
			return m, m.clockOut()
		case key.Matches(msg, m.keys.Edit):
			return m.openForm()
		case key.Matches(msg, m.keys.Clear):
			return m, m.clearEntry()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStatus()
		}

	case todayStatusMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
		}
		return m, nil

	case todayActionMsg:
		m.notice = msg.notice
		m.actionErr = msg.err
		return m, m.loadStatus()

	case todayTickMsg:
		// The status is re-read every second; the month aggregation behind
		// it is served from the memo cache until the data changes.
		return m, tea.Batch(m.loadStatus(), m.tick())

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m TodayModel) openForm() (TodayModel, tea.Cmd) {
	m.editing = true
	m.focused = 0
	m.actionErr = nil
	m.notice = ""

	start, end := "", ""
	if m.status != nil {
		start = m.status.Day.Entry.Start
		end = m.status.Day.Entry.End
	}
	m.inputs[0].SetValue(start)
	m.inputs[1].SetValue(end)
	m.inputs[0].Focus()
	m.inputs[1].Blur()
	return m, textinput.Blink
}

func (m TodayModel) closeForm() TodayModel {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

// handleEditMode handles key events while the entry form is open
func (m TodayModel) handleEditMode(msg tea.KeyMsg) (TodayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		start := strings.TrimSpace(m.inputs[0].Value())
		end := strings.TrimSpace(m.inputs[1].Value())
		m = m.closeForm()
		return m, m.saveEntry(start, end)
	case key.Matches(msg, m.keys.Back):
		return m.closeForm(), nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + 1) % len(m.inputs)
		m.inputs[m.focused].Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m TodayModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Today"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.status == nil {
		b.WriteString("No data")
		return b.String()
	}

	hourFormat := m.services.Config.Get().HourFormat
	day := m.status.Day

	date, _ := timeutil.ParseDate(day.Date)
	b.WriteString(m.styles.StatValue.Render(date.Format("Mon, Jan 2, 2006")))
	b.WriteString("  ")
	b.WriteString(m.styles.DayType(day.DayType()).Render(day.DayType().Label()))
	if day.Overridden {
		b.WriteString(m.styles.Muted.Render(" (set manually)"))
	}
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.renderForm())
		return b.String()
	}

	timeRange := formatClock(day.Entry.Start, hourFormat) + " - " + formatClock(day.Entry.End, hourFormat)
	if day.Entry.Crosses() {
		timeRange += " (ends after midnight)"
	}
	b.WriteString(renderStatLine(m.styles, "Time:", timeRange))
	b.WriteString(renderStatLine(m.styles, "Total:", formatHours(day.Calc.TotalHours)))
	b.WriteString(renderStatLine(m.styles, "Effective:", formatHours(day.Calc.EffectiveHours)))
	b.WriteString("\n")

	b.WriteString(m.renderCountdown(hourFormat))
	b.WriteString("\n")

	month := m.status.Month
	b.WriteString(renderStatLine(m.styles, "Month average:", formatHours(month.AverageHours)))
	if month.IsDeficit {
		b.WriteString(m.styles.StatLabel.Render("Month deficit:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Deficit.Render(formatHours(month.DeficitHours)))
		b.WriteString("\n")
	}

	if m.actionErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(describeTodayError(m.actionErr)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m TodayModel) renderCountdown(hourFormat string) string {
	var b strings.Builder

	if !m.status.HasProjection {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Standard end time '%s' is not a valid time",
			m.status.Settings.StandardWorkTime.End)))
		b.WriteString("\n")
		return b.String()
	}

	p := m.status.Projection
	b.WriteString(m.styles.StatLabel.Render("Ends at:"))
	b.WriteString(" ")
	b.WriteString(m.styles.EndTime.Render(formatInstant(p.Projected, hourFormat)))
	if p.Adjusted() {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  standard %s, +%dm for the deficit",
			formatInstant(p.Standard, hourFormat), p.ExtraMinutes())))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Remaining:"))
	b.WriteString(" ")
	if m.status.Countdown.IsOver {
		b.WriteString(m.styles.CountdownOver.Render("done for today"))
	} else {
		b.WriteString(m.styles.Countdown.Render(m.status.Countdown.String()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m TodayModel) renderForm() string {
	var b strings.Builder

	labels := []string{"Start:", "End:"}
	for i, input := range m.inputs {
		style := m.styles.Input
		if i == m.focused {
			style = m.styles.InputFocused
		}
		b.WriteString(m.styles.StatLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(style.Render(input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Tab switch field, Enter save, Esc cancel. Leave a field empty to unset it."))

	return b.String()
}

func describeTodayError(err error) string {
	switch {
	case errors.Is(err, service.ErrAlreadyClockedIn):
		return "Already clocked in today. Press 'e' to change the start time."
	case errors.Is(err, service.ErrAlreadyClockedOut):
		return "Already clocked out. Press 'e' to change the end time."
	case errors.Is(err, service.ErrIncompleteEntry):
		return "Not clocked in. Press 'i' first."
	}
	return fmt.Sprintf("Error: %v", err)
}

// SetSize sets the view dimensions
func (m *TodayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m TodayModel) IsInputMode() bool {
	return m.editing
}

func (m TodayModel) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.services.Countdown.Status(context.Background())
		return todayStatusMsg{status: status, err: err}
	}
}

func (m TodayModel) clockIn() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.services.Entry.ClockIn(context.Background(), false)
		if err != nil {
			return todayActionMsg{err: err}
		}
		return todayActionMsg{notice: "Clocked in at " + rec.Entry.Start}
	}
}

func (m TodayModel) clockOut() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.services.Entry.ClockOut(context.Background(), false)
		if err != nil {
			return todayActionMsg{err: err}
		}
		return todayActionMsg{notice: "Clocked out at " + rec.Entry.End}
	}
}

func (m TodayModel) saveEntry(start, end string) tea.Cmd {
	return func() tea.Msg {
		date := timeutil.DateKey(m.services.Now())
		rec, err := m.services.Entry.Set(context.Background(), date, start, end)
		if err != nil {
			return todayActionMsg{err: err}
		}
		return todayActionMsg{notice: fmt.Sprintf("Saved %s (%s effective)",
			formatClock(rec.Entry.Start, "24h")+" - "+formatClock(rec.Entry.End, "24h"),
			formatHours(rec.Calc.EffectiveHours))}
	}
}

func (m TodayModel) clearEntry() tea.Cmd {
	return func() tea.Msg {
		date := timeutil.DateKey(m.services.Now())
		if _, err := m.services.Entry.Clear(context.Background(), date); err != nil {
			return todayActionMsg{err: err}
		}
		return todayActionMsg{notice: "Cleared today's entry"}
	}
}

// tick returns a command that sends a tick every second
func (m TodayModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return todayTickMsg(t)
	})
}
