package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/tui/ui"
	"github.com/xolan/worktimer/internal/workhours"
)

// Fields of the settings form, in tab order.
const (
	fieldStandard = iota
	fieldWorkdayBreaks
	fieldWeekendBreaks
	fieldMaxWeekend
	fieldCount
)

var settingsFieldLabels = [fieldCount]string{
	"Standard work time:",
	"Workday breaks:",
	"Weekend breaks:",
	"Max weekend hours:",
}

// SettingsModel shows and edits the work-hour settings.
type SettingsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width    int
	height   int
	settings workhours.Settings
	loaded   bool
	loading  bool
	err      error

	notice    string
	actionErr error

	editing bool
	inputs  []textinput.Model
	focused int
}

// NewSettingsModel creates a new settings view model
func NewSettingsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	placeholders := [fieldCount]string{
		"09:00-17:30",
		"12:00-13:30, 17:30-18:00",
		"12:00-13:30",
		"8",
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}

	return SettingsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
		inputs:   inputs,
	}
}

// settingsLoadedMsg is sent when settings are loaded or written
type settingsLoadedMsg struct {
	settings workhours.Settings
	notice   string
	err      error
	action   bool
}

// Init implements tea.Model
func (m SettingsModel) Init() tea.Cmd {
	return m.loadSettings()
}

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
			if m.loaded {
				return m.openForm()
			}
			return m, nil
		case key.Matches(msg, m.keys.ResetSettings):
			return m, m.resetSettings()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSettings()
		}

	case settingsLoadedMsg:
		m.loading = false
		if msg.action {
			m.actionErr = msg.err
			m.notice = msg.notice
		} else {
			m.err = msg.err
		}
		if msg.err == nil {
			m.settings = msg.settings
			m.loaded = true
		}
		return m, nil

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

func (m SettingsModel) openForm() (SettingsModel, tea.Cmd) {
	m.editing = true
	m.focused = fieldStandard
	m.notice = ""
	m.actionErr = nil

	s := m.settings
	m.inputs[fieldStandard].SetValue(s.StandardWorkTime.String())
	m.inputs[fieldWorkdayBreaks].SetValue(strings.Join(workhours.IntervalStrings(s.WorkdayRestTimes), ", "))
	m.inputs[fieldWeekendBreaks].SetValue(strings.Join(workhours.IntervalStrings(s.WeekendRestTimes), ", "))
	m.inputs[fieldMaxWeekend].SetValue(strconv.FormatFloat(s.MaxWeekendHours, 'f', -1, 64))

	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focused].Focus()
	return m, textinput.Blink
}

// handleEditMode handles key events while the settings form is open
func (m SettingsModel) handleEditMode(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		values := make([]string, len(m.inputs))
		for i, input := range m.inputs {
			values[i] = input.Value()
			m.inputs[i].Blur()
		}
		m.editing = false
		return m, m.saveSettings(values)
	case key.Matches(msg, m.keys.Back):
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.editing = false
		return m, nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		return m.focus((m.focused + 1) % len(m.inputs))
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		return m.focus((m.focused - 1 + len(m.inputs)) % len(m.inputs))
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m SettingsModel) focus(i int) (SettingsModel, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
	return m, textinput.Blink
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Work-hour Settings"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.editing {
		for i, input := range m.inputs {
			style := m.styles.Input
			if i == m.focused {
				style = m.styles.InputFocused
			}
			b.WriteString(m.styles.StatLabel.Render(settingsFieldLabels[i]))
			b.WriteString("\n")
			b.WriteString(style.Render(input.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Tab/↑/↓ switch field, Enter save, Esc cancel. Separate breaks with commas."))
		return b.String()
	}

	hourFormat := m.services.Config.Get().HourFormat
	s := m.settings
	b.WriteString(renderStatLine(m.styles, settingsFieldLabels[fieldStandard],
		formatClock(s.StandardWorkTime.Start, hourFormat)+" - "+formatClock(s.StandardWorkTime.End, hourFormat)))
	b.WriteString(renderStatLine(m.styles, settingsFieldLabels[fieldWorkdayBreaks], formatIntervals(workhours.IntervalStrings(s.WorkdayRestTimes))))
	b.WriteString(renderStatLine(m.styles, settingsFieldLabels[fieldWeekendBreaks], formatIntervals(workhours.IntervalStrings(s.WeekendRestTimes))))
	b.WriteString(renderStatLine(m.styles, settingsFieldLabels[fieldMaxWeekend], formatHours(s.MaxWeekendHours)))

	if m.actionErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Settings were not changed: %v", m.actionErr)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m SettingsModel) IsInputMode() bool {
	return m.editing
}

func (m SettingsModel) loadSettings() tea.Cmd {
	return func() tea.Msg {
		s, err := m.services.Settings.Get(context.Background())
		return settingsLoadedMsg{settings: s, err: err}
	}
}

// applySettingsForm copies the form values into s.
func applySettingsForm(values []string, s *workhours.Settings) error {
	standard, err := workhours.ParseInterval(strings.TrimSpace(values[fieldStandard]))
	if err != nil {
		return fmt.Errorf("standard work time: %w", err)
	}
	workday, err := workhours.ParseIntervalList(values[fieldWorkdayBreaks])
	if err != nil {
		return fmt.Errorf("workday breaks: %w", err)
	}
	weekend, err := workhours.ParseIntervalList(values[fieldWeekendBreaks])
	if err != nil {
		return fmt.Errorf("weekend breaks: %w", err)
	}
	maxWeekend, err := strconv.ParseFloat(strings.TrimSpace(values[fieldMaxWeekend]), 64)
	if err != nil {
		return fmt.Errorf("max weekend hours: '%s' is not a number", values[fieldMaxWeekend])
	}

	s.StandardWorkTime = standard
	s.WorkdayRestTimes = workday
	s.WeekendRestTimes = weekend
	s.MaxWeekendHours = maxWeekend
	return nil
}

func (m SettingsModel) saveSettings(values []string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.services.Settings.Update(context.Background(), func(s *workhours.Settings) error {
			return applySettingsForm(values, s)
		})
		if err != nil {
			return settingsLoadedMsg{action: true, err: err}
		}
		return settingsLoadedMsg{action: true, settings: s, notice: "Settings saved"}
	}
}

func (m SettingsModel) resetSettings() tea.Cmd {
	return func() tea.Msg {
		s, err := m.services.Settings.Reset(context.Background())
		if err != nil {
			return settingsLoadedMsg{action: true, err: err}
		}
		return settingsLoadedMsg{action: true, settings: s, notice: "Settings reset to defaults"}
	}
}
