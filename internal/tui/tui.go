// Package tui provides the Terminal User Interface for worktimer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/tui/ui"
	"github.com/xolan/worktimer/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabToday Tab = iota
	TabMonth
	TabSettings
	TabConfig
)

var tabNames = []string{"Today", "Month", "Settings", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool

	todayView    views.TodayModel
	monthView    views.MonthModel
	settingsView views.SettingsModel
	configView   views.ConfigModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
	help          help.Model
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return Model{
		services:      services,
		activeTab:     TabToday,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		help:          h,
		todayView:     views.NewTodayModel(services, styles, keys),
		monthView:     views.NewMonthModel(services, styles, keys),
		settingsView:  views.NewSettingsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.todayView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// While a form or the theme selector is open, keys go to the view.
		inputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit) && !inputMode:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !inputMode:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !inputMode:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !inputMode:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !inputMode:
			return m.switchTab(TabToday)

		case key.Matches(msg, m.keys.Tab2) && !inputMode:
			return m.switchTab(TabMonth)

		case key.Matches(msg, m.keys.Tab3) && !inputMode:
			return m.switchTab(TabSettings)

		case key.Matches(msg, m.keys.Tab4) && !inputMode:
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		contentHeight := m.height - 4 // tabs and status bar
		m.todayView.SetSize(m.width, contentHeight)
		m.monthView.SetSize(m.width, contentHeight)
		m.settingsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.todayView, _ = m.todayView.Update(themeMsg)
		m.monthView, _ = m.monthView.Update(themeMsg)
		m.settingsView, _ = m.settingsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveTheme(newTheme)
	}

	switch m.activeTab {
	case TabToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case TabMonth:
		m.monthView, cmd = m.monthView.Update(msg)
	case TabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabToday:
		b.WriteString(m.todayView.View())
	case TabMonth:
		b.WriteString(m.monthView.View())
	case TabSettings:
		b.WriteString(m.settingsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isInputMode() {
		if m.activeTab == TabConfig {
			parts = append(parts, m.renderKeyHelp("↑/↓", "navigate"))
			parts = append(parts, m.renderKeyHelp("Enter", "select"))
		} else {
			parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
			parts = append(parts, m.renderKeyHelp("Enter", "save"))
		}
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabToday:
			parts = append(parts, m.renderKeyHelp("i", "clock in"))
			parts = append(parts, m.renderKeyHelp("o", "clock out"))
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("x", "clear"))
		case TabMonth:
			parts = append(parts, m.renderKeyHelp("←/→", "month"))
			parts = append(parts, m.renderKeyHelp("j/k", "day"))
			parts = append(parts, m.renderKeyHelp("d/D", "day type"))
		case TabSettings:
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("R", "reset"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// helpSections titles the groups of KeyMap.FullHelp, in order.
var helpSections = []string{"Views", "Today", "Month", "Settings & Config"}

// renderHelpOverlay renders the full key map in a dialog, one group below
// the other so that each fits the dialog width.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder

	b.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for i, group := range m.keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if i < len(helpSections) {
			b.WriteString(m.styles.ViewTitle.UnsetMargins().Render(helpSections[i]))
			b.WriteString("\n")
		}
		b.WriteString(m.help.FullHelpView([][]key.Binding{group}))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(b.String()))
}

// isInputMode reports whether the active view is capturing keyboard input
func (m Model) isInputMode() bool {
	switch m.activeTab {
	case TabToday:
		return m.todayView.IsInputMode()
	case TabSettings:
		return m.settingsView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabToday:
		return m.todayView.Init()
	case TabMonth:
		return m.monthView.Init()
	case TabSettings:
		return m.settingsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveTheme persists the theme to the config file
func (m Model) saveTheme(themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetTheme(themeName); err != nil {
			m.services.Logger.Warn("failed to save theme", "theme", themeName, "error", err)
		}
		return nil
	}
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
