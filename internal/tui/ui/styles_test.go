package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/worktimer/internal/daytype"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"App", styles.App},
		{"TabBar", styles.TabBar},
		{"TabActive", styles.TabActive},
		{"TabInactive", styles.TabInactive},
		{"ViewTitle", styles.ViewTitle},
		{"StatusBar", styles.StatusBar},
		{"StatusKey", styles.StatusKey},
		{"StatusHelp", styles.StatusHelp},
		{"RowSelected", styles.RowSelected},
		{"RowNormal", styles.RowNormal},
		{"RowDate", styles.RowDate},
		{"RowHours", styles.RowHours},
		{"Countdown", styles.Countdown},
		{"CountdownOver", styles.CountdownOver},
		{"EndTime", styles.EndTime},
		{"StatLabel", styles.StatLabel},
		{"StatValue", styles.StatValue},
		{"Overtime", styles.Overtime},
		{"Deficit", styles.Deficit},
		{"Muted", styles.Muted},
		{"Input", styles.Input},
		{"InputFocused", styles.InputFocused},
		{"Dialog", styles.Dialog},
		{"DialogTitle", styles.DialogTitle},
		{"Error", styles.Error},
		{"Warning", styles.Warning},
		{"Success", styles.Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.style.Render("test") == "" {
				t.Errorf("expected non-empty rendered output for style %s", tt.name)
			}
		})
	}
}

func TestStyles_Layout(t *testing.T) {
	styles := DefaultStyles()

	if styles.App.GetPaddingTop() != 1 || styles.App.GetPaddingLeft() != 2 {
		t.Errorf("App padding = (%d, %d), want (1, 2)", styles.App.GetPaddingTop(), styles.App.GetPaddingLeft())
	}
	if !styles.TabActive.GetBold() {
		t.Error("expected TabActive to be bold")
	}
	if styles.StatLabel.GetWidth() != 20 {
		t.Errorf("StatLabel width = %d, want 20", styles.StatLabel.GetWidth())
	}
}

func TestStyles_DayType(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		dayType daytype.DayType
		want    lipgloss.Style
	}{
		{daytype.Workday, styles.DayWorkday},
		{daytype.Weekend, styles.DayWeekend},
		{daytype.Holiday, styles.DayHoliday},
		{daytype.RestdayWork, styles.DayRestdayWork},
		{daytype.DayType("bogus"), styles.DayWorkday},
	}

	for _, tt := range tests {
		t.Run(string(tt.dayType), func(t *testing.T) {
			got := styles.DayType(tt.dayType)
			if got.GetForeground() != tt.want.GetForeground() {
				t.Errorf("DayType(%q) foreground = %v, want %v", tt.dayType, got.GetForeground(), tt.want.GetForeground())
			}
		})
	}
}

func TestNewStylesFromRegistry(t *testing.T) {
	styles := NewThemeProvider("nord").Styles()

	if styles.ViewTitle.Render("Today") == "" {
		t.Error("expected themed ViewTitle to render")
	}
	if !styles.Countdown.GetBold() {
		t.Error("expected Countdown to be bold")
	}
}
