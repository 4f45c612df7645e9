package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorBorder     = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	BannerAccentStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Note headers in the notes pane.
	NoteTitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	NoteActiveTitleStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorPrimary).
				Bold(true).
				Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)
