package tui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#E5484D")
	ColorAmber   = lipgloss.Color("#F5A524")
	ColorIndigo  = lipgloss.Color("#6E56CF")
	ColorTeal    = lipgloss.Color("#12A594")
	ColorGray    = lipgloss.Color("#8B8D98")
	ColorDimGray = lipgloss.Color("#44464F")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorIndigo)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedChipStyle = lipgloss.NewStyle().
				Foreground(ColorIndigo).
				Bold(true).
				Underline(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorIndigo).
			Padding(0, 1)

	GenreStyle = lipgloss.NewStyle().
			Foreground(ColorAmber)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTeal)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo)

	NumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAmber)

	QuoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorGray).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorIndigo).
			PaddingLeft(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorAmber)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
