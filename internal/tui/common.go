package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage of the CLI
var (
	// ColorGreen for available books and success toasts
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for metadata such as nationality and emails
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for selection and due dates
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for errors and books on loan
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	// ColorBlue for section tabs
	ColorBlue = lipgloss.AdaptiveColor{Light: "#005FD7", Dark: "#5FAFFF"}

	colorSeparator = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleMeta is for secondary attributes
	StyleMeta = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	StyleError   = lipgloss.NewStyle().Foreground(ColorRed)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	styleSeparator = lipgloss.NewStyle().Foreground(colorSeparator)

	styleBadgeOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorGreen).
			Padding(0, 1)

	styleBadgeWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorYellow).
			Padding(0, 1)

	styleBadgeBad = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorRed).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	styleTab = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
)
