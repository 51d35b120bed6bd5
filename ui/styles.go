package ui

import "github.com/charmbracelet/lipgloss"

var (
	normalFg  = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#dddddd"}
	subtleFg  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	fuchsia   = lipgloss.Color("#EE6FF8")
	green     = lipgloss.Color("#04B575")
	red       = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	cream     = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	mintGreen = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(cream).
			Background(fuchsia).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(normalFg).
			Bold(true)

	focusedLabelStyle = labelStyle.
				Foreground(fuchsia)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleFg)

	counterStyle = subtleStyle.
			Align(lipgloss.Right)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleFg).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.
				BorderForeground(fuchsia)

	buttonStyle = lipgloss.NewStyle().
			Foreground(cream).
			Background(darkGreen).
			Padding(0, 2).
			Align(lipgloss.Center)

	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#B6FFE4")).
				Background(green).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				Foreground(subtleFg).
				Background(lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"})

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(fuchsia).
				Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Underline(true)

	toastTitleStyle = lipgloss.NewStyle().
			Bold(true)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(green).
			Padding(0, 1)

	destructiveToastStyle = toastStyle.
				BorderForeground(red).
				Foreground(red)

	helpStyle = subtleStyle
)
