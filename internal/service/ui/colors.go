package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette colors so the output follows the terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Chat styles used by the interactive CLI.
	PersonaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	SystemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	MoodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Persona renders a reply prefixed with the persona name.
func Persona(name, text string) string {
	return PersonaStyle.Render(name+":") + " " + text
}

// Mood renders the dim emotion footer shown under each reply.
func Mood(user, reply string) string {
	return MoodStyle.Render("[you: " + user + " · reply: " + reply + "]")
}
