package ui

import "github.com/charmbracelet/lipgloss"

var stageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#188be9"))
var successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2fb170"))
var detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

func Stage(text string) string {
	return stageStyle.Render(text)
}

func Success(text string) string {
	return successStyle.Render("✅ " + text)
}

func Detail(text string) string {
	return detailStyle.Render(text)
}
