package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerTitle = "treenotes"

// RenderBanner returns the one-line header: the app name, the backend it is
// talking to, and the logged-in user when known.
func RenderBanner(server, username string, width int) string {
	parts := []string{BannerStyle.Render("◆ " + bannerTitle)}
	if server != "" {
		parts = append(parts, BannerAccentStyle.Render(server))
	}
	if username != "" {
		parts = append(parts, BannerAccentStyle.Render("@"+username))
	}
	line := strings.Join(parts, BannerAccentStyle.Render("  ·  "))
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().Width(width).Render(line)
}
