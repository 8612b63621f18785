package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Selected, Editing lipgloss.Style

	Bullet, Cursor, SymOK, SymFail string
	Border                         lipgloss.Border
}

var current = classic()

// SetTheme switches the palette: classic (default), neon or mono.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
			Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Bullet:   "◆", Cursor: "▸ ", SymOK: "✔", SymFail: "✖",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
			Selected: plain.Reverse(true), Editing: plain.Underline(true),
			Bullet: "-", Cursor: "> ", SymOK: "ok", SymFail: "error:",
			Border: lipgloss.ASCIIBorder(),
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Bullet:   "•", Cursor: "> ", SymOK: "✔", SymFail: "✖",
		Border: lipgloss.NormalBorder(),
	}
}

// Current returns the active theme.
func Current() Theme { return current }
