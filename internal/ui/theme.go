package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// palette colours resolve against the renderer's dark-background flag, so the
// light half is what the page shows before dark mode is switched on.
type palette struct {
	Background lipgloss.AdaptiveColor
	Panel      lipgloss.AdaptiveColor
	Text       lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Button     lipgloss.AdaptiveColor
	ButtonText lipgloss.AdaptiveColor
	Focus      lipgloss.AdaptiveColor
	Toggle     lipgloss.AdaptiveColor
	ToggleText lipgloss.AdaptiveColor
	Link       lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
}

var palettes = map[string]palette{
	"slate": {
		Background: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1e293b"},
		Panel:      lipgloss.AdaptiveColor{Light: "#f1f5f9", Dark: "#0f172a"},
		Text:       lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#ffffff"},
		Muted:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#cbd5e1"},
		Border:     lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#475569"},
		Button:     lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#334155"},
		ButtonText: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#f1f5f9"},
		Focus:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#475569"},
		Toggle:     lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#334155"},
		ToggleText: lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"},
		Link:       lipgloss.AdaptiveColor{Light: "#334155", Dark: "#3b82f6"},
		Success:    lipgloss.AdaptiveColor{Light: "#22c55e", Dark: "#4ade80"},
	},
	"gray": {
		Background: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"},
		Panel:      lipgloss.AdaptiveColor{Light: "#f1f5f9", Dark: "#111827"},
		Text:       lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#ffffff"},
		Muted:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#d1d5db"},
		Border:     lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#4b5563"},
		Button:     lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#374151"},
		ButtonText: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#f3f4f6"},
		Focus:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#4b5563"},
		Toggle:     lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#374151"},
		ToggleText: lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f3f4f6"},
		Link:       lipgloss.AdaptiveColor{Light: "#334155", Dark: "#3b82f6"},
		Success:    lipgloss.AdaptiveColor{Light: "#22c55e", Dark: "#4ade80"},
	},
	"zinc": {
		Background: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#27272a"},
		Panel:      lipgloss.AdaptiveColor{Light: "#f1f5f9", Dark: "#18181b"},
		Text:       lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#fafafa"},
		Muted:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#d4d4d8"},
		Border:     lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#52525b"},
		Button:     lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#3f3f46"},
		ButtonText: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#f4f4f5"},
		Focus:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#52525b"},
		Toggle:     lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#3f3f46"},
		ToggleText: lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f4f4f5"},
		Link:       lipgloss.AdaptiveColor{Light: "#334155", Dark: "#60a5fa"},
		Success:    lipgloss.AdaptiveColor{Light: "#22c55e", Dark: "#4ade80"},
	},
}

const defaultTheme = "slate"

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

// StyleHost owns how a switch between light and dark styling shows up.
type StyleHost interface {
	SetDarkMode(on bool)
}

// rendererHost flips the lipgloss renderer's dark-background flag; every
// adaptive colour drawn through that renderer follows it.
type rendererHost struct {
	r *lipgloss.Renderer
}

func (h rendererHost) SetDarkMode(on bool) { h.r.SetHasDarkBackground(on) }

type styles struct {
	page, title, subtitle        lipgloss.Style
	panel, panelTitle, body      lipgloss.Style
	button, focused, toggle      lipgloss.Style
	note, env, indicator, status lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, p palette) styles {
	return styles{
		page:       r.NewStyle().Background(p.Background).Padding(1, 2),
		title:      r.NewStyle().Bold(true).Foreground(p.Text),
		subtitle:   r.NewStyle().Foreground(p.Muted),
		panel:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Background(p.Panel).Padding(0, 1),
		panelTitle: r.NewStyle().Bold(true).Foreground(p.Text),
		body:       r.NewStyle().Foreground(p.Muted),
		button:     r.NewStyle().Background(p.Button).Foreground(p.ButtonText).Padding(0, 2),
		focused:    r.NewStyle().Background(p.Focus).Foreground(p.ButtonText).Bold(true).Underline(true).Padding(0, 2),
		toggle:     r.NewStyle().Background(p.Toggle).Foreground(p.ToggleText).Padding(0, 2),
		note:       r.NewStyle().Foreground(p.Muted).Faint(true),
		env:        r.NewStyle().Bold(true).Foreground(p.Text),
		indicator:  r.NewStyle().Foreground(p.Success),
		status:     r.NewStyle().Foreground(p.Link),
	}
}
