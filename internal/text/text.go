package text

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns the markdown help of a button into terminal text.
type Renderer interface {
	Render(md string) (string, error)
}

// Style names accepted by NewMarkdown.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

type glamourRenderer struct {
	tr *glamour.TermRenderer
}

// NewMarkdown builds a glamour renderer for the given standard style.
func NewMarkdown(style string, width int) (Renderer, error) {
	if width <= 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &glamourRenderer{tr: tr}, nil
}

func (g *glamourRenderer) Render(md string) (string, error) {
	out, err := g.tr.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

var (
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	strongRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

type plainRenderer struct{}

// NewPlain is the offline renderer: links become "text <url>", emphasis is dropped.
func NewPlain() Renderer { return plainRenderer{} }

func (plainRenderer) Render(md string) (string, error) {
	out := linkRe.ReplaceAllString(md, "$1 <$2>")
	out = strongRe.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out), nil
}

// WithFallback returns a renderer that prefers primary and falls back to backup on error.
func WithFallback(primary, fallback Renderer) Renderer { return &fallbackRenderer{p: primary, f: fallback} }

type fallbackRenderer struct{ p, f Renderer }

func (r *fallbackRenderer) Render(md string) (string, error) {
	if r.p == nil {
		return r.f.Render(md)
	}
	if s, err := r.p.Render(md); err == nil {
		return s, nil
	}
	return r.f.Render(md)
}
