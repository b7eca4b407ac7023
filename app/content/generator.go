// Package content synthesizes draft personal thoughts from basis entries.
package content

import (
	"strings"

	"github.com/thoughtforge/thoughtforge/app/database"
)

type Mode string

const (
	// ModePlaceholder produces template-based drafts from the basis text.
	ModePlaceholder Mode = "placeholder"
	// ModeAI is reserved for model-backed generation, which is not wired
	// up; drafts carry a fixed placeholder marker instead.
	ModeAI Mode = "ai"
)

const (
	aiNotEnabled  = "AI_GENERATION_NOT_ENABLED"
	bodyPrefix    = "This thought is derived from the following basis:\n\n"
	fallbackTheme = "general"
)

// Draft is a synthesized thought before it is persisted.
type Draft struct {
	Title    string
	Body     string
	Category string
}

type Generator struct {
	mode Mode
}

func NewGenerator(mode Mode) *Generator {
	if mode != ModeAI {
		mode = ModePlaceholder
	}
	return &Generator{mode: mode}
}

func (g *Generator) Mode() Mode {
	return g.mode
}

// Run derives a draft thought from a basis entry. The title and category
// come from the basis theme (with a fixed fallback), the body from a fixed
// template over the source text.
func (g *Generator) Run(basis database.BasisEntry) Draft {
	if g.mode == ModeAI {
		return Draft{
			Title:    aiNotEnabled,
			Body:     aiNotEnabled,
			Category: themeOrFallback(basis.Theme),
		}
	}

	theme := themeOrFallback(basis.Theme)
	return Draft{
		Title:    "Draft thought on " + theme,
		Body:     bodyPrefix + basis.SourceText,
		Category: theme,
	}
}

func themeOrFallback(theme string) string {
	if strings.TrimSpace(theme) == "" {
		return fallbackTheme
	}
	return theme
}
