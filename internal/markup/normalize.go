// Package markup strips markdown syntax down to plain prose.
package markup

import (
	"regexp"

	"github.com/verte-zerg/readscore/internal/lexical"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Passes run in order; later ones assume the earlier ones already ran.
var passes = []rewrite{
	// YAML front matter, only at the very start of the document.
	{regexp.MustCompile(`(?s)\A---\n.*?\n---\n`), ""},
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile("`[^`]+`"), "code"},
	{regexp.MustCompile(`!\[.*?\]\(.*?\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "${1}"},
	{regexp.MustCompile(`<[^>]+>`), ""},
	{lexical.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`), "${1}"},
	{regexp.MustCompile(`_{1,3}([^_]+)_{1,3}`), "${1}"},
	{lexical.MustCompile(`(?m)^>\s*`), ""},
	{lexical.MustCompile(`(?m)^[-*_]{3,}\s*$`), ""},
	{lexical.MustCompile(`(?m)^\s*[-*+]\s+`), ""},
	{lexical.MustCompile(`(?m)^\s*\d+\.\s+`), ""},
	{regexp.MustCompile(`\|`), " "},
	{regexp.MustCompile(`(?m)^[-:| ]+$`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Normalize removes front matter, code, links, images, emphasis, headings,
// lists, tables and HTML from raw markdown and returns the remaining prose.
func Normalize(raw string) string {
	text := raw
	for _, p := range passes {
		text = p.re.ReplaceAllString(text, p.repl)
	}
	return lexical.TrimSpace(text)
}
