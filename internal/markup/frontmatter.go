package markup

import (
	"strings"

	"github.com/adrg/frontmatter"
)

type titleMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Title returns the front-matter title of a document, or "" when the
// document has no front matter or it cannot be parsed.
func Title(raw string) string {
	var meta titleMatter
	if _, err := frontmatter.Parse(strings.NewReader(raw), &meta); err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Title)
}
