// Package sections partitions markdown into heading-keyed sections.
package sections

import (
	"strings"

	"github.com/verte-zerg/readscore/internal/lexical"
	"github.com/verte-zerg/readscore/internal/model"
)

var headingRe = lexical.MustCompile(`^(#{1,6})\s+(.+)$`)

// Split maps each heading's trimmed text to the raw content below it, up to
// the next heading of any level. Content before the first heading is keyed
// by model.IntroductionSection. Empty sections are omitted and a repeated
// heading replaces the earlier one.
func Split(raw string) map[string]string {
	result := map[string]string{}
	heading := model.IntroductionSection
	var content []string

	flush := func() {
		body := lexical.TrimSpace(strings.Join(content, "\n"))
		if body != "" {
			result[heading] = body
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		match := headingRe.FindStringSubmatch(line)
		if match == nil {
			content = append(content, line)
			continue
		}
		flush()
		heading = lexical.TrimSpace(match[2])
		content = content[:0]
	}
	flush()
	return result
}

var (
	fenceRe       = lexical.MustCompile("^\\s{0,3}(```|~~~)")
	closingHashes = lexical.MustCompile(`\s+#+\s*$`)
)

// Heading is an ATX heading with its 1-based source line.
type Heading struct {
	Depth int
	Text  string
	Line  int
}

// Headings lists the ATX headings of raw markdown in document order. Lines
// inside fenced code blocks and a leading front matter block are skipped,
// and a closing run of '#' is dropped from the text.
func Headings(raw string) []Heading {
	var out []Heading
	lines := strings.Split(raw, "\n")
	start := 0
	if len(lines) > 0 && lexical.TrimSpace(lines[0]) == "---" {
		for i := 1; i < len(lines); i++ {
			if lexical.TrimSpace(lines[i]) == "---" {
				start = i + 1
				break
			}
		}
	}

	fence := ""
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if m := fenceRe.FindStringSubmatch(line); m != nil {
			switch fence {
			case "":
				fence = m[1]
			case m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		match := headingRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		text := lexical.TrimSpace(closingHashes.ReplaceAllString(match[2], ""))
		if text == "" {
			continue
		}
		out = append(out, Heading{Depth: len(match[1]), Text: text, Line: i + 1})
	}
	return out
}
