package copyedit

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/verte-zerg/readscore/internal/lexical"
)

//go:embed flagged-words.txt
var defaultWords string

const suggestionArrow = "→"

// Entry is a flagged word or phrase with an optional replacement.
type Entry struct {
	Word       string
	Suggestion string
	re         *regexp.Regexp
}

// WordList is an ordered set of flagged entries.
type WordList []Entry

// ParseWordList reads one entry per line. Blank lines and lines starting
// with '#' are skipped; "word → replacement" attaches a suggestion.
func ParseWordList(r io.Reader) (WordList, error) {
	var list WordList
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := lexical.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, suggestion, _ := strings.Cut(line, suggestionArrow)
		word = strings.ToLower(lexical.TrimSpace(word))
		if word == "" {
			continue
		}
		re, err := wordPattern(word)
		if err != nil {
			return nil, fmt.Errorf("failed to compile entry %q: %w", word, err)
		}
		list = append(list, Entry{Word: word, Suggestion: lexical.TrimSpace(suggestion), re: re})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return list, nil
}

// LoadWordList reads a word list file.
func LoadWordList(path string) (WordList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only list.
			_ = cerr
		}
	}()
	return ParseWordList(file)
}

// DefaultWordList returns the built-in list.
func DefaultWordList() WordList {
	list, err := ParseWordList(strings.NewReader(defaultWords))
	if err != nil {
		panic(err)
	}
	return list
}

// wordPattern matches the entry as whole words, case-insensitively, with any
// run of whitespace between the words of a phrase.
func wordPattern(word string) (*regexp.Regexp, error) {
	parts := strings.FieldsFunc(word, lexical.IsSpace)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	sep := "[" + lexical.SpaceClass + "]+"
	return regexp.Compile(`(?i)(?:^|` + lexical.NonWordClass + `)` +
		strings.Join(parts, sep) +
		`(?:` + lexical.NonWordClass + `|$)`)
}

// FindWords reports each entry at most once per line, in line order and
// then list order.
func FindWords(raw string, list WordList) []WordIssue {
	out := []WordIssue{}
	for i, line := range strings.Split(raw, "\n") {
		for _, e := range list {
			if !e.re.MatchString(line) {
				continue
			}
			out = append(out, WordIssue{
				Word:       e.Word,
				Line:       i + 1,
				LineText:   line,
				Suggestion: e.Suggestion,
			})
		}
	}
	return out
}
