package lexical

import (
	"regexp"
	"strings"
	"unicode"
)

// SpaceClass is the body of a bracket expression matching every Unicode
// space character, the ASCII information separators and NEL.
const SpaceClass = `\t\n\v\f\r\x1c-\x1f\x85\p{Z}`

// NonWordClass matches one character outside letters, digits and '_'.
const NonWordClass = `[^\p{L}\p{N}_]`

const wordClass = `[\p{L}\p{N}_]`

var classReplacer = strings.NewReplacer(
	`\s`, "["+SpaceClass+"]",
	`\d`, `\p{Nd}`,
	`\w`, wordClass,
	`\W`, NonWordClass,
)

// MustCompile compiles pattern after widening the \s, \d, \w and \W
// shorthands to their Unicode meaning. The shorthands must not appear
// inside a bracket expression.
func MustCompile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(classReplacer.Replace(pattern))
}

// IsSpace reports whether r is matched by SpaceClass.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// TrimSpace removes leading and trailing IsSpace characters.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
