package rewrite

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule replaces either a regular expression match or a literal substring.
type Rule struct {
	Pattern     *regexp.Regexp
	Literal     string
	Replacement string
}

func Pattern(expr, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(expr), Replacement: replacement}
}

func Literal(s, replacement string) Rule {
	return Rule{Literal: s, Replacement: replacement}
}

func (r Rule) Apply(s string) string {
	switch {
	case r.Pattern != nil:
		return r.Pattern.ReplaceAllString(s, r.Replacement)
	case r.Literal != "":
		return strings.ReplaceAll(s, r.Literal, r.Replacement)
	default:
		return s
	}
}

// applyRules folds rules over s in order and reports whether anything changed.
func applyRules(s string, rules []Rule) (string, bool) {
	out := s
	for _, r := range rules {
		out = r.Apply(out)
	}
	return out, out != s
}

var (
	innerSpaces      = regexp.MustCompile(`(\S)[ \t]{2,}`)
	spaceBeforePunct = regexp.MustCompile(`(\S)[ \t]+([,.!?;:])`)
	trailingSpaces   = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns        = regexp.MustCompile(`\n{3,}`)
	leadingPunct     = regexp.MustCompile(`^[\s,;:.]+`)
)

// tidy cleans up the gaps left behind by phrase removal. Indentation at the
// start of a line is left alone.
func tidy(s string) string {
	s = innerSpaces.ReplaceAllString(s, "$1 ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1$2")
	s = trailingSpaces.ReplaceAllString(s, "")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = leadingPunct.ReplaceAllString(s, "")
	return capitalizeFirst(strings.TrimSpace(s))
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
