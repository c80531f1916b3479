// Package token holds the format pattern grammar shared by the formatter,
// the parser and the locale long-format derivation.
package token

import (
	"regexp"
	"strings"
)

// MaxExpandDepth bounds long format macro expansion.
const MaxExpandDepth = 5

var (
	formatting = regexp.MustCompile(`(\[[^\[]*\])|(\\)?([Hh]mm(ss)?|Mo|MM?M?M?|Do|DDDo|DD?D?D?|ddd?d?|do?|w[o|w]?|W[o|W]?|Qo?|N{1,5}|YYYYYY|YYYYY|YYYY|YY|y{2,4}|yo?|gg(ggg?)?|GG(GGG?)?|e|E|a|A|hh?|HH?|kk?|mm?|ss?|S{1,9}|x|X|zz?|ZZ?|.)`)
	local      = regexp.MustCompile(`(\[[^\[]*\])|(\\)?(LTS|LT|LL?L?L?|l{1,4})`)
	bracketed  = regexp.MustCompile(`^\[[\s\S]`)
)

// Split breaks a pattern into tokens, bracketed literals and single
// characters. Characters the grammar does not recognize (newlines) are
// dropped.
func Split(pattern string) []string {
	return formatting.FindAllString(pattern, -1)
}

// Literal reports whether tok renders as literal text and returns that text:
// bracketed sections lose their brackets and escaped characters lose the
// backslash.
func Literal(tok string) (string, bool) {
	if bracketed.MatchString(tok) {
		return strings.TrimSuffix(tok[1:], "]"), true
	}
	if strings.HasPrefix(tok, `\`) {
		return strings.ReplaceAll(tok, `\`, ""), true
	}
	return "", false
}

// Unescape strips the bracket and backslash escaping from literal pattern
// text.
func Unescape(s string) string {
	if lit, ok := Literal(s); ok {
		return lit
	}
	return s
}

// Expand replaces long date format macros (LT, LTS, L, LL, l, ...) using
// lookup until the pattern is stable or MaxExpandDepth passes were made.
// Unknown macros are kept as written.
func Expand(pattern string, lookup func(string) string) string {
	expand := func(m string) string {
		sub := local.FindStringSubmatch(m)
		if sub[1] != "" || sub[2] != "" {
			return m
		}
		if v := lookup(m); v != "" {
			return v
		}
		return m
	}

	for i := MaxExpandDepth; i >= 0 && local.MatchString(pattern); i-- {
		next := local.ReplaceAllStringFunc(pattern, expand)
		if next == pattern {
			break
		}
		pattern = next
	}
	return pattern
}

// Shorten derives a lowercase long date format (l, ll, lll, llll) from its
// uppercase counterpart by dropping the first character of the MMMM, MM, DD
// and dddd tokens. Bracketed text is kept.
func Shorten(pattern string) string {
	var b strings.Builder
	for _, tok := range Split(pattern) {
		switch tok {
		case "MMMM", "MM", "DD", "dddd":
			tok = tok[1:]
		}
		b.WriteString(tok)
	}
	return b.String()
}
