package markdown

import "strings"

// Taken from https://core.telegram.org/bots/api#markdownv2-style.
const (
	mdV2SpecialChars = `._[](){}#|!+-=*~>` + "`"
	mdV2URLChars     = `)\`
)

//nolint:gochecknoglobals // Lookup tables meant to be immutable.
var (
	textLookup = lookup(mdV2SpecialChars + `\`)
	urlLookup  = lookup(mdV2URLChars)
)

// EscapeV2 escapes input for use as plain MarkdownV2 text.
func EscapeV2(input string) string {
	return escape(input, &textLookup)
}

// EscapeURL escapes input for use inside the (...) part of an inline link.
func EscapeURL(input string) string {
	return escape(input, &urlLookup)
}

// Link renders an inline link with an already plain text label.
func Link(label, url string) string {
	return "[" + EscapeV2(label) + "](" + EscapeURL(url) + ")"
}

func escape(input string, table *[256]bool) string {
	charsToEscape := 0

	for i := range len(input) {
		if table[input[i]] {
			charsToEscape++
		}
	}

	if charsToEscape == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + charsToEscape)

	for i := range len(input) {
		c := input[i]
		if table[c] {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

func lookup(chars string) [256]bool {
	var m [256]bool
	for i := range len(chars) {
		m[chars[i]] = true
	}
	return m
}
