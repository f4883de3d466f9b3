package format

import (
	"regexp"
	"strings"
)

// markdownRe matches the characters legacy Markdown treats as markup.
var markdownRe = regexp.MustCompile("([_*`\\[])")

// Escape escapes text for the legacy Markdown parse mode used by the bot.
func Escape(text string) string {
	return markdownRe.ReplaceAllString(text, `\$1`)
}

// Code renders text as an inline code span. Markdown v1 has no escape inside
// code spans, so backticks are replaced with a look-alike.
func Code(text string) string {
	return "`" + strings.ReplaceAll(text, "`", "ˋ") + "`"
}
