package format

import (
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
// Telegram only requires &, < and > to be escaped.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Bold wraps already-escaped text in bold tags.
func Bold(text string) string {
	return "<b>" + text + "</b>"
}

// Link renders an inline HTML link with an escaped label.
func Link(url, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, EscapeHTML(label))
}
