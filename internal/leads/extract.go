package leads

import "regexp"

var (
	phoneRe = regexp.MustCompile(`\+?\d[\d\-\s]{7,}\d`)
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// ExtractContact pulls a contact out of free-form text. Phone numbers win
// over emails; when neither is present the Telegram username is used, and
// "unknown" is the last resort.
func ExtractContact(text, username string) string {
	if m := phoneRe.FindString(text); m != "" {
		return m
	}
	if m := emailRe.FindString(text); m != "" {
		return m
	}
	if username != "" {
		return username
	}
	return "unknown"
}
