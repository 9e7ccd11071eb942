// Package safety redacts contact details from chat messages so brand and
// creator keep the engagement on the platform.
package safety

import (
	"regexp"
	"strings"
)

const Redacted = "[redacted]"

// minPhoneDigits drops short international fragments such as "+1 23 45".
const minPhoneDigits = 10

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlPattern    = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s]+`)
	domainPattern = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9\-]*\.(?:com|net|org|io|in|co|me|app|link|ly|gg|tv)\b(?:/[^\s]*)?`)
	// Numbers are matched by the layouts they are shared in: international
	// with a leading +, 3-3-4, 5-5, or one unbroken run. A list of prices or
	// numbered points fits none of them.
	phonePattern = regexp.MustCompile(`\+\d{1,3}[\s\-.]?(?:\(\d{1,4}\)|\d{1,4})(?:[\s\-.]?\d{2,5}){1,4}\b` +
		`|(?:\(\d{3}\)|\b\d{3})[\s\-.]?\d{3}[\s\-.]?\d{4}\b` +
		`|\b\d{5}[\s\-]\d{5}\b` +
		`|\b\d{10,13}\b`)
	handlePattern = regexp.MustCompile(`(^|[\s(])@[A-Za-z0-9_.]{2,}`)
)

type Filter struct {
	replacement string
}

func NewFilter() *Filter {
	return &Filter{replacement: Redacted}
}

// Redact replaces e-mail addresses, links, phone numbers and social handles.
func (f *Filter) Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, f.replacement)
	text = urlPattern.ReplaceAllString(text, f.replacement)
	text = domainPattern.ReplaceAllString(text, f.replacement)
	text = phonePattern.ReplaceAllStringFunc(text, func(match string) string {
		if countDigits(match) < minPhoneDigits {
			return match
		}
		return f.replacement
	})
	text = handlePattern.ReplaceAllString(text, "${1}"+f.replacement)
	return text
}

func countDigits(s string) int {
	return len(s) - len(strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s))
}
