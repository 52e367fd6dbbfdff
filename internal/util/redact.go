package util

import "regexp"

var (
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
		regexp.MustCompile(`\b\+?[0-9]{2,3}[-.\s]?[0-9]{3,4}[-.\s]?[0-9]{3,4}[-.\s]?[0-9]{3,4}\b`),
	}
	ipRe   = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	cardRe = regexp.MustCompile(`\b(?:[0-9]{4}[-\s]?){3}[0-9]{4}\b`)
	ssnRe  = regexp.MustCompile(`\b[0-9]{3}-[0-9]{2}-[0-9]{4}\b`)
)

// Redact masks emails, phone numbers, IP addresses, card numbers and
// SSNs. Applied to answer text and pull quotes when GDPR mode is on.
func Redact(text string) string {
	if text == "" {
		return text
	}
	text = emailRe.ReplaceAllString(text, "[EMAIL_REDACTED]")
	for _, re := range phoneRes {
		text = re.ReplaceAllString(text, "[PHONE_REDACTED]")
	}
	text = ipRe.ReplaceAllString(text, "[IP_REDACTED]")
	text = cardRe.ReplaceAllString(text, "[CARD_REDACTED]")
	return ssnRe.ReplaceAllString(text, "[SSN_REDACTED]")
}
