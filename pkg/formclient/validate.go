package formclient

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Client-tier validation: optimistic checks run before any network call.
// The server applies its own authoritative ruleset; these predicates only
// exist to give immediate feedback and avoid pointless round trips.

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)

	// Accepted phone shapes after stripping spaces, parentheses and hyphens:
	// +7XXXXXXXXXX, 8XXXXXXXXXX, 7XXXXXXXXXX, or international +XXXXXXXX..
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+7[0-9]{10}$`),
		regexp.MustCompile(`^8[0-9]{10}$`),
		regexp.MustCompile(`^7[0-9]{10}$`),
		regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`),
	}

	phoneSeparators = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
)

// IsValidName reports whether the trimmed name has at least two characters.
func IsValidName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= 2
}

// IsValidEmail reports whether s matches the form's email grammar.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// IsValidPhone reports whether s matches any accepted phone shape.
func IsValidPhone(s string) bool {
	cleaned := phoneSeparators.Replace(strings.TrimSpace(s))
	for _, p := range phonePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// IsValidTask reports whether the trimmed task description has at least ten characters.
func IsValidTask(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= 10
}

// FormatPhoneLive is the cosmetic display transform applied while typing.
// It strips non-digits, maps a leading 8 to +7, prefixes a bare leading 7
// with +, and regroups a +7 national number as "+7 (xxx) xxx-xx-xx".
// Purely cosmetic: it never rejects input, and reapplying it to its own
// output of a fully typed +7 number is a no-op.
func FormatPhoneLive(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}

	var value string
	if strings.HasPrefix(digits, "7") {
		value = "+7" + digits[1:]
	} else {
		value = "+" + digits
	}

	if strings.HasPrefix(value, "+7") && len(value) > 2 {
		d := value[2:]
		switch {
		case len(d) <= 3:
			value = "+7 (" + d
		case len(d) <= 6:
			value = "+7 (" + d[:3] + ") " + d[3:]
		case len(d) <= 8:
			value = "+7 (" + d[:3] + ") " + d[3:6] + "-" + d[6:]
		default:
			end := len(d)
			if end > 10 {
				end = 10
			}
			value = "+7 (" + d[:3] + ") " + d[3:6] + "-" + d[6:8] + "-" + d[8:end]
		}
	}

	return value
}
