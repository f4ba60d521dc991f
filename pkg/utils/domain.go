package utils

import (
	"strings"
)

// ExitCommand ends the interactive session
const ExitCommand = "e"

// NormalizeDomain prepends https:// when the input does not start with
// "http" and appends a trailing slash when missing. Nothing else is checked.
func NormalizeDomain(domain string) string {
	if !strings.HasPrefix(domain, "http") {
		domain = "https://" + domain
	}

	if !strings.HasSuffix(domain, "/") {
		domain += "/"
	}

	return domain
}

// SanitizeDomain strips scheme prefixes and every slash, leaving a string
// usable inside a file name.
func SanitizeDomain(domain string) string {
	s := strings.ReplaceAll(domain, "https://", "")
	s = strings.ReplaceAll(s, "http://", "")
	return strings.ReplaceAll(s, "/", "")
}

// OutputFilename returns the file name the URLs of domain are written to
func OutputFilename(domain, ext string) string {
	if ext == "" {
		ext = "txt"
	}
	return "urls_" + SanitizeDomain(domain) + "." + ext
}

// IsExitCommand reports whether the trimmed input asks to quit
func IsExitCommand(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), ExitCommand)
}
