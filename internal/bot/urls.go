package bot

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')]+`)

// ExtractURLs returns every URL found in the message text.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// IsJobURL reports whether the URL matches one of the known job-site domain
// substrings.
func IsJobURL(url string, jobDomains []string) bool {
	urlLower := strings.ToLower(url)
	for _, domain := range jobDomains {
		if strings.Contains(urlLower, domain) {
			return true
		}
	}
	return false
}

// FirstJobURL returns the first job-posting URL in the text, if any.
func FirstJobURL(text string, jobDomains []string) (string, bool) {
	for _, u := range ExtractURLs(text) {
		if IsJobURL(u, jobDomains) {
			return u, true
		}
	}
	return "", false
}
