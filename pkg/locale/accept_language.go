package locale

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage parses an Accept-Language header into normalized tags
// ordered by quality, best first. Tags with q=0, wildcards and malformed
// headers yield nothing. The result is meant for Registry.Resolve.
//
// Example header: "fr-CH, fr;q=0.9, en;q=0.8, de;q=0.7, *;q=0.5"
// Returns: ["fr-ch", "fr", "en", "de"]
func ParseAcceptLanguage(header string) []string {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(tags))
	for _, t := range tags {
		// "*" parses as the "mul" (multiple languages) tag.
		if t == language.Und || t.String() == "mul" {
			continue
		}
		out = append(out, Normalize(t.String()))
	}
	return out
}
