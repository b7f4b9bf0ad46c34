package entities

import (
	"regexp"
	"strings"
)

var (
	// additionalWordLimits are separators that split words without spaces.
	additionalWordLimits = regexp.MustCompile(`--|—|–|</p>`)
	// noWordLimits are removed without leaving a word boundary.
	noWordLimits = regexp.MustCompile(`(?s)<note>.*?</note>|<note [^>]*>.*?</note>|<comment>.*?</comment>|<[^>]+>`)
)

// CountWords returns the number of words in a novx inline-XML string.
// Notes and comments do not count.
func CountWords(content string) int {
	if content == "" {
		return 0
	}
	text := additionalWordLimits.ReplaceAllString(content, " ")
	text = noWordLimits.ReplaceAllString(text, "")
	return len(strings.Fields(text))
}
