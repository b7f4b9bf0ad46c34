package entities

import (
	"fmt"
	"regexp"
	"slices"

	"golang.org/x/text/language"
)

// NoLanguage marks a document without language information. ODF uses "zxx"
// for "no linguistic content".
const NoLanguage = "zxx"

var langSpanAttr = regexp.MustCompile(`xml:lang="([^"]*)"`)

// ParseLocale splits a BCP 47 tag like "en-US" into its ISO language and
// country codes. A tag without region yields an empty country.
func ParseLocale(tag string) (languageCode, countryCode string, err error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", "", fmt.Errorf("%w: locale %q: %v", ErrInvalidValue, tag, err)
	}
	base, _ := t.Base()
	region, confidence := t.Region()
	if confidence == language.Exact {
		countryCode = region.String()
	}
	return base.String(), countryCode, nil
}

// CanonicalLanguage returns the canonical form of a BCP 47 tag, or the input
// unchanged if it does not parse.
func CanonicalLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}

// Locale returns the document locale as "ll-CC" or "ll".
func (n *Novel) Locale() string {
	if n.countryCode == "" || n.countryCode == "none" {
		return n.languageCode
	}
	return n.languageCode + "-" + n.countryCode
}

// SetLocale sets language and country code from a BCP 47 tag. The ODF
// "no language" codes are accepted verbatim.
func (n *Novel) SetLocale(tag string) error {
	var lang, country string
	switch tag {
	case "", NoLanguage, NoLanguage + "-none":
		if tag != "" {
			lang, country = NoLanguage, "none"
		}
	default:
		var err error
		lang, country, err = ParseLocale(tag)
		if err != nil {
			return err
		}
	}
	if lang == n.languageCode && country == n.countryCode {
		return nil
	}
	n.languageCode = lang
	n.countryCode = country
	n.changed()
	return nil
}

// Languages returns the ordered list of languages used in inline spans.
func (n *Novel) Languages() []string { return slices.Clone(n.languages) }

// AddLanguage appends a language tag to the list if it is not yet present
// and returns its 1-based position.
func (n *Novel) AddLanguage(tag string) int {
	tag = CanonicalLanguage(tag)
	if i := slices.Index(n.languages, tag); i >= 0 {
		return i + 1
	}
	n.languages = append(n.languages, tag)
	return len(n.languages)
}

// CollectLanguages scans all section contents for language spans and adds
// the languages found, in order of appearance.
func (n *Novel) CollectLanguages() []string {
	for _, scID := range n.SectionsInOrder() {
		s := n.Sections[scID]
		if s == nil {
			continue
		}
		for _, m := range langSpanAttr.FindAllStringSubmatch(s.content, -1) {
			n.AddLanguage(m[1])
		}
	}
	return n.Languages()
}
