package entities

import (
	"strconv"
	"strings"
)

// Tree roots.
const (
	ChapterRoot     = "CH"
	CharacterRoot   = "CR"
	LocationRoot    = "LC"
	ItemRoot        = "IT"
	PlotLineRoot    = "AC"
	ProjectNoteRoot = "PN"
)

// ID prefixes. IDs are unique across all kinds because of their prefix.
const (
	ChapterPrefix     = "ch"
	SectionPrefix     = "sc"
	CharacterPrefix   = "cr"
	LocationPrefix    = "lc"
	ItemPrefix        = "it"
	PlotLinePrefix    = "ac"
	PlotPointPrefix   = "ap"
	ProjectNotePrefix = "pn"
)

// Roots lists the tree roots in display order.
var Roots = []string{
	ChapterRoot,
	CharacterRoot,
	LocationRoot,
	ItemRoot,
	PlotLineRoot,
	ProjectNoteRoot,
}

// IDNumber returns the numeric counter of id, or -1 if id does not consist of
// prefix followed by a decimal number.
func IDNumber(prefix, id string) int {
	if !strings.HasPrefix(id, prefix) {
		return -1
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// IsID reports whether id is a well-formed ID of the given kind.
func IsID(prefix, id string) bool {
	return IDNumber(prefix, id) >= 0
}

// FormatID builds an ID from prefix and counter.
func FormatID(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}

// NextID returns prefix plus one more than the highest counter among ids.
func NextID[V any](prefix string, ids map[string]V) string {
	highest := 0
	for id := range ids {
		if n := IDNumber(prefix, id); n > highest {
			highest = n
		}
	}
	return FormatID(prefix, highest+1)
}
