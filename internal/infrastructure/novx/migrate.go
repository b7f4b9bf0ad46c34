package novx

import (
	"fmt"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// EpigraphTitle is the title given to sections created from legacy epigraphs.
const EpigraphTitle = "Epigraph"

// migration transforms a parsed document in place so that it conforms to
// file version 1.minor.
type migration struct {
	minor int
	name  string
	apply func(root *xmldom.Node) error
}

// migrations are ordered by target version.
var migrations = []migration{
	{minor: 7, name: "explicit viewpoint", apply: hoistViewpoints},
	{minor: 8, name: "epigraph sections", apply: epigraphsToSections},
}

// Migrate applies every migration newer than fromMinor, bumping the version
// attribute after each step. It returns the resulting minor version.
func Migrate(root *xmldom.Node, fromMinor int) (int, error) {
	minor := fromMinor
	for _, m := range migrations {
		if m.minor <= minor {
			continue
		}
		if err := m.apply(root); err != nil {
			return minor, fmt.Errorf("migrating to %d.%d (%s): %w", MajorVersion, m.minor, m.name, err)
		}
		minor = m.minor
		root.SetAttr("version", fmt.Sprintf("%d.%d", MajorVersion, minor))
	}
	return minor, nil
}

func sectionElements(root *xmldom.Node) []*xmldom.Node {
	var out []*xmldom.Node
	chapters := root.Find("CHAPTERS")
	if chapters == nil {
		return nil
	}
	for _, ch := range chapters.FindAll("CHAPTER") {
		out = append(out, ch.FindAll("SECTION")...)
	}
	return out
}

// hoistViewpoints makes the first related character of every section its
// explicit viewpoint, unless a viewpoint is already present.
func hoistViewpoints(root *xmldom.Node) error {
	for _, sc := range sectionElements(root) {
		if sc.Find("Viewpoint") != nil {
			continue
		}
		chars := sc.Find("Characters")
		if chars == nil {
			continue
		}
		ids := strings.Fields(chars.AttrValue("ids"))
		if len(ids) == 0 {
			continue
		}
		vp := xmldom.NewElement("Viewpoint")
		vp.SetAttr("id", ids[0])
		sc.InsertAt(sc.IndexOf(chars), vp)
	}
	return nil
}

// epigraphsToSections moves each chapter's inline epigraph into a new first
// section of that chapter and flags the chapter.
func epigraphsToSections(root *xmldom.Node) error {
	chapters := root.Find("CHAPTERS")
	if chapters == nil {
		return nil
	}

	highest := 0
	for _, sc := range sectionElements(root) {
		if n := entities.IDNumber(entities.SectionPrefix, sc.AttrValue("id")); n > highest {
			highest = n
		}
	}

	for _, ch := range chapters.FindAll("CHAPTER") {
		epigraph := ch.Find("Epigraph")
		if epigraph == nil {
			continue
		}
		source := ch.Find("EpigraphSrc")

		highest++
		section := xmldom.NewElement("SECTION")
		section.SetAttr("id", entities.FormatID(entities.SectionPrefix, highest))
		if ch.AttrValue("type") == "1" {
			section.SetAttr("type", "1")
		}
		section.AddText("Title", EpigraphTitle)
		content := section.AddElement("Content")
		content.Append(asParagraphs(epigraph)...)
		if source != nil {
			content.Append(asParagraphs(source)...)
		}

		index := -1
		if first := ch.Find("SECTION"); first != nil {
			index = ch.IndexOf(first)
		}
		ch.Remove(epigraph)
		if source != nil {
			ch.Remove(source)
		}
		if index >= 0 {
			index = ch.IndexOf(ch.Find("SECTION"))
		}
		ch.InsertAt(index, section)
		ch.SetAttr("hasEpigraph", "1")
	}
	return nil
}

// asParagraphs returns el's <p> children, or its text wrapped in a paragraph.
func asParagraphs(el *xmldom.Node) []*xmldom.Node {
	if ps := el.FindAll("p"); len(ps) > 0 {
		return ps
	}
	text := strings.TrimSpace(el.InnerText())
	if text == "" {
		return nil
	}
	p := xmldom.NewElement("p")
	p.Append(xmldom.NewText(text))
	return []*xmldom.Node{p}
}
