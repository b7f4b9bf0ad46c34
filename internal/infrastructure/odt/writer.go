package odt

import (
	"fmt"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Kind selects how chapters and sections are tagged in a written document.
type Kind int

const (
	// Plain documents carry no section identifiers.
	Plain Kind = iota
	// Manuscript documents wrap chapters and sections in named text sections.
	Manuscript
	// Proof documents mark chapters and sections with bracketed text markers.
	Proof
)

// Marker prefixes of tagged documents.
const (
	ChapterTag = "ChID"
	SectionTag = "ScID"
)

func (k Kind) String() string {
	switch k {
	case Manuscript:
		return "manuscript"
	case Proof:
		return "proof"
	default:
		return "plain"
	}
}

// bodyBuilder assembles the office:text body of an exported novel.
type bodyBuilder struct {
	kind Kind
	tr   *Translator
	b    strings.Builder
}

func (bb *bodyBuilder) paragraph(style, text string) {
	fmt.Fprintf(&bb.b, `<text:p text:style-name="%s">%s</text:p>`+"\n", style, escapeODT(text))
}

func (bb *bodyBuilder) open(tag, id string) {
	switch bb.kind {
	case Manuscript:
		fmt.Fprintf(&bb.b, `<text:section text:style-name="%s" text:name="%s:%s">`+"\n", StyleSection, tag, id)
	case Proof:
		bb.paragraph(StyleParagraph, fmt.Sprintf("[%s:%s]", tag, id))
	}
}

func (bb *bodyBuilder) close(tag string) {
	switch bb.kind {
	case Manuscript:
		bb.b.WriteString("</text:section>\n")
	case Proof:
		bb.paragraph(StyleParagraph, fmt.Sprintf("[/%s]", tag))
	}
}

// buildBody writes normal chapters and their normal sections in tree order.
func buildBody(n *entities.Novel, kind Kind, tr *Translator) string {
	bb := &bodyBuilder{kind: kind, tr: tr}
	for _, chID := range n.Tree.GetChildren(entities.ChapterRoot) {
		ch, ok := n.Chapters[chID]
		if !ok || ch.ChType() != entities.ChapterNormal || ch.IsTrash() {
			continue
		}
		bb.open(ChapterTag, chID)
		level := entities.LevelChapter
		if ch.IsPart() {
			level = entities.LevelPart
		}
		fmt.Fprintf(&bb.b, `<text:h text:style-name="%s" text:outline-level="%d">%s</text:h>`+"\n",
			headingStyle(level), level, escapeODT(ch.Title()))

		first := true
		written := false
		for _, scID := range n.Tree.GetChildren(chID) {
			sc, ok := n.Sections[scID]
			if !ok || sc.ScType() != entities.SectionNormal {
				continue
			}
			if written && !sc.AppendToPrev() {
				bb.paragraph(StyleSceneDivider, SceneDivider)
				first = true
			}
			bb.open(SectionTag, scID)
			if text := tr.Translate(sc.Content(), first); text != "" {
				bb.b.WriteString(text)
				bb.b.WriteString("\n")
				first = false
			}
			bb.close(SectionTag)
			written = true
		}
		bb.close(ChapterTag)
	}
	return bb.b.String()
}

// render builds the container members for a novel.
func render(n *entities.Novel, kind Kind) (odf.Package, error) {
	tr := NewTranslator(n.Languages())
	body := buildBody(n, kind, tr)

	content, err := renderContent(body, tr.Languages())
	if err != nil {
		return odf.Package{}, fmt.Errorf("rendering content: %w", err)
	}
	styles, err := renderStyles(n.Locale())
	if err != nil {
		return odf.Package{}, fmt.Errorf("rendering styles: %w", err)
	}
	meta, err := odf.Meta{
		Title:       n.Title(),
		Description: n.Desc(),
		Author:      n.Author(),
		Language:    n.Locale(),
	}.XML()
	if err != nil {
		return odf.Package{}, fmt.Errorf("rendering metadata: %w", err)
	}
	return odf.Package{
		Mimetype: odf.MimeText,
		Content:  content,
		Styles:   styles,
		Meta:     meta,
	}, nil
}
