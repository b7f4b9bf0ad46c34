package odt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// Translator converts novx inline XML into ODT body markup. Language spans
// refer to automatic text styles numbered after the position of their
// language in the list the translator was built with.
type Translator struct {
	languages []string
}

// NewTranslator returns a translator for a document using languages.
func NewTranslator(languages []string) *Translator {
	return &Translator{languages: languages}
}

// translateState is the state of one Translate call.
type translateState struct {
	// firstParagraph is set until the first body paragraph was written.
	firstParagraph bool
	// closers holds the markup closing each open element, innermost last.
	closers []string
	// noteClass is "footnote" or "endnote" inside a note body, else "".
	noteClass string
	// inComment is set inside an annotation.
	inComment bool
	// listDepth counts open list items.
	listDepth int
}

func (s *translateState) push(closer string) { s.closers = append(s.closers, closer) }

func (s *translateState) pop() string {
	if len(s.closers) == 0 {
		return ""
	}
	closer := s.closers[len(s.closers)-1]
	s.closers = s.closers[:len(s.closers)-1]
	return closer
}

// Translate returns the ODT paragraphs for content. first selects the
// first-paragraph style for the opening paragraph. Content that is not
// well-formed markup is written as one paragraph per line.
func (t *Translator) Translate(content string, first bool) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var b strings.Builder
	st := &translateState{firstParagraph: first}
	if err := t.translate(&b, content, st); err != nil {
		b.Reset()
		st = &translateState{firstParagraph: first}
		for _, line := range strings.Split(content, "\n") {
			t.writePlainParagraph(&b, line, st)
		}
	}
	return b.String()
}

func (t *Translator) translate(b *strings.Builder, content string, st *translateState) error {
	decoder := xml.NewDecoder(strings.NewReader("<fragment>" + content + "</fragment>"))
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("translating content: %w", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if tok.Name.Local == "fragment" {
				continue
			}
			t.open(b, tok, st)
		case xml.EndElement:
			if tok.Name.Local == "fragment" {
				continue
			}
			b.WriteString(st.pop())
			switch tok.Name.Local {
			case "note":
				st.noteClass = ""
			case "comment":
				st.inComment = false
			case "li":
				st.listDepth--
			}
		case xml.CharData:
			text := string(tok)
			if len(st.closers) == 0 {
				if strings.TrimSpace(text) != "" {
					for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
						t.writePlainParagraph(b, line, st)
					}
				}
				continue
			}
			b.WriteString(escapeODT(text))
		}
	}
	return nil
}

func (t *Translator) open(b *strings.Builder, tok xml.StartElement, st *translateState) {
	switch tok.Name.Local {
	case "p":
		switch {
		case st.listDepth > 0:
			st.push("")
		case st.noteClass != "":
			style := StyleFootnote
			if st.noteClass == "endnote" {
				style = StyleEndnote
			}
			fmt.Fprintf(b, `<text:p text:style-name="%s">`, style)
			st.push("</text:p>")
		case st.inComment:
			b.WriteString("<text:p>")
			st.push("</text:p>")
		default:
			style := StyleParagraph
			if st.firstParagraph {
				style = StyleFirstParagraph
			}
			if attrValue(tok, "style") == "quotations" {
				style = StyleQuotations
			}
			st.firstParagraph = false
			fmt.Fprintf(b, `<text:p text:style-name="%s">`, style)
			if lang := langOf(tok); lang != "" {
				fmt.Fprintf(b, `<text:span text:style-name="%s">`, t.languageStyle(lang))
				st.push("</text:span></text:p>")
			} else {
				st.push("</text:p>")
			}
		}
	case "em":
		fmt.Fprintf(b, `<text:span text:style-name="%s">`, StyleEmphasis)
		st.push("</text:span>")
	case "strong":
		fmt.Fprintf(b, `<text:span text:style-name="%s">`, StyleStrong)
		st.push("</text:span>")
	case "span":
		if lang := langOf(tok); lang != "" {
			fmt.Fprintf(b, `<text:span text:style-name="%s">`, t.languageStyle(lang))
		} else {
			b.WriteString("<text:span>")
		}
		st.push("</text:span>")
	case "note":
		class := attrValue(tok, "class")
		if class != "endnote" {
			class = "footnote"
		}
		st.noteClass = class
		fmt.Fprintf(b, `<text:note text:id="%s" text:note-class="%s">`, xmldom.EscapeText(attrValue(tok, "id")), class)
		st.push("</text:note-body></text:note>")
	case "note-citation":
		b.WriteString("<text:note-citation>")
		st.push("</text:note-citation><text:note-body>")
	case "comment":
		st.inComment = true
		b.WriteString("<office:annotation>")
		st.push("</office:annotation>")
	case "creator":
		b.WriteString("<dc:creator>")
		st.push("</dc:creator>")
	case "date":
		b.WriteString("<dc:date>")
		st.push("</dc:date>")
	case "ul":
		b.WriteString("<text:list>")
		st.push("</text:list>")
	case "li":
		st.listDepth++
		fmt.Fprintf(b, `<text:list-item><text:p text:style-name="%s">`, StyleListBullet)
		st.push("</text:p></text:list-item>")
	default:
		st.push("")
	}
}

func (t *Translator) writePlainParagraph(b *strings.Builder, line string, st *translateState) {
	style := StyleParagraph
	if st.firstParagraph {
		style = StyleFirstParagraph
	}
	st.firstParagraph = false
	fmt.Fprintf(b, `<text:p text:style-name="%s">%s</text:p>`, style, escapeODT(line))
}

// languageStyle returns the automatic style of a language, registering the
// language if it is not yet known. Tags are compared in canonical form.
func (t *Translator) languageStyle(lang string) string {
	lang = entities.CanonicalLanguage(lang)
	for i, l := range t.languages {
		if entities.CanonicalLanguage(l) == lang {
			return languageStyle(i + 1)
		}
	}
	t.languages = append(t.languages, lang)
	return languageStyle(len(t.languages))
}

// Languages returns the languages in style order, including those
// registered while translating.
func (t *Translator) Languages() []string { return t.languages }

func attrValue(tok xml.StartElement, name string) string {
	for _, a := range tok.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

func langOf(tok xml.StartElement) string {
	for _, a := range tok.Attr {
		if a.Name.Local == "lang" && (a.Name.Space == xmldom.XMLNamespace || a.Name.Space == "xml") {
			return a.Value
		}
	}
	return ""
}

// escapeODT escapes text and encodes tabs, line breaks and runs of spaces
// the way ODF requires.
func escapeODT(text string) string {
	var b strings.Builder
	spaces := 0
	flush := func() {
		if spaces == 0 {
			return
		}
		b.WriteByte(' ')
		if spaces > 1 {
			fmt.Fprintf(&b, `<text:s text:c="%d"/>`, spaces-1)
		}
		spaces = 0
	}
	for _, r := range text {
		if r == ' ' {
			spaces++
			continue
		}
		flush()
		switch r {
		case '\t':
			b.WriteString("<text:tab/>")
		case '\n':
			b.WriteString("<text:line-break/>")
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}
