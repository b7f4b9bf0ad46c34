package odt

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// EventKind tells what a parser event reports.
type EventKind int

const (
	// SectionStart opens a named text section.
	SectionStart EventKind = iota
	// SectionEnd closes a named text section.
	SectionEnd
	// Heading is a heading paragraph.
	Heading
	// Paragraph is a body paragraph or list.
	Paragraph
)

// Event is one normalized block of an ODT body.
type Event struct {
	Kind EventKind
	// Name is the text section name.
	Name string
	// Level is the heading outline level.
	Level int
	// Text is the plain text of a heading or paragraph.
	Text string
	// XML is the paragraph as novx inline markup.
	XML string
}

// Client consumes the events of a parsed document.
type Client interface {
	// SetMeta receives the document metadata before any event.
	SetMeta(meta odf.Meta)
	// Handle receives body events in document order.
	Handle(ev Event) error
	// Finish is called after the last event.
	Finish() error
}

// Parser reads ODT documents and reports their bodies to a Client.
type Parser struct {
	logger *slog.Logger
}

// NewParser returns a parser. A nil logger uses slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads the document at path.
func (p *Parser) Parse(path string, client Client) error {
	r, err := odf.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	styles := newStyleTable()
	if r.Has(odf.StylesFile) {
		data, err := r.ReadFile(odf.StylesFile)
		if err != nil {
			return err
		}
		root, err := xmldom.Parse(bytes.NewReader(data))
		if err != nil {
			return errs.NewFormatError(path, "cannot process styles", err)
		}
		styles.loadDocument(root)
	}

	var meta odf.Meta
	if r.Has(odf.MetaFile) {
		data, err := r.ReadFile(odf.MetaFile)
		if err != nil {
			return err
		}
		if meta, err = odf.ParseMeta(data); err != nil {
			return errs.NewFormatError(path, "cannot process metadata", err)
		}
	}
	if meta.Language == "" {
		meta.Language = styles.defaultLanguage
	}

	data, err := r.ReadFile(odf.ContentFile)
	if err != nil {
		return err
	}
	root, err := xmldom.ParseMixed(bytes.NewReader(data))
	if err != nil {
		return errs.NewFormatError(path, "cannot process content", err)
	}
	styles.loadDocument(root)

	body := root.Find("body")
	if body == nil {
		return errs.NewFormatError(path, "document has no body", nil)
	}
	text := body.Find("text")
	if text == nil {
		return errs.NewFormatError(path, "not a text document", nil)
	}

	client.SetMeta(meta)
	w := &bodyWalker{styles: styles, client: client}
	if err := w.blocks(text); err != nil {
		return err
	}
	if err := client.Finish(); err != nil {
		return err
	}
	p.logger.Debug("parsed ODT document", "path", path, "paragraphs", w.paragraphs)
	return nil
}

// styleRole is what a style means for the novx markup.
type styleRole struct {
	emphasis   bool
	strong     bool
	language   string
	quotations bool
	heading    int
}

type styleDef struct {
	role   styleRole
	parent string
}

// styleTable maps style names to roles, following parent styles.
type styleTable struct {
	defs            map[string]styleDef
	defaultLanguage string
}

func newStyleTable() *styleTable {
	return &styleTable{defs: make(map[string]styleDef)}
}

// loadDocument reads named and automatic styles and the default language.
func (t *styleTable) loadDocument(root *xmldom.Node) {
	for _, container := range []string{"styles", "automatic-styles"} {
		el := root.Find(container)
		if el == nil {
			continue
		}
		for _, s := range el.Elements() {
			switch s.Name {
			case "default-style":
				if s.AttrLocal("family") != "paragraph" {
					continue
				}
				if props := s.Find("text-properties"); props != nil {
					t.defaultLanguage = languageTag(props)
				}
			case "style":
				t.add(s)
			}
		}
	}
}

func (t *styleTable) add(s *xmldom.Node) {
	name := s.AttrLocal("name")
	if name == "" {
		return
	}
	def := styleDef{parent: s.AttrLocal("parent-style-name")}
	switch {
	case name == StyleEmphasis:
		def.role.emphasis = true
	case name == StyleStrong:
		def.role.strong = true
	case name == StyleQuotations:
		def.role.quotations = true
	case strings.HasPrefix(name, "Heading_20_"):
		def.role.heading, _ = strconv.Atoi(strings.TrimPrefix(name, "Heading_20_"))
	}
	if level, err := strconv.Atoi(s.AttrLocal("default-outline-level")); err == nil {
		def.role.heading = level
	}
	if props := s.Find("text-properties"); props != nil {
		if props.AttrLocal("font-style") == "italic" {
			def.role.emphasis = true
		}
		if props.AttrLocal("font-weight") == "bold" && def.role.heading == 0 {
			def.role.strong = true
		}
		if lang := languageTag(props); lang != "" {
			def.role.language = lang
		}
	}
	t.defs[name] = def
}

// resolve merges a style's role with those of its ancestors.
func (t *styleTable) resolve(name string) styleRole {
	var role styleRole
	for depth := 0; name != "" && depth < 16; depth++ {
		def, ok := t.defs[name]
		if !ok {
			break
		}
		role.emphasis = role.emphasis || def.role.emphasis
		role.strong = role.strong || def.role.strong
		role.quotations = role.quotations || def.role.quotations
		if role.language == "" {
			role.language = def.role.language
		}
		if role.heading == 0 {
			role.heading = def.role.heading
		}
		name = def.parent
	}
	if role.language == t.defaultLanguage {
		role.language = ""
	}
	return role
}

// languageTag builds "ll-CC" from fo:language and fo:country.
func languageTag(props *xmldom.Node) string {
	lang := props.AttrLocal("language")
	if lang == "" || lang == "zxx" {
		return ""
	}
	if country := props.AttrLocal("country"); country != "" && country != "none" {
		return lang + "-" + country
	}
	return lang
}

// bodyWalker turns the block structure of office:text into events.
type bodyWalker struct {
	styles     *styleTable
	client     Client
	paragraphs int
}

func (w *bodyWalker) blocks(parent *xmldom.Node) error {
	for _, el := range parent.Elements() {
		if err := w.block(el); err != nil {
			return err
		}
	}
	return nil
}

func (w *bodyWalker) block(el *xmldom.Node) error {
	switch el.Name {
	case "h":
		level, err := strconv.Atoi(el.AttrLocal("outline-level"))
		if err != nil || level < 1 {
			level = 1
		}
		return w.client.Handle(Event{Kind: Heading, Level: level, Text: strings.TrimSpace(plainText(el))})
	case "p":
		role := w.styles.resolve(el.AttrLocal("style-name"))
		if role.heading > 0 {
			return w.client.Handle(Event{Kind: Heading, Level: role.heading, Text: strings.TrimSpace(plainText(el))})
		}
		w.paragraphs++
		return w.client.Handle(Event{Kind: Paragraph, Text: plainText(el), XML: w.paragraph(el, role)})
	case "list":
		w.paragraphs++
		return w.client.Handle(Event{Kind: Paragraph, Text: plainText(el), XML: w.list(el)})
	case "section":
		name := el.AttrLocal("name")
		if err := w.client.Handle(Event{Kind: SectionStart, Name: name}); err != nil {
			return err
		}
		if err := w.blocks(el); err != nil {
			return err
		}
		return w.client.Handle(Event{Kind: SectionEnd, Name: name})
	case "sequence-decls", "tracked-changes", "forms", "soft-page-break", "variable-decls", "user-field-decls":
		return nil
	default:
		return w.blocks(el)
	}
}

func (w *bodyWalker) paragraph(el *xmldom.Node, role styleRole) string {
	var b strings.Builder
	b.WriteString("<p")
	if role.quotations {
		b.WriteString(` style="quotations"`)
	}
	if role.language != "" {
		fmt.Fprintf(&b, ` xml:lang="%s"`, xmldom.EscapeText(role.language))
	}
	b.WriteString(">")
	w.inline(&b, el)
	b.WriteString("</p>")
	return b.String()
}

func (w *bodyWalker) list(el *xmldom.Node) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range el.FindAll("list-item") {
		b.WriteString("<li>")
		written := 0
		for _, p := range item.Elements() {
			if p.Name == "list" {
				continue
			}
			if written > 0 {
				b.WriteString(" ")
			}
			w.inline(&b, p)
			written++
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// inline writes the children of el as novx inline markup.
func (w *bodyWalker) inline(b *strings.Builder, el *xmldom.Node) {
	for _, c := range el.Children {
		if c.IsText() {
			b.WriteString(xmldom.EscapeText(c.Text))
			continue
		}
		switch c.Name {
		case "span":
			role := w.styles.resolve(c.AttrLocal("style-name"))
			var closers []string
			if role.language != "" {
				fmt.Fprintf(b, `<span xml:lang="%s">`, xmldom.EscapeText(role.language))
				closers = append(closers, "</span>")
			}
			if role.strong {
				b.WriteString("<strong>")
				closers = append(closers, "</strong>")
			}
			if role.emphasis {
				b.WriteString("<em>")
				closers = append(closers, "</em>")
			}
			w.inline(b, c)
			for i := len(closers) - 1; i >= 0; i-- {
				b.WriteString(closers[i])
			}
		case "s":
			n, err := strconv.Atoi(c.AttrLocal("c"))
			if err != nil || n < 1 {
				n = 1
			}
			b.WriteString(strings.Repeat(" ", n))
		case "tab":
			b.WriteString("\t")
		case "line-break":
			b.WriteString("\n")
		case "note":
			class := c.AttrLocal("note-class")
			if class == "" {
				class = "footnote"
			}
			fmt.Fprintf(b, `<note id="%s" class="%s">`, xmldom.EscapeText(c.AttrLocal("id")), xmldom.EscapeText(class))
			if citation := c.Find("note-citation"); citation != nil {
				fmt.Fprintf(b, "<note-citation>%s</note-citation>", xmldom.EscapeText(citation.InnerText()))
			}
			if body := c.Find("note-body"); body != nil {
				for _, p := range body.FindAll("p") {
					b.WriteString("<p>")
					w.inline(b, p)
					b.WriteString("</p>")
				}
			}
			b.WriteString("</note>")
		case "annotation":
			b.WriteString("<comment>")
			if creator := c.Find("creator"); creator != nil {
				fmt.Fprintf(b, "<creator>%s</creator>", xmldom.EscapeText(creator.InnerText()))
			}
			if date := c.Find("date"); date != nil {
				fmt.Fprintf(b, "<date>%s</date>", xmldom.EscapeText(date.InnerText()))
			}
			for _, p := range c.FindAll("p") {
				b.WriteString("<p>")
				w.inline(b, p)
				b.WriteString("</p>")
			}
			b.WriteString("</comment>")
		case "annotation-end", "bookmark", "bookmark-start", "bookmark-end", "soft-page-break", "reference-mark":
		default:
			w.inline(b, c)
		}
	}
}

// plainText returns the visible text of a block, without notes and
// annotations.
func plainText(el *xmldom.Node) string {
	var b strings.Builder
	var walk func(n *xmldom.Node)
	walk = func(n *xmldom.Node) {
		for _, c := range n.Children {
			if c.IsText() {
				b.WriteString(c.Text)
				continue
			}
			switch c.Name {
			case "note", "annotation":
			case "s":
				n, err := strconv.Atoi(c.AttrLocal("c"))
				if err != nil || n < 1 {
					n = 1
				}
				b.WriteString(strings.Repeat(" ", n))
			case "tab":
				b.WriteString("\t")
			case "line-break":
				b.WriteString("\n")
			default:
				walk(c)
			}
		}
	}
	walk(el)
	return b.String()
}
