package odf

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// Namespaces used when reading document members.
const (
	NSOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	NSStyle  = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	NSText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	NSTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	NSFO     = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
	NSDC     = "http://purl.org/dc/elements/1.1/"
	NSMeta   = "urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
)

// Generator identifies the application in written documents.
const Generator = "novx"

// Meta is the document metadata kept in meta.xml.
type Meta struct {
	Title       string
	Description string
	Author      string
	// Language is an "ll-CC" or "ll" tag.
	Language string
	Created  time.Time
}

var metaTemplate = template.Must(template.New("meta.xml").Funcs(FuncMap).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0" xmlns:dc="http://purl.org/dc/elements/1.1/" office:version="1.2">
 <office:meta>
  <meta:generator>{{.Generator}}</meta:generator>
  <dc:title>{{xml .Title}}</dc:title>
  <dc:description>{{xml .Description}}</dc:description>
  <meta:initial-creator>{{xml .Author}}</meta:initial-creator>
  <dc:creator>{{xml .Author}}</dc:creator>
  <meta:creation-date>{{.Date}}</meta:creation-date>
  <dc:date>{{.Date}}</dc:date>
{{- if .Language}}
  <dc:language>{{xml .Language}}</dc:language>
{{- end}}
 </office:meta>
</office:document-meta>
`))

// XML renders meta.xml.
func (m Meta) XML() ([]byte, error) {
	created := m.Created
	if created.IsZero() {
		created = time.Now()
	}
	return Render(metaTemplate, struct {
		Meta
		Generator string
		Date      string
	}{m, Generator, created.Format("2006-01-02T15:04:05")})
}

// ParseMeta reads title, description, author and language from meta.xml.
func ParseMeta(data []byte) (Meta, error) {
	root, err := xmldom.Parse(bytes.NewReader(data))
	if err != nil {
		return Meta{}, err
	}
	var m Meta
	office := root.Find("meta")
	if office == nil {
		return m, nil
	}
	m.Title = strings.TrimSpace(text(office, "title"))
	m.Description = strings.TrimSpace(text(office, "description"))
	m.Author = strings.TrimSpace(text(office, "initial-creator"))
	if m.Author == "" {
		m.Author = strings.TrimSpace(text(office, "creator"))
	}
	m.Language = strings.TrimSpace(text(office, "language"))
	return m, nil
}

func text(parent *xmldom.Node, name string) string {
	if el := parent.Find(name); el != nil {
		return el.InnerText()
	}
	return ""
}
