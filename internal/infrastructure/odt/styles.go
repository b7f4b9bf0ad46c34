package odt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Paragraph and character style names defined in every written document.
const (
	StyleFirstParagraph = "Text_20_body"
	StyleParagraph      = "First_20_line_20_indent"
	StyleQuotations     = "Quotations"
	StyleSceneDivider   = "Scene_20_divider"
	StyleFootnote       = "Footnote"
	StyleEndnote        = "Endnote"
	StyleListBullet     = "List_20_Bullet"
	StyleEmphasis       = "Emphasis"
	StyleStrong         = "Strong_20_Emphasis"
	StyleSection        = "Sect1"
)

// SceneDivider separates sections in written documents and starts a new
// section when a work-in-progress document is read.
const SceneDivider = "* * *"

// headingStyle returns the paragraph style of an outline level.
func headingStyle(level int) string {
	return fmt.Sprintf("Heading_20_%d", level)
}

// languageStyle returns the automatic text style of a language position.
func languageStyle(index int) string {
	return fmt.Sprintf("T%d", index)
}

// splitLanguage splits "ll-CC" into fo:language and fo:country values.
func splitLanguage(tag string) (language, country string) {
	language, country, found := strings.Cut(tag, "-")
	if !found || country == "" {
		country = "none"
	}
	return language, country
}

type languageStyleData struct {
	Name     string
	Language string
	Country  string
}

type contentData struct {
	Languages []languageStyleData
	Body      string
}

type stylesData struct {
	Language string
	Country  string
}

const namespaces = `xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
	`xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" ` +
	`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" ` +
	`xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" ` +
	`xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" ` +
	`xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0"`

var contentTemplate = template.Must(template.New("content.xml").Funcs(odf.FuncMap).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-content ` + namespaces + ` office:version="1.2">
 <office:automatic-styles>
  <style:style style:name="Sect1" style:family="section">
   <style:section-properties style:editable="false"/>
  </style:style>
{{- range .Languages}}
  <style:style style:name="{{.Name}}" style:family="text">
   <style:text-properties fo:language="{{xml .Language}}" fo:country="{{xml .Country}}"/>
  </style:style>
{{- end}}
 </office:automatic-styles>
 <office:body>
  <office:text>
{{.Body}}
  </office:text>
 </office:body>
</office:document-content>
`))

var stylesTemplate = template.Must(template.New("styles.xml").Funcs(odf.FuncMap).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles ` + namespaces + ` office:version="1.2">
 <office:styles>
  <style:default-style style:family="paragraph">
   <style:text-properties fo:language="{{xml .Language}}" fo:country="{{xml .Country}}"/>
  </style:default-style>
  <style:style style:name="Standard" style:family="paragraph"/>
  <style:style style:name="Text_20_body" style:display-name="Text body" style:family="paragraph" style:parent-style-name="Standard">
   <style:paragraph-properties fo:margin-top="0cm" fo:margin-bottom="0cm" fo:text-align="justify"/>
  </style:style>
  <style:style style:name="First_20_line_20_indent" style:display-name="First line indent" style:family="paragraph" style:parent-style-name="Text_20_body">
   <style:paragraph-properties fo:text-indent="0.5cm"/>
  </style:style>
  <style:style style:name="Quotations" style:family="paragraph" style:parent-style-name="Standard">
   <style:paragraph-properties fo:margin-left="1cm" fo:margin-right="1cm"/>
  </style:style>
  <style:style style:name="Scene_20_divider" style:display-name="Scene divider" style:family="paragraph" style:parent-style-name="Standard">
   <style:paragraph-properties fo:margin-top="0.4cm" fo:margin-bottom="0.4cm" fo:text-align="center"/>
  </style:style>
  <style:style style:name="Heading" style:family="paragraph" style:parent-style-name="Standard">
   <style:text-properties fo:font-weight="bold"/>
  </style:style>
  <style:style style:name="Heading_20_1" style:display-name="Heading 1" style:family="paragraph" style:parent-style-name="Heading" style:default-outline-level="1"/>
  <style:style style:name="Heading_20_2" style:display-name="Heading 2" style:family="paragraph" style:parent-style-name="Heading" style:default-outline-level="2"/>
  <style:style style:name="Heading_20_3" style:display-name="Heading 3" style:family="paragraph" style:parent-style-name="Heading" style:default-outline-level="3"/>
  <style:style style:name="Footnote" style:family="paragraph" style:parent-style-name="Standard"/>
  <style:style style:name="Endnote" style:family="paragraph" style:parent-style-name="Standard"/>
  <style:style style:name="List_20_Bullet" style:display-name="List Bullet" style:family="paragraph" style:parent-style-name="Text_20_body"/>
  <style:style style:name="Emphasis" style:family="text">
   <style:text-properties fo:font-style="italic"/>
  </style:style>
  <style:style style:name="Strong_20_Emphasis" style:display-name="Strong Emphasis" style:family="text">
   <style:text-properties fo:font-weight="bold"/>
  </style:style>
 </office:styles>
</office:document-styles>
`))

func renderContent(body string, languages []string) ([]byte, error) {
	data := contentData{Body: body}
	for i, tag := range languages {
		lang, country := splitLanguage(tag)
		data.Languages = append(data.Languages, languageStyleData{
			Name:     languageStyle(i + 1),
			Language: lang,
			Country:  country,
		})
	}
	return odf.Render(contentTemplate, data)
}

func renderStyles(locale string) ([]byte, error) {
	lang, country := splitLanguage(locale)
	if lang == "" {
		lang, country = "zxx", "none"
	}
	return odf.Render(stylesTemplate, stylesData{Language: lang, Country: country})
}
