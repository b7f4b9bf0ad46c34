package ods

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// Cell styles of typed columns.
const (
	styleDate = "ce_date"
	styleTime = "ce_time"
)

type cell struct {
	Kind  string
	Value string
	Style string
	Lines []string
}

type sheet struct {
	Title   string
	Headers []string
	Rows    [][]cell
}

const namespaces = `xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
	`xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" ` +
	`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" ` +
	`xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" ` +
	`xmlns:number="urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0" ` +
	`xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"`

var contentTemplate = template.Must(template.New("content.xml").Funcs(odf.FuncMap).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-content ` + namespaces + ` office:version="1.2">
 <office:automatic-styles>
  <number:date-style style:name="N1">
   <number:year number:style="long"/><number:text>-</number:text><number:month number:style="long"/><number:text>-</number:text><number:day number:style="long"/>
  </number:date-style>
  <number:time-style style:name="N2">
   <number:hours number:style="long"/><number:text>:</number:text><number:minutes number:style="long"/>
  </number:time-style>
  <style:style style:name="` + styleDate + `" style:family="table-cell" style:parent-style-name="Default" style:data-style-name="N1"/>
  <style:style style:name="` + styleTime + `" style:family="table-cell" style:parent-style-name="Default" style:data-style-name="N2"/>
 </office:automatic-styles>
 <office:body>
  <office:spreadsheet>
   <table:table table:name="{{xml .Title}}">
    <table:table-column table:number-columns-repeated="{{len .Headers}}"/>
    <table:table-row>
{{- range .Headers}}
     <table:table-cell office:value-type="string"><text:p>{{xml .}}</text:p></table:table-cell>
{{- end}}
    </table:table-row>
{{- range .Rows}}
    <table:table-row>
{{- range .}}
{{- if eq .Kind "float"}}
     <table:table-cell office:value-type="float" office:value="{{.Value}}"><text:p>{{.Value}}</text:p></table:table-cell>
{{- else if eq .Kind "date"}}
     <table:table-cell table:style-name="{{.Style}}" office:value-type="date" office:date-value="{{.Value}}"><text:p>{{.Value}}</text:p></table:table-cell>
{{- else if eq .Kind "time"}}
     <table:table-cell table:style-name="{{.Style}}" office:value-type="time" office:time-value="{{.Value}}"><text:p>{{index .Lines 0}}</text:p></table:table-cell>
{{- else if .Lines}}
     <table:table-cell office:value-type="string">{{range .Lines}}<text:p>{{xml .}}</text:p>{{end}}</table:table-cell>
{{- else if .Style}}
     <table:table-cell table:style-name="{{.Style}}"/>
{{- else}}
     <table:table-cell/>
{{- end}}
{{- end}}
    </table:table-row>
{{- end}}
   </table:table>
  </office:spreadsheet>
 </office:body>
</office:document-content>
`))

var stylesTemplate = template.Must(template.New("styles.xml").Funcs(odf.FuncMap).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles ` + namespaces + ` office:version="1.2">
 <office:styles>
  <style:default-style style:family="table-cell">
   <style:text-properties fo:language="{{xml .Language}}" fo:country="{{xml .Country}}"/>
  </style:default-style>
  <style:style style:name="Default" style:family="table-cell"/>
 </office:styles>
</office:document-styles>
`))

// timeValue converts HH:MM[:SS] into an ODF duration.
func timeValue(v string) (string, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return fmt.Sprintf("PT%02dH%02dM%02dS", t.Hour(), t.Minute(), t.Second()), true
		}
	}
	return "", false
}

// makeCell renders a value. Typed cells are only written with a valid value;
// otherwise the cell stays empty but keeps the column's style.
func makeCell(kind CellKind, v string) cell {
	switch kind {
	case Float:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return cell{Kind: "float", Value: v}
		}
	case Date:
		if _, err := time.Parse(entities.DateLayout, v); err == nil {
			return cell{Kind: "date", Value: v, Style: styleDate}
		}
		return cell{Style: styleDate}
	case Time:
		if value, ok := timeValue(v); ok {
			return cell{Kind: "time", Value: value, Style: styleTime, Lines: []string{v}}
		}
		return cell{Style: styleTime}
	}
	if v == "" {
		return cell{}
	}
	return cell{Lines: strings.Split(v, "\n")}
}

func (l *List) sheet(n *entities.Novel) sheet {
	s := sheet{Title: l.Title, Headers: []string{IDHeader}}
	for _, c := range l.Columns {
		s.Headers = append(s.Headers, c.Header)
	}
	for _, id := range l.rows(n) {
		row := []cell{{Lines: []string{l.cellID(id)}}}
		for _, c := range l.Columns {
			row = append(row, makeCell(c.Kind, c.Get(n, id)))
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func (l *List) render(n *entities.Novel) (odf.Package, error) {
	content, err := odf.Render(contentTemplate, l.sheet(n))
	if err != nil {
		return odf.Package{}, fmt.Errorf("rendering content: %w", err)
	}
	lang, country := entities.NoLanguage, "none"
	if code, cc, err := entities.ParseLocale(n.Locale()); err == nil {
		lang = code
		if cc != "" {
			country = cc
		}
	}
	styles, err := odf.Render(stylesTemplate, struct{ Language, Country string }{lang, country})
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
	return odf.Package{Mimetype: odf.MimeSpreadsheet, Content: content, Styles: styles, Meta: meta}, nil
}
