package odt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_Translate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		first   bool
		want    string
	}{
		{
			name:    "empty",
			content: "  ",
			first:   true,
			want:    "",
		},
		{
			name:    "first paragraph style",
			content: "<p>Hello</p>\n<p>World</p>",
			first:   true,
			want: `<text:p text:style-name="Text_20_body">Hello</text:p>` +
				`<text:p text:style-name="First_20_line_20_indent">World</text:p>`,
		},
		{
			name:    "emphasis and strong",
			content: "<p>A <em>b</em> <strong>c</strong></p>",
			want: `<text:p text:style-name="First_20_line_20_indent">A ` +
				`<text:span text:style-name="Emphasis">b</text:span> ` +
				`<text:span text:style-name="Strong_20_Emphasis">c</text:span></text:p>`,
		},
		{
			name:    "quotations",
			content: `<p style="quotations">Q</p>`,
			first:   true,
			want:    `<text:p text:style-name="Quotations">Q</text:p>`,
		},
		{
			name:    "escaping and white space",
			content: "<p>Fish &amp; Chips  here\tnow</p>",
			want: `<text:p text:style-name="First_20_line_20_indent">Fish &amp; Chips ` +
				`<text:s text:c="1"/>here<text:tab/>now</text:p>`,
		},
		{
			name:    "footnote",
			content: `<p>x<note id="ftn1" class="footnote"><note-citation>1</note-citation><p>Note text</p></note></p>`,
			want: `<text:p text:style-name="First_20_line_20_indent">x` +
				`<text:note text:id="ftn1" text:note-class="footnote">` +
				`<text:note-citation>1</text:note-citation><text:note-body>` +
				`<text:p text:style-name="Footnote">Note text</text:p>` +
				`</text:note-body></text:note></text:p>`,
		},
		{
			name:    "endnote",
			content: `<p>y<note id="ftn2" class="endnote"><note-citation>i</note-citation><p>End</p></note></p>`,
			want: `<text:p text:style-name="First_20_line_20_indent">y` +
				`<text:note text:id="ftn2" text:note-class="endnote">` +
				`<text:note-citation>i</text:note-citation><text:note-body>` +
				`<text:p text:style-name="Endnote">End</text:p>` +
				`</text:note-body></text:note></text:p>`,
		},
		{
			name:    "comment",
			content: `<p>x<comment><creator>Me</creator><date>2024-01-01</date><p>Hm</p></comment></p>`,
			want: `<text:p text:style-name="First_20_line_20_indent">x<office:annotation>` +
				`<dc:creator>Me</dc:creator><dc:date>2024-01-01</dc:date><text:p>Hm</text:p>` +
				`</office:annotation></text:p>`,
		},
		{
			name:    "list",
			content: `<ul><li>a</li><li>b</li></ul>`,
			want: `<text:list>` +
				`<text:list-item><text:p text:style-name="List_20_Bullet">a</text:p></text:list-item>` +
				`<text:list-item><text:p text:style-name="List_20_Bullet">b</text:p></text:list-item>` +
				`</text:list>`,
		},
		{
			name:    "plain text lines",
			content: "Para one.\nPara two.",
			first:   true,
			want: `<text:p text:style-name="Text_20_body">Para one.</text:p>` +
				`<text:p text:style-name="First_20_line_20_indent">Para two.</text:p>`,
		},
		{
			name:    "malformed markup falls back to lines",
			content: "line one\nline <two",
			first:   true,
			want: `<text:p text:style-name="Text_20_body">line one</text:p>` +
				`<text:p text:style-name="First_20_line_20_indent">line &lt;two</text:p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(nil)
			assert.Equal(t, tt.want, tr.Translate(tt.content, tt.first))
		})
	}
}

func TestTranslator_LanguageStyles(t *testing.T) {
	tr := NewTranslator([]string{"de-DE"})

	got := tr.Translate(`<p><span xml:lang="fr-FR">oui</span> <span xml:lang="de-DE">ja</span></p>`, false)

	assert.Equal(t, `<text:p text:style-name="First_20_line_20_indent">`+
		`<text:span text:style-name="T2">oui</text:span> `+
		`<text:span text:style-name="T1">ja</text:span></text:p>`, got)
	assert.Equal(t, []string{"de-DE", "fr-FR"}, tr.Languages())
}

func TestTranslator_LanguageTagCase(t *testing.T) {
	tests := []struct {
		name      string
		known     []string
		content   string
		wantStyle string
		wantLangs []string
	}{
		{
			name:      "lower case region",
			known:     []string{"en-US"},
			content:   `<p><span xml:lang="en-us">hi</span></p>`,
			wantStyle: "T1",
			wantLangs: []string{"en-US"},
		},
		{
			name:      "upper case language",
			known:     []string{"fr-FR", "en-US"},
			content:   `<p><span xml:lang="EN-US">hi</span></p>`,
			wantStyle: "T2",
			wantLangs: []string{"fr-FR", "en-US"},
		},
		{
			name:      "new tag stored canonical",
			known:     nil,
			content:   `<p><span xml:lang="de-de">hi</span></p>`,
			wantStyle: "T1",
			wantLangs: []string{"de-DE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(tt.known)

			got := tr.Translate(tt.content, true)

			assert.Contains(t, got, `<text:span text:style-name="`+tt.wantStyle+`">hi</text:span>`)
			assert.Equal(t, tt.wantLangs, tr.Languages())
		})
	}
}

func TestEscapeODT(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a b"},
		{"a   b", `a <text:s text:c="2"/>b`},
		{"a\nb", "a<text:line-break/>b"},
		{"<&>", "&lt;&amp;&gt;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeODT(tt.in), tt.in)
	}
}
