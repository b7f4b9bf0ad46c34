package xmldom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeepsMixedContent(t *testing.T) {
	root, err := ParseString(`<doc>
  <p>Hello <em>big</em> world</p>
  <p> </p>
</doc>`)
	require.NoError(t, err)

	ps := root.FindAll("p")
	require.Len(t, ps, 2)
	assert.Len(t, root.Children, 2)
	assert.Equal(t, "<p>Hello <em>big</em> world</p>", ps[0].String())
	assert.Equal(t, " ", ps[1].InnerText())
}

func TestParseMixed_KeepsSpacesBetweenElements(t *testing.T) {
	input := `<body><h><span>Red</span> <span>Moon</span></h><p><a><span>one</span> <span>two</span></a></p></body>`

	root, err := ParseMixed(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Red Moon", root.Find("h").InnerText())
	assert.Equal(t, "one two", root.Find("p").InnerText())

	trimmed, err := ParseString(input)
	require.NoError(t, err)
	assert.Equal(t, "RedMoon", trimmed.Find("h").InnerText())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unclosed", input: "<a><b></a>"},
		{name: "text only", input: "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNode_Attributes(t *testing.T) {
	root, err := ParseString(`<office:document xmlns:office="urn:office" xmlns:text="urn:text" office:version="1.3" plain="x" xml:lang="en-US"/>`)
	require.NoError(t, err)

	assert.Equal(t, "x", root.AttrValue("plain"))
	v, ok := root.AttrNS("urn:office", "version")
	assert.True(t, ok)
	assert.Equal(t, "1.3", v)
	assert.Equal(t, "1.3", root.AttrLocal("version"))
	assert.Equal(t, "en-US", root.Lang())

	root.SetAttr("plain", "y")
	root.SetLang("de-DE")
	assert.Equal(t, "y", root.AttrValue("plain"))
	assert.Equal(t, "de-DE", root.Lang())

	root.RemoveAttr("plain")
	_, ok = root.Attr("plain")
	assert.False(t, ok)
}

func TestNode_Editing(t *testing.T) {
	root := NewElement("root")
	a := root.AddElement("a")
	c := root.AddText("c", "x < y & z")
	b := NewElement("b")
	root.InsertAt(root.IndexOf(c), b)

	assert.Equal(t, []*Node{a, b, c}, root.Elements())
	assert.Equal(t, `<root><a/><b/><c>x &lt; y &amp; z</c></root>`, root.String())

	root.Remove(a)
	assert.Equal(t, -1, root.IndexOf(a))
	root.InsertAt(99, a)
	assert.Equal(t, a, root.Children[2])

	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"root", "b", "c", "a"}, names)
}

func TestNode_Encode(t *testing.T) {
	root := NewElement("novx")
	root.SetAttr("version", "1.8")
	ch := root.AddElement("CHAPTER")
	ch.AddText("Title", `Say "hi"`)
	content := ch.AddElement("Content")
	p := content.AddElement("p")
	p.Append(NewText("One "), NewElement("em"))

	var buf bytes.Buffer
	require.NoError(t, root.Encode(&buf))

	expected := `<?xml version="1.0" encoding="utf-8"?>
<novx version="1.8">
 <CHAPTER>
  <Title>Say "hi"</Title>
  <Content>
   <p>One <em/></p>
  </Content>
 </CHAPTER>
</novx>
`
	assert.Equal(t, expected, buf.String())

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, root.String(), parsed.String())
}

func TestParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`<p>a</p>
<p xml:lang="fr">b</p>`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "fr", nodes[1].Lang())
	assert.Equal(t, `<p xml:lang="fr">b</p>`, nodes[1].String())

	_, err = ParseFragment("<p>unclosed")
	assert.Error(t, err)
}
