// Package xmldom provides a small mutable element tree on top of
// encoding/xml. It keeps mixed content intact so that inline markup survives
// a parse/serialize round trip, and it indents purely structural elements.
package xmldom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLNamespace is the namespace bound to the reserved "xml" prefix.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// inlineElements keep their whitespace-only text children when parsed.
var inlineElements = map[string]bool{
	"p":             true,
	"em":            true,
	"strong":        true,
	"span":          true,
	"li":            true,
	"note-citation": true,
	"creator":       true,
	"date":          true,
}

// Attr is a single attribute. Space is empty or the resolved namespace URI.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Node is an element or, when Name is empty, a text node.
type Node struct {
	Space    string
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// NewElement returns an element node.
func NewElement(name string) *Node {
	return &Node{Name: name}
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.Name == "" }

// Parse reads a document and returns its root element. Whitespace-only
// text between the children of structural elements is dropped.
func Parse(r io.Reader) (*Node, error) {
	return parse(r, true)
}

// ParseMixed reads a document and keeps every text node. ODF members are
// parsed this way because any element may carry significant spaces between
// its children.
func ParseMixed(r io.Reader) (*Node, error) {
	return parse(r, false)
}

func parse(r io.Reader, trim bool) (*Node, error) {
	decoder := xml.NewDecoder(r)
	var stack []*Node
	var root *Node

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Space: t.Name.Space, Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				n.Attrs = append(n.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("parsing XML: unexpected end element")
			}
			if trim {
				stack[len(stack)-1].trimLayout()
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			if k := len(parent.Children); k > 0 && parent.Children[k-1].IsText() {
				parent.Children[k-1].Text += string(t)
			} else {
				parent.Children = append(parent.Children, NewText(string(t)))
			}
		}
	}

	if root == nil {
		return nil, errors.New("parsing XML: no root element")
	}
	return root, nil
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses a sequence of sibling elements and text, as found in
// the body of an element, and returns them as nodes.
func ParseFragment(s string) ([]*Node, error) {
	wrapper, err := ParseString("<fragment>" + s + "</fragment>")
	if err != nil {
		return nil, err
	}
	return wrapper.Children, nil
}

// trimLayout drops indentation text between element children of structural
// elements.
func (n *Node) trimLayout() {
	if inlineElements[n.Name] {
		return
	}
	hasElements := false
	for _, c := range n.Children {
		if !c.IsText() {
			hasElements = true
			continue
		}
		if strings.TrimSpace(c.Text) != "" {
			return
		}
	}
	if !hasElements {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if !c.IsText() {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}

// Attr returns the value of the named attribute (no namespace).
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name && (a.Space == "" || a.Space == n.Space) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the named attribute or "".
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// AttrNS returns the value of an attribute in a namespace.
func (n *Node) AttrNS(space, name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name && a.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// AttrLocal returns the value of the first attribute with the given local
// name, regardless of its namespace.
func (n *Node) AttrLocal(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Lang returns the xml:lang attribute.
func (n *Node) Lang() string {
	if v, ok := n.AttrNS(XMLNamespace, "lang"); ok {
		return v
	}
	v, _ := n.AttrNS("xml", "lang")
	return v
}

// SetAttr sets or replaces an attribute (no namespace).
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name && a.Space == "" {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// SetLang sets the xml:lang attribute.
func (n *Node) SetLang(value string) {
	for i, a := range n.Attrs {
		if a.Name == "lang" && (a.Space == XMLNamespace || a.Space == "xml") {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Space: XMLNamespace, Name: "lang", Value: value})
}

// RemoveAttr deletes an attribute (no namespace).
func (n *Node) RemoveAttr(name string) {
	kept := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name == name && a.Space == "" {
			continue
		}
		kept = append(kept, a)
	}
	n.Attrs = kept
}

// Find returns the first child element with the given local name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns all child elements with the given local name.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Elements returns the element children.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

// Walk calls fn for n and every descendant element, depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n.IsText() {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Append adds children at the end.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// InsertAt inserts a child at index (clamped).
func (n *Node) InsertAt(index int, child *Node) {
	if index < 0 || index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Remove deletes child from n's children.
func (n *Node) Remove(child *Node) {
	if i := n.IndexOf(child); i >= 0 {
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
	}
}

// AddElement appends and returns a new child element.
func (n *Node) AddElement(name string) *Node {
	c := NewElement(name)
	n.Children = append(n.Children, c)
	return c
}

// AddText appends a child element holding text.
func (n *Node) AddText(name, text string) *Node {
	c := n.AddElement(name)
	c.Children = []*Node{NewText(text)}
	return c
}

// InnerText returns the concatenated text of n and all its descendants.
func (n *Node) InnerText() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.InnerText())
	}
	return b.String()
}

// InnerXML serializes n's children without indentation.
func (n *Node) InnerXML() string {
	var b bytes.Buffer
	for _, c := range n.Children {
		c.write(&b, -1, 0)
	}
	return b.String()
}

// String serializes n without indentation.
func (n *Node) String() string {
	var b bytes.Buffer
	n.write(&b, -1, 0)
	return b.String()
}

// Encode writes n as an indented document with an XML declaration.
func (n *Node) Encode(w io.Writer) error {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	n.write(&b, 1, 0)
	b.WriteString("\n")
	_, err := w.Write(b.Bytes())
	return err
}

// structural reports whether n holds element children only.
func (n *Node) structural() bool {
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if c.IsText() {
			return false
		}
	}
	return true
}

// write serializes n. A negative indent disables pretty printing.
func (n *Node) write(b *bytes.Buffer, indent, depth int) {
	if n.IsText() {
		escapeText(b, n.Text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		if a.Space == XMLNamespace || a.Space == "xml" {
			b.WriteString("xml:")
		}
		b.WriteString(a.Name)
		b.WriteString(`="`)
		escapeAttr(b, a.Value)
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if indent >= 0 && n.structural() {
		for _, c := range n.Children {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", indent*(depth+1)))
			c.write(b, indent, depth+1)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent*depth))
	} else {
		for _, c := range n.Children {
			c.write(b, -1, 0)
		}
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#10;", "\t", "&#9;")
)

func escapeText(b *bytes.Buffer, s string) {
	textEscaper.WriteString(b, s)
}

func escapeAttr(b *bytes.Buffer, s string) {
	attrEscaper.WriteString(b, s)
}

// EscapeText escapes s for use as XML character data.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
