package novx

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

func textOf(parent *xmldom.Node, name string) string {
	el := parent.Find(name)
	if el == nil {
		return ""
	}
	return el.InnerText()
}

// paragraphsOf returns the <p> children of the named element joined by
// newlines. Legacy files may carry plain text instead.
func paragraphsOf(parent *xmldom.Node, name string) string {
	el := parent.Find(name)
	if el == nil {
		return ""
	}
	return paragraphs(el)
}

func paragraphs(el *xmldom.Node) string {
	ps := el.FindAll("p")
	if len(ps) == 0 {
		return el.InnerText()
	}
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.InnerText()
	}
	return strings.Join(lines, "\n")
}

func addText(parent *xmldom.Node, name, value string) {
	if value == "" {
		return
	}
	parent.AddText(name, value)
}

func addParagraphs(parent *xmldom.Node, name, value string) {
	if value == "" {
		return
	}
	el := parent.AddElement(name)
	for _, line := range strings.Split(value, "\n") {
		el.AddText("p", line)
	}
}

// addCount writes a numeric value unless it is empty or zero.
func addCount(parent *xmldom.Node, name, value string) {
	if v, err := strconv.Atoi(value); value == "" || (err == nil && v == 0) {
		return
	}
	parent.AddText(name, value)
}

func idsOf(parent *xmldom.Node, name string) []string {
	el := parent.Find(name)
	if el == nil {
		return nil
	}
	return strings.Fields(el.AttrValue("ids"))
}

func addIDs(parent *xmldom.Node, name string, ids []string) {
	if len(ids) == 0 {
		return
	}
	parent.AddElement(name).SetAttr("ids", strings.Join(ids, " "))
}

func idOf(parent *xmldom.Node, name string) string {
	el := parent.Find(name)
	if el == nil {
		return ""
	}
	return el.AttrValue("id")
}

func addID(parent *xmldom.Node, name, id string) {
	if id == "" {
		return
	}
	parent.AddElement(name).SetAttr("id", id)
}

func boolAttr(el *xmldom.Node, name string) bool {
	v := el.AttrValue(name)
	return v == "1" || v == "true"
}

func setBoolAttr(el *xmldom.Node, name string, v bool) {
	if v {
		el.SetAttr(name, "1")
	}
}

// intAttr parses an integer attribute. ok is false when the attribute is
// absent or not a number.
func intAttr(el *xmldom.Node, name string) (value int, present, ok bool) {
	raw, present := el.Attr(name)
	if !present {
		return 0, false, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, false
	}
	return v, true, true
}

func setIntAttr(el *xmldom.Node, name string, v int) {
	if v != 0 {
		el.SetAttr(name, strconv.Itoa(v))
	}
}

func tagsOf(parent *xmldom.Node) []string {
	raw := textOf(parent, "Tags")
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func addTags(parent *xmldom.Node, tags []string) {
	if len(tags) == 0 {
		return
	}
	parent.AddText("Tags", strings.Join(tags, ";"))
}

func linksOf(parent *xmldom.Node) map[string]string {
	el := parent.Find("Links")
	if el == nil {
		return nil
	}
	links := make(map[string]string)
	for _, link := range el.FindAll("Link") {
		path := textOf(link, "Path")
		if path == "" {
			continue
		}
		links[path] = textOf(link, "FullPath")
	}
	return links
}

func addLinks(parent *xmldom.Node, links map[string]string) {
	if len(links) == 0 {
		return
	}
	el := parent.AddElement("Links")
	for _, path := range sortedKeys(links) {
		link := el.AddElement("Link")
		link.AddText("Path", path)
		addText(link, "FullPath", links[path])
	}
}

func fieldsOf(parent *xmldom.Node) map[string]string {
	el := parent.Find("Fields")
	if el == nil {
		return nil
	}
	fields := make(map[string]string)
	for _, f := range el.FindAll("Field") {
		tag := f.AttrValue("tag")
		if tag == "" {
			continue
		}
		fields[tag] = f.InnerText()
	}
	return fields
}

func addFields(parent *xmldom.Node, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	el := parent.AddElement("Fields")
	for _, tag := range sortedKeys(fields) {
		el.AddText("Field", fields[tag]).SetAttr("tag", tag)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// contentOf returns the body of a <Content> element as inline XML, one top
// level element per line.
func contentOf(parent *xmldom.Node) string {
	el := parent.Find("Content")
	if el == nil {
		return ""
	}
	if slices.ContainsFunc(el.Children, (*xmldom.Node).IsText) {
		return strings.TrimSpace(el.InnerXML())
	}
	parts := make([]string, len(el.Children))
	for i, c := range el.Children {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n")
}

// addContent embeds inline XML. Text that is not a well-formed sequence of
// elements is stored as one paragraph per line.
func addContent(parent *xmldom.Node, content string) {
	if content == "" {
		return
	}
	el := parent.AddElement("Content")
	if nodes, err := xmldom.ParseFragment(content); err == nil && !hasLooseText(nodes) {
		for _, n := range nodes {
			if !n.IsText() {
				el.Append(n)
			}
		}
		return
	}
	for _, line := range strings.Split(content, "\n") {
		el.AddText("p", line)
	}
}

func hasLooseText(nodes []*xmldom.Node) bool {
	for _, n := range nodes {
		if n.IsText() && strings.TrimSpace(n.Text) != "" {
			return true
		}
	}
	return false
}
