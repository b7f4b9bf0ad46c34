// Package entities contains the novel's data model: the tree index, the
// narrative elements and the bookkeeping that keeps their cross references
// consistent.
package entities

import (
	"maps"
	"slices"
)

// ChangeListener is notified after an element property changed.
type ChangeListener func()

// Element holds the properties shared by every narrative entity. Setters
// leave the element untouched, and do not notify, when the value is unchanged.
type Element struct {
	title    string
	desc     string
	links    map[string]string
	fields   map[string]string
	listener ChangeListener
}

// SetChangeListener registers fn as the element's only listener. A nil fn
// silences notifications.
func (e *Element) SetChangeListener(fn ChangeListener) {
	e.listener = fn
}

func (e *Element) changed() {
	if e.listener != nil {
		e.listener()
	}
}

// Title returns the element's title.
func (e *Element) Title() string { return e.title }

// SetTitle sets the element's title.
func (e *Element) SetTitle(v string) {
	setString(e, &e.title, v)
}

// Desc returns the element's description.
func (e *Element) Desc() string { return e.desc }

// SetDesc sets the element's description.
func (e *Element) SetDesc(v string) {
	setString(e, &e.desc, v)
}

// Links returns a copy of the attachment links (relative path to absolute path).
func (e *Element) Links() map[string]string {
	return maps.Clone(e.links)
}

// SetLinks replaces the attachment links.
func (e *Element) SetLinks(links map[string]string) {
	if maps.Equal(e.links, links) {
		return
	}
	e.links = maps.Clone(links)
	e.changed()
}

// SetLink adds or updates a single link.
func (e *Element) SetLink(relative, absolute string) {
	if current, ok := e.links[relative]; ok && current == absolute {
		return
	}
	if e.links == nil {
		e.links = make(map[string]string)
	}
	e.links[relative] = absolute
	e.changed()
}

// Fields returns a copy of the free-form fields.
func (e *Element) Fields() map[string]string {
	return maps.Clone(e.fields)
}

// Field returns a single free-form field.
func (e *Element) Field(tag string) string {
	return e.fields[tag]
}

// SetField sets a free-form field. An empty value removes the field.
func (e *Element) SetField(tag, value string) {
	current, ok := e.fields[tag]
	if value == "" {
		if !ok {
			return
		}
		delete(e.fields, tag)
		e.changed()
		return
	}
	if ok && current == value {
		return
	}
	if e.fields == nil {
		e.fields = make(map[string]string)
	}
	e.fields[tag] = value
	e.changed()
}

// SetFields replaces all free-form fields.
func (e *Element) SetFields(fields map[string]string) {
	if maps.Equal(e.fields, fields) {
		return
	}
	e.fields = maps.Clone(fields)
	e.changed()
}

type notifier interface {
	changed()
}

func setString(n notifier, field *string, v string) {
	if *field == v {
		return
	}
	*field = v
	n.changed()
}

func setBool(n notifier, field *bool, v bool) {
	if *field == v {
		return
	}
	*field = v
	n.changed()
}

func setList(n notifier, field *[]string, v []string) {
	if slices.Equal(*field, v) {
		return
	}
	*field = slices.Clone(v)
	n.changed()
}

// Annotated adds a notes text to an element.
type Annotated struct {
	notes string
}

// Notes returns the notes text.
func (a *Annotated) Notes() string { return a.notes }

// Tagged adds a tag list to an element.
type Tagged struct {
	tags []string
}

// Tags returns a copy of the tag list.
func (t *Tagged) Tags() []string { return slices.Clone(t.tags) }
