package entities

import "strings"

// Tree is an ordered multi-root hierarchy mapping parent IDs to ordered
// child-ID lists. Chapters own sections and plot lines own plot points; every
// other child hangs directly off one of the fixed roots.
//
// The tree trusts its callers: it does not deduplicate IDs.
type Tree struct {
	roots      map[string][]string
	sections   map[string][]string
	plotPoints map[string][]string
}

// NewTree returns an empty tree with all roots present.
func NewTree() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset discards every entry.
func (t *Tree) Reset() {
	t.roots = make(map[string][]string, len(Roots))
	for _, root := range Roots {
		t.roots[root] = []string{}
	}
	t.sections = make(map[string][]string)
	t.plotPoints = make(map[string][]string)
}

// Append adds id as the last child of parent.
func (t *Tree) Append(parent, id string) {
	t.Insert(parent, -1, id)
}

// Insert adds id at index among parent's children. A negative index or one
// past the end appends.
func (t *Tree) Insert(parent string, index int, id string) {
	children, ok := t.lookup(parent)
	if !ok {
		if !strings.HasPrefix(parent, ChapterPrefix) && !strings.HasPrefix(parent, PlotLinePrefix) {
			return
		}
		children = []string{}
	}
	if index < 0 || index > len(children) {
		index = len(children)
	}
	children = append(children, "")
	copy(children[index+1:], children[index:])
	children[index] = id
	t.store(parent, children)

	switch parent {
	case ChapterRoot:
		if _, exists := t.sections[id]; !exists {
			t.sections[id] = []string{}
		}
	case PlotLineRoot:
		if _, exists := t.plotPoints[id]; !exists {
			t.plotPoints[id] = []string{}
		}
	}
}

// GetChildren returns a copy of parent's ordered children.
func (t *Tree) GetChildren(parent string) []string {
	children, _ := t.lookup(parent)
	out := make([]string, len(children))
	copy(out, children)
	return out
}

// DeleteChildren removes every child of parent. Clearing the chapter or plot
// line root also drops the secondary indices below it.
func (t *Tree) DeleteChildren(parent string) {
	switch {
	case parent == ChapterRoot:
		t.roots[parent] = []string{}
		t.sections = make(map[string][]string)
	case parent == PlotLineRoot:
		t.roots[parent] = []string{}
		t.plotPoints = make(map[string][]string)
	case t.isRoot(parent):
		t.roots[parent] = []string{}
	case strings.HasPrefix(parent, ChapterPrefix):
		t.sections[parent] = []string{}
	case strings.HasPrefix(parent, PlotLinePrefix):
		t.plotPoints[parent] = []string{}
	}
}

// SetChildren replaces parent's children with ids. A chapter or plot line
// parent not yet in the tree gets its list created; any other unknown parent
// is ignored.
func (t *Tree) SetChildren(parent string, ids []string) {
	children := make([]string, len(ids))
	copy(children, ids)
	t.store(parent, children)
	switch parent {
	case ChapterRoot:
		for _, id := range ids {
			if _, exists := t.sections[id]; !exists {
				t.sections[id] = []string{}
			}
		}
	case PlotLineRoot:
		for _, id := range ids {
			if _, exists := t.plotPoints[id]; !exists {
				t.plotPoints[id] = []string{}
			}
		}
	}
}

// Remove deletes id from parent's children, if present. It reports whether an
// entry was removed.
func (t *Tree) Remove(parent, id string) bool {
	children, ok := t.lookup(parent)
	if !ok {
		return false
	}
	for i, child := range children {
		if child == id {
			t.store(parent, append(children[:i:i], children[i+1:]...))
			switch parent {
			case ChapterRoot:
				delete(t.sections, id)
			case PlotLineRoot:
				delete(t.plotPoints, id)
			}
			return true
		}
	}
	return false
}

// Exists reports whether parent is a known root or secondary parent.
func (t *Tree) Exists(parent string) bool {
	_, ok := t.lookup(parent)
	return ok
}

func (t *Tree) isRoot(id string) bool {
	_, ok := t.roots[id]
	return ok
}

func (t *Tree) lookup(parent string) ([]string, bool) {
	if children, ok := t.roots[parent]; ok {
		return children, true
	}
	if strings.HasPrefix(parent, ChapterPrefix) {
		children, ok := t.sections[parent]
		return children, ok
	}
	if strings.HasPrefix(parent, PlotLinePrefix) {
		children, ok := t.plotPoints[parent]
		return children, ok
	}
	return nil, false
}

func (t *Tree) store(parent string, children []string) {
	switch {
	case t.isRoot(parent):
		t.roots[parent] = children
	case strings.HasPrefix(parent, ChapterPrefix):
		t.sections[parent] = children
	case strings.HasPrefix(parent, PlotLinePrefix):
		t.plotPoints[parent] = children
	}
}
