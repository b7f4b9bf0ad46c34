package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTree_Insert(t *testing.T) {
	tests := []struct {
		name     string
		initial  []string
		index    int
		expected []string
	}{
		{name: "append with negative index", initial: []string{"ch1", "ch2"}, index: -1, expected: []string{"ch1", "ch2", "ch9"}},
		{name: "insert at front", initial: []string{"ch1", "ch2"}, index: 0, expected: []string{"ch9", "ch1", "ch2"}},
		{name: "insert in the middle", initial: []string{"ch1", "ch2"}, index: 1, expected: []string{"ch1", "ch9", "ch2"}},
		{name: "oversized index appends", initial: []string{"ch1"}, index: 42, expected: []string{"ch1", "ch9"}},
		{name: "empty parent", initial: nil, index: 3, expected: []string{"ch9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree()
			tree.SetChildren(ChapterRoot, tt.initial)
			tree.Insert(ChapterRoot, tt.index, "ch9")
			assert.Equal(t, tt.expected, tree.GetChildren(ChapterRoot))
		})
	}
}

func TestTree_SetChildren(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		exists bool
		want   []string
	}{
		{"root", CharacterRoot, true, []string{"cr1", "cr2"}},
		{"new chapter", "ch7", true, []string{"cr1", "cr2"}},
		{"new plot line", "ac3", true, []string{"cr1", "cr2"}},
		{"unknown parent", "xx1", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree()
			ids := []string{"cr1", "cr2"}
			tree.SetChildren(tt.parent, ids)
			ids[0] = "changed"

			assert.Equal(t, tt.exists, tree.Exists(tt.parent))
			assert.Equal(t, tt.want, tree.GetChildren(tt.parent))
		})
	}
}

func TestTree_SecondaryLists(t *testing.T) {
	tree := NewTree()
	tree.Append(ChapterRoot, "ch1")
	tree.Append(PlotLineRoot, "ac1")

	assert.True(t, tree.Exists("ch1"))
	assert.True(t, tree.Exists("ac1"))
	assert.Empty(t, tree.GetChildren("ch1"))

	tree.Append("ch1", "sc1")
	tree.Append("ch1", "sc2")
	tree.Append("ac1", "ap1")
	assert.Equal(t, []string{"sc1", "sc2"}, tree.GetChildren("ch1"))
	assert.Equal(t, []string{"ap1"}, tree.GetChildren("ac1"))

	assert.True(t, tree.Remove(ChapterRoot, "ch1"))
	assert.False(t, tree.Exists("ch1"))
	assert.False(t, tree.Remove(ChapterRoot, "ch1"))
}

func TestTree_GetChildrenReturnsCopy(t *testing.T) {
	tree := NewTree()
	tree.Append(CharacterRoot, "cr1")

	children := tree.GetChildren(CharacterRoot)
	children[0] = "cr99"

	assert.Equal(t, []string{"cr1"}, tree.GetChildren(CharacterRoot))
	assert.Empty(t, tree.GetChildren("unknown"))
}

func TestTree_DeleteChildren(t *testing.T) {
	tree := NewTree()
	tree.Append(ChapterRoot, "ch1")
	tree.Append("ch1", "sc1")
	tree.Append(LocationRoot, "lc1")

	tree.DeleteChildren("ch1")
	assert.Empty(t, tree.GetChildren("ch1"))
	assert.Equal(t, []string{"ch1"}, tree.GetChildren(ChapterRoot))

	tree.DeleteChildren(ChapterRoot)
	assert.Empty(t, tree.GetChildren(ChapterRoot))
	assert.False(t, tree.Exists("ch1"))
	assert.Equal(t, []string{"lc1"}, tree.GetChildren(LocationRoot))

	tree.Reset()
	for _, root := range Roots {
		assert.True(t, tree.Exists(root))
		assert.Empty(t, tree.GetChildren(root))
	}
}

func TestTree_NoDeduplication(t *testing.T) {
	tree := NewTree()
	tree.Append(ItemRoot, "it1")
	tree.Append(ItemRoot, "it1")
	assert.Equal(t, []string{"it1", "it1"}, tree.GetChildren(ItemRoot))
}
