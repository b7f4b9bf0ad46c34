package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// splitNovel returns a novel with one chapter holding the given sections
// contents as sc1, sc2, ...
func splitNovel(t *testing.T, contents ...string) *entities.Novel {
	t.Helper()
	n := entities.NewNovel()
	n.AddChapter("ch1", entities.NewChapter("Chapter One"), -1)
	for i, c := range contents {
		sc := entities.NewSection(fmt.Sprintf("Section %d", i+1))
		sc.SetContent(c)
		require.NoError(t, n.AddSection("ch1", fmt.Sprintf("sc%d", i+1), sc, -1))
	}
	return n
}

func TestParseDivider(t *testing.T) {
	tests := []struct {
		name string
		line string
		want divider
		ok   bool
	}{
		{"section", "### Title", divider{marker: SceneMarker, title: "Title"}, true},
		{"with description", "### Title|Desc", divider{marker: SceneMarker, title: "Title", desc: "Desc"}, true},
		{"appended", "#### Next", divider{marker: AppendedSceneMarker, title: "Next"}, true},
		{"chapter", "## Chapter", divider{marker: ChapterMarker, title: "Chapter"}, true},
		{"part", "# Part", divider{marker: PartMarker, title: "Part"}, true},
		{"bare", "###", divider{marker: SceneMarker}, true},
		{"in paragraph", "<p>### Title | Desc</p>", divider{marker: SceneMarker, title: "Title", desc: "Desc"}, true},
		{"hashtag", "#hashtag", divider{}, false},
		{"no space", "###Title", divider{marker: SceneMarker, title: "Title"}, true},
		{"chapter no space", "##2. Chapter|Desc", divider{marker: ChapterMarker, title: "2. Chapter", desc: "Desc"}, true},
		{"appended no space", "####Next", divider{marker: AppendedSceneMarker, title: "Next"}, true},
		{"no space before punctuation", "###-", divider{}, false},
		{"too many", "##### Title", divider{}, false},
		{"text", "Some text", divider{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDivider(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitter_MarkerWithoutSpace(t *testing.T) {
	n := splitNovel(t, "Para one.\n###Second|Desc\nPara two.")

	assert.True(t, NewSplitter(nil).SplitSections(n))

	assert.Equal(t, []string{"sc1", "sc2"}, n.Tree.GetChildren("ch1"))
	assert.Equal(t, "Second", n.Sections["sc2"].Title())
	assert.Equal(t, "Desc", n.Sections["sc2"].Desc())
	assert.Equal(t, "Para two.", n.Sections["sc2"].Content())
}

func TestSplitter_SectionMarker(t *testing.T) {
	n := splitNovel(t, "Para one.\n\n### New Title|A description\nPara two.")

	assert.True(t, NewSplitter(nil).SplitSections(n))

	assert.Equal(t, []string{"sc1", "sc2"}, n.Tree.GetChildren("ch1"))
	assert.Equal(t, "Para one.", n.Sections["sc1"].Content())
	assert.Equal(t, "New Title", n.Sections["sc2"].Title())
	assert.Equal(t, "A description", n.Sections["sc2"].Desc())
	assert.Equal(t, "Para two.", n.Sections["sc2"].Content())
	assert.Equal(t, 2, n.Sections["sc2"].WordCount())
}

func TestSplitter_InheritsFromParent(t *testing.T) {
	n := splitNovel(t, "X\n<p>####</p>\nY\n### Again\nZ")
	parent := n.Sections["sc1"]
	parent.SetTitle("A very long section title")
	parent.SetDesc("Desc")
	parent.SetOutcome("(!)Outcome")
	require.NoError(t, parent.SetStatus(entities.StatusDone))
	require.NoError(t, parent.SetDate("2024-01-02"))
	require.NoError(t, parent.SetTime("10:00"))
	require.NoError(t, parent.SetDuration(entities.Duration{Hours: "2"}))

	require.True(t, NewSplitter(nil).SplitSections(n))

	assert.Equal(t, []string{"sc1", "sc2", "sc3"}, n.Tree.GetChildren("ch1"))
	assert.Equal(t, "X", parent.Content())
	assert.Equal(t, "(!)Desc", parent.Desc())
	assert.Equal(t, "", parent.Goal())
	assert.Equal(t, "(!)Outcome", parent.Outcome())
	assert.Equal(t, entities.StatusDone, parent.Status())

	appended := n.Sections["sc2"]
	assert.Equal(t, "A very long section Split: 1", appended.Title())
	assert.True(t, appended.AppendToPrev())
	assert.Equal(t, entities.StatusDraft, appended.Status())
	assert.Equal(t, "2024-01-02", appended.Date())
	assert.Equal(t, "10:00", appended.Time())
	assert.Equal(t, entities.Duration{Hours: "2"}, appended.Duration())
	assert.Equal(t, "Y", appended.Content())

	again := n.Sections["sc3"]
	assert.Equal(t, "Again", again.Title())
	assert.False(t, again.AppendToPrev())
	assert.Equal(t, "Z", again.Content())
}

func TestSplitter_OutlineStatusKept(t *testing.T) {
	n := splitNovel(t, "A\n### B\nB")

	require.True(t, NewSplitter(nil).SplitSections(n))

	assert.Equal(t, entities.StatusOutline, n.Sections["sc2"].Status())
}

func TestSplitter_ChapterMarkerMovesFollowingSections(t *testing.T) {
	n := splitNovel(t, "A\n## Next|Chapter desc\n### Scene B\nB", "Old")

	require.True(t, NewSplitter(nil).SplitSections(n))

	assert.Equal(t, []string{"ch1", "ch2"}, n.Tree.GetChildren(entities.ChapterRoot))
	assert.Equal(t, []string{"sc1"}, n.Tree.GetChildren("ch1"))
	assert.Equal(t, []string{"sc3", "sc2"}, n.Tree.GetChildren("ch2"))
	assert.Equal(t, "Next", n.Chapters["ch2"].Title())
	assert.Equal(t, "Chapter desc", n.Chapters["ch2"].Desc())
	assert.Equal(t, entities.LevelChapter, n.Chapters["ch2"].Level())
	assert.Equal(t, "A", n.Sections["sc1"].Content())
	assert.Equal(t, "B", n.Sections["sc3"].Content())
	assert.Equal(t, "Old", n.Sections["sc2"].Content())
}

func TestSplitter_ContentAfterChapterMarker(t *testing.T) {
	n := splitNovel(t, "A\n#\n\nText of the part")

	require.True(t, NewSplitter(nil).SplitSections(n))

	require.Equal(t, []string{"ch1", "ch2"}, n.Tree.GetChildren(entities.ChapterRoot))
	part := n.Chapters["ch2"]
	assert.Equal(t, DefaultPartTitle, part.Title())
	assert.True(t, part.IsPart())
	require.Equal(t, []string{"sc2"}, n.Tree.GetChildren("ch2"))
	assert.Equal(t, "Section 1 Split: 1", n.Sections["sc2"].Title())
	assert.Equal(t, "Text of the part", n.Sections["sc2"].Content())
}

func TestSplitter_UntitledChapterKeepsType(t *testing.T) {
	n := splitNovel(t, "A\n##\n### B")
	require.NoError(t, n.Chapters["ch1"].SetChType(entities.ChapterUnused))

	require.True(t, NewSplitter(nil).SplitSections(n))

	ch := n.Chapters["ch2"]
	require.NotNil(t, ch)
	assert.Equal(t, DefaultChapterTitle, ch.Title())
	assert.Equal(t, entities.ChapterUnused, ch.ChType())
	assert.Equal(t, "", n.Sections["sc2"].Content())
}

func TestSplitter_NothingToSplit(t *testing.T) {
	content := "#hashtag\nText\n\n"
	n := splitNovel(t, content, "")

	assert.False(t, NewSplitter(nil).SplitSections(n))
	assert.Equal(t, content, n.Sections["sc1"].Content())
	assert.Len(t, n.Sections, 2)
	assert.Len(t, n.Chapters, 1)
}

// outline renders the book structure for comparison.
func outline(n *entities.Novel) string {
	var b strings.Builder
	for _, chID := range n.Tree.GetChildren(entities.ChapterRoot) {
		fmt.Fprintf(&b, "%s %q\n", chID, n.Chapters[chID].Title())
		for _, scID := range n.Tree.GetChildren(chID) {
			sc := n.Sections[scID]
			fmt.Fprintf(&b, "  %s %q %q\n", scID, sc.Title(), sc.Content())
		}
	}
	return b.String()
}

func TestSplitter_Deterministic(t *testing.T) {
	content := "intro\n### S1\na\n## C1\n### S2\nb\n## C2\n### S3\nc"

	first := splitNovel(t, content, "tail")
	second := splitNovel(t, content, "tail")
	require.True(t, NewSplitter(nil).SplitSections(first))
	require.True(t, NewSplitter(nil).SplitSections(second))

	assert.Equal(t, outline(first), outline(second))
	assert.Len(t, first.Sections, 2+3)
	assert.Len(t, first.Chapters, 1+2)
	assert.Equal(t, []string{"sc3", "sc4", "sc5", "sc2"}, append(
		first.Tree.GetChildren("ch1")[1:],
		append(first.Tree.GetChildren("ch2"), first.Tree.GetChildren("ch3")...)...,
	))

	// A second pass finds nothing left to split.
	assert.False(t, NewSplitter(nil).SplitSections(first))
}
