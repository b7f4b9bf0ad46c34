package novx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

const legacyViewpointDoc = `<?xml version="1.0" encoding="utf-8"?>
<novx version="1.6" xml:lang="en-US">
 <PROJECT><Title>Legacy</Title></PROJECT>
 <CHAPTERS>
  <CHAPTER id="ch1">
   <Title>One</Title>
   <SECTION id="sc1">
    <Title>Opening</Title>
    <Characters ids="cr1 cr2"/>
    <Content><p>Hello.</p></Content>
   </SECTION>
  </CHAPTER>
 </CHAPTERS>
 <CHARACTERS>
  <CHARACTER id="cr1"><Title>Alice</Title></CHARACTER>
  <CHARACTER id="cr2"><Title>Bob</Title></CHARACTER>
 </CHARACTERS>
</novx>`

const legacyEpigraphDoc = `<?xml version="1.0" encoding="utf-8"?>
<novx version="1.7">
 <CHAPTERS>
  <CHAPTER id="ch1">
   <Title>One</Title>
   <Epigraph><p>To be or not to be.</p></Epigraph>
   <EpigraphSrc><p>Hamlet</p></EpigraphSrc>
   <SECTION id="sc1"><Title>First</Title></SECTION>
   <SECTION id="sc3"><Title>Second</Title></SECTION>
  </CHAPTER>
  <CHAPTER id="ch2" type="1">
   <Title>Unused</Title>
   <Epigraph>Plain quote</Epigraph>
  </CHAPTER>
 </CHAPTERS>
</novx>`

func decodeString(t *testing.T, doc string) *entities.Novel {
	t.Helper()
	novel := entities.NewNovel()
	require.NoError(t, Decode(strings.NewReader(doc), "test.novx", novel, nil))
	return novel
}

func TestDecode_HoistsViewpoint(t *testing.T) {
	novel := decodeString(t, legacyViewpointDoc)

	sc := novel.Sections["sc1"]
	require.NotNil(t, sc)
	assert.Equal(t, "cr1", sc.Viewpoint())
	assert.Equal(t, []string{"cr1", "cr2"}, sc.Characters())
	assert.Equal(t, "en-US", novel.Locale())
	assert.Equal(t, "<p>Hello.</p>", sc.Content())
	assert.Equal(t, 1, sc.WordCount())
}

func TestDecode_EpigraphBecomesSection(t *testing.T) {
	novel := decodeString(t, legacyEpigraphDoc)

	ch := novel.Chapters["ch1"]
	require.NotNil(t, ch)
	assert.True(t, ch.HasEpigraph())

	children := novel.Tree.GetChildren("ch1")
	require.Equal(t, []string{"sc4", "sc1", "sc3"}, children)
	epigraph := novel.Sections["sc4"]
	assert.Equal(t, EpigraphTitle, epigraph.Title())
	assert.Equal(t, "<p>To be or not to be.</p>\n<p>Hamlet</p>", epigraph.Content())
	assert.Equal(t, entities.SectionNormal, epigraph.ScType())

	unused := novel.Tree.GetChildren("ch2")
	require.Equal(t, []string{"sc5"}, unused)
	assert.Equal(t, entities.SectionUnused, novel.Sections["sc5"].ScType())
	assert.Equal(t, "<p>Plain quote</p>", novel.Sections["sc5"].Content())
}

func TestMigrate_RemovesStandaloneEpigraph(t *testing.T) {
	root, err := xmldom.ParseString(legacyEpigraphDoc)
	require.NoError(t, err)

	minor, err := Migrate(root, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, minor)
	assert.Equal(t, "1.8", root.AttrValue("version"))

	for _, ch := range root.Find("CHAPTERS").FindAll("CHAPTER") {
		assert.Nil(t, ch.Find("Epigraph"))
		assert.Nil(t, ch.Find("EpigraphSrc"))
		assert.Equal(t, "1", ch.AttrValue("hasEpigraph"))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	root, err := xmldom.ParseString(legacyViewpointDoc)
	require.NoError(t, err)

	_, err = Migrate(root, 6)
	require.NoError(t, err)
	once := root.String()

	require.NoError(t, hoistViewpoints(root))
	require.NoError(t, epigraphsToSections(root))
	minor, err := Migrate(root, 8)
	require.NoError(t, err)

	assert.Equal(t, 8, minor)
	assert.Equal(t, once, root.String())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed XML", doc: `<novx version="1.8"><PROJECT></novx>`},
		{name: "wrong root", doc: `<yw7 version="1.8"/>`},
		{name: "missing version", doc: `<novx/>`},
		{name: "unparseable version", doc: `<novx version="one.eight"/>`},
		{name: "major mismatch", doc: `<novx version="2.0"/>`},
		{name: "newer minor", doc: `<novx version="1.9"/>`},
		{name: "invalid section id", doc: `<novx version="1.8"><CHAPTERS><CHAPTER id="ch1"><SECTION id="x"/></CHAPTER></CHAPTERS></novx>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(strings.NewReader(tt.doc), "broken.novx", entities.NewNovel(), nil)
			require.Error(t, err)
			var formatErr *errs.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, "broken.novx", formatErr.Path)
			assert.Contains(t, err.Error(), "broken.novx")
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	doc := `<novx version="1.8">
 <CHAPTERS>
  <CHAPTER id="ch1" type="9">
   <SECTION id="sc1" type="7" status="x" scene="12"/>
   <SECTION id="sc2"/>
  </CHAPTER>
 </CHAPTERS>
</novx>`
	novel := decodeString(t, doc)

	assert.Equal(t, entities.ChapterUnused, novel.Chapters["ch1"].ChType())
	sc1 := novel.Sections["sc1"]
	assert.Equal(t, entities.SectionUnused, sc1.ScType())
	assert.Equal(t, entities.StatusOutline, sc1.Status())
	assert.Equal(t, entities.SceneNone, sc1.Scene())

	sc2 := novel.Sections["sc2"]
	assert.Equal(t, entities.SectionNormal, sc2.ScType())
	assert.Equal(t, entities.StatusOutline, sc2.Status())
	assert.Equal(t, 0, sc2.WordCount())
}

func TestEncode_Duration(t *testing.T) {
	tests := []struct {
		name     string
		days     string
		expected string
	}{
		{name: "zero omitted", days: "0", expected: ""},
		{name: "empty omitted", days: "", expected: ""},
		{name: "value written", days: "3", expected: "<LastsDays>3</LastsDays>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			novel := entities.NewNovel()
			novel.AddChapter("ch1", entities.NewChapter("One"), -1)
			sc := entities.NewSection("S")
			require.NoError(t, sc.SetDuration(entities.Duration{Days: tt.days}))
			require.NoError(t, novel.AddSection("ch1", "sc1", sc, -1))

			out := Encode(novel).String()
			if tt.expected == "" {
				assert.NotContains(t, out, "LastsDays")
			} else {
				assert.Contains(t, out, tt.expected)
			}
		})
	}
}

func TestEncode_PlainContentBecomesParagraphs(t *testing.T) {
	novel := entities.NewNovel()
	novel.AddChapter("ch1", entities.NewChapter("One"), -1)
	sc := entities.NewSection("S")
	sc.SetContent("Fish & chips\nsecond line")
	require.NoError(t, novel.AddSection("ch1", "sc1", sc, -1))

	out := Encode(novel).String()
	assert.Contains(t, out, "<Content><p>Fish &amp; chips</p><p>second line</p></Content>")
}

func buildNovel(t *testing.T) *entities.Novel {
	t.Helper()
	n := entities.NewNovel()
	n.SetTitle("The Book")
	n.SetAuthor("A. Writer")
	n.SetDesc("First line\nSecond line")
	require.NoError(t, n.SetLocale("de-DE"))
	require.NoError(t, n.SetWorkPhase("3"))
	require.NoError(t, n.SetWordTarget("80000"))
	require.NoError(t, n.SetReferenceDate("2024-01-01"))
	n.SetRenumberChapters(true)
	n.SetChapterHeadingPrefix("Chapter ")
	n.SetCustomFields(entities.CustomFields{Goal: "Aim"})
	n.SetLink("../img/cover.png", "/home/a/img/cover.png")
	n.SetField("custom", "value")
	require.NoError(t, n.LogWordCount("2024-02-01", entities.WordCountEntry{Count: 10, WithUnused: 12}))

	part := entities.NewChapter("Part One")
	require.NoError(t, part.SetLevel(entities.LevelPart))
	n.AddChapter("ch1", part, -1)
	ch := entities.NewChapter("Chapter One")
	ch.SetNotes("chapter notes")
	n.AddChapter("ch2", ch, -1)

	sc := entities.NewSection("Arrival")
	require.NoError(t, sc.SetStatus(entities.StatusDraft))
	require.NoError(t, sc.SetScene(entities.SceneAction))
	require.NoError(t, sc.SetDate("2024-03-04"))
	require.NoError(t, sc.SetTime("10:30"))
	require.NoError(t, sc.SetDuration(entities.Duration{Hours: "2"}))
	sc.SetAppendToPrev(true)
	sc.SetGoal("Get home")
	sc.SetTags([]string{"travel", "night"})
	sc.SetViewpoint("cr1")
	sc.SetCharacters([]string{"cr1"})
	sc.SetLocations([]string{"lc1"})
	sc.SetItems([]string{"it1"})
	sc.SetContent(`<p>It was <em>dark</em>.</p>` + "\n" + `<p xml:lang="fr-FR">Bonsoir.</p>`)
	require.NoError(t, n.AddSection("ch2", "sc1", sc, -1))
	require.NoError(t, n.AddSection("ch2", "sc2", entities.NewSection("Second"), -1))

	cr := entities.NewCharacter("Alice")
	cr.SetMajor(true)
	cr.SetFullName("Alice Liddell")
	cr.SetBio("Born curious.")
	require.NoError(t, cr.SetBirthDate("1852-05-04"))
	n.AddCharacter("cr1", cr)
	loc := entities.NewLocation("Home")
	loc.SetAka("The house")
	n.AddLocation("lc1", loc)
	n.AddItem("it1", entities.NewItem("Key"))

	n.AddPlotLine("ac1", entities.NewPlotLine("Main", "A"))
	require.NoError(t, n.AddPlotPoint("ac1", "ap1", entities.NewPlotPoint("Inciting")))
	require.NoError(t, n.LinkPlotLine("sc2", "ac1"))
	require.NoError(t, n.AssignPlotPoint("ap1", "sc1"))
	sc.SetPlotlineNote("ac1", "note on main")

	pn := entities.NewProjectNote("Research")
	pn.SetDesc("Look things up")
	n.AddProjectNote("pn1", pn)
	return n
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.novx")
	original := buildNovel(t)

	require.NoError(t, NewFile(path, nil).Write(original))

	read := entities.NewNovel()
	require.NoError(t, NewFile(path, nil).Read(read))

	assert.Equal(t, original.Title(), read.Title())
	assert.Equal(t, original.Author(), read.Author())
	assert.Equal(t, original.Desc(), read.Desc())
	assert.Equal(t, "de-DE", read.Locale())
	assert.Equal(t, "3", read.WorkPhase())
	assert.Equal(t, "80000", read.WordTarget())
	assert.True(t, read.RenumberChapters())
	assert.Equal(t, "Chapter ", read.ChapterHeadingPrefix())
	assert.Equal(t, "Aim", read.CustomFields().Goal)
	assert.Equal(t, original.Links(), read.Links())
	assert.Equal(t, original.Fields(), read.Fields())
	dates, log := read.WordCountLog()
	assert.Equal(t, []string{"2024-02-01"}, dates)
	assert.Equal(t, entities.WordCountEntry{Count: 10, WithUnused: 12}, log["2024-02-01"])

	assert.Equal(t, original.Tree.GetChildren(entities.ChapterRoot), read.Tree.GetChildren(entities.ChapterRoot))
	assert.Equal(t, original.Tree.GetChildren("ch2"), read.Tree.GetChildren("ch2"))
	assert.True(t, read.Chapters["ch1"].IsPart())
	assert.Equal(t, "chapter notes", read.Chapters["ch2"].Notes())

	want, got := original.Sections["sc1"], read.Sections["sc1"]
	require.NotNil(t, got)
	assert.Equal(t, want.Title(), got.Title())
	assert.Equal(t, want.Status(), got.Status())
	assert.Equal(t, want.Scene(), got.Scene())
	assert.Equal(t, want.Date(), got.Date())
	assert.Equal(t, want.Time(), got.Time())
	assert.Equal(t, want.Duration(), got.Duration())
	assert.True(t, got.AppendToPrev())
	assert.Equal(t, want.Goal(), got.Goal())
	assert.Equal(t, want.Tags(), got.Tags())
	assert.Equal(t, want.Viewpoint(), got.Viewpoint())
	assert.Equal(t, want.Characters(), got.Characters())
	assert.Equal(t, want.Locations(), got.Locations())
	assert.Equal(t, want.Items(), got.Items())
	assert.Equal(t, want.Content(), got.Content())
	assert.Equal(t, want.WordCount(), got.WordCount())
	assert.Equal(t, want.PlotlineNotes(), got.PlotlineNotes())

	assert.ElementsMatch(t, []string{"sc1", "sc2"}, read.PlotLines["ac1"].Sections())
	assert.Equal(t, []string{"ac1"}, got.PlotLines())
	assert.Equal(t, map[string]string{"ap1": "ac1"}, got.PlotPoints())
	assert.Equal(t, "sc1", read.PlotPoints["ap1"].SectionAssoc())
	assert.Equal(t, "ac1", read.PlotPoints["ap1"].PlotLine())

	alice := read.Characters["cr1"]
	assert.True(t, alice.IsMajor())
	assert.Equal(t, "Alice Liddell", alice.FullName())
	assert.Equal(t, "Born curious.", alice.Bio())
	assert.Equal(t, "1852-05-04", alice.BirthDate())
	assert.Equal(t, "The house", read.Locations["lc1"].Aka())
	assert.Equal(t, "Key", read.Items["it1"].Title())
	assert.Equal(t, "Look things up", read.ProjectNotes["pn1"].Desc())
}

func TestFile_WriteReplacesAndKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.novx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	f := NewFile(path, nil)
	f.KeepBackup = true
	require.NoError(t, f.Write(buildNovel(t)))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "old", string(backup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, string(data), `<novx version="1.8" xml:lang="de-DE">`)
}

func TestFile_ReadMissing(t *testing.T) {
	err := NewFile(filepath.Join(t.TempDir(), "nope.novx"), nil).Read(entities.NewNovel())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
