package novx

import (
	"fmt"
	"strconv"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// Encode builds the document tree for a novel. Values equal to their
// defaults are omitted.
func Encode(n *entities.Novel) *xmldom.Node {
	root := xmldom.NewElement(RootTag)
	root.SetAttr("version", fmt.Sprintf("%d.%d", MajorVersion, MinorVersion))
	if locale := n.Locale(); locale != "" {
		root.SetLang(locale)
	}

	encodeProject(root.AddElement("PROJECT"), n)

	chapters := root.AddElement("CHAPTERS")
	for _, chID := range n.Tree.GetChildren(entities.ChapterRoot) {
		ch, ok := n.Chapters[chID]
		if !ok {
			continue
		}
		chEl := chapters.AddElement("CHAPTER")
		encodeChapter(chEl, chID, ch)
		for _, scID := range n.Tree.GetChildren(chID) {
			sc, ok := n.Sections[scID]
			if !ok {
				continue
			}
			encodeSection(chEl.AddElement("SECTION"), scID, sc)
		}
	}

	characters := root.AddElement("CHARACTERS")
	for _, id := range n.Tree.GetChildren(entities.CharacterRoot) {
		if c, ok := n.Characters[id]; ok {
			encodeCharacter(characters.AddElement("CHARACTER"), id, c)
		}
	}
	locations := root.AddElement("LOCATIONS")
	for _, id := range n.Tree.GetChildren(entities.LocationRoot) {
		if l, ok := n.Locations[id]; ok {
			el := locations.AddElement("LOCATION")
			el.SetAttr("id", id)
			encodeWorld(el, &l.WorldElement)
		}
	}
	items := root.AddElement("ITEMS")
	for _, id := range n.Tree.GetChildren(entities.ItemRoot) {
		if it, ok := n.Items[id]; ok {
			el := items.AddElement("ITEM")
			el.SetAttr("id", id)
			encodeWorld(el, &it.WorldElement)
		}
	}

	arcs := root.AddElement("ARCS")
	for _, id := range n.Tree.GetChildren(entities.PlotLineRoot) {
		pl, ok := n.PlotLines[id]
		if !ok {
			continue
		}
		el := arcs.AddElement("ARC")
		el.SetAttr("id", id)
		addText(el, "Title", pl.Title())
		addText(el, "ShortName", pl.ShortName())
		addParagraphs(el, "Desc", pl.Desc())
		addParagraphs(el, "Notes", pl.Notes())
		addLinks(el, pl.Links())
		addFields(el, pl.Fields())
		addIDs(el, "Sections", pl.Sections())
		for _, ppID := range n.Tree.GetChildren(id) {
			pp, ok := n.PlotPoints[ppID]
			if !ok {
				continue
			}
			ppEl := el.AddElement("POINT")
			ppEl.SetAttr("id", ppID)
			addText(ppEl, "Title", pp.Title())
			addParagraphs(ppEl, "Desc", pp.Desc())
			addParagraphs(ppEl, "Notes", pp.Notes())
			addLinks(ppEl, pp.Links())
			addFields(ppEl, pp.Fields())
			addID(ppEl, "Section", pp.SectionAssoc())
		}
	}

	notes := root.AddElement("NOTES")
	for _, id := range n.Tree.GetChildren(entities.ProjectNoteRoot) {
		pn, ok := n.ProjectNotes[id]
		if !ok {
			continue
		}
		el := notes.AddElement("NOTE")
		el.SetAttr("id", id)
		addText(el, "Title", pn.Title())
		addParagraphs(el, "Desc", pn.Desc())
		addLinks(el, pn.Links())
		addFields(el, pn.Fields())
	}

	dates, log := n.WordCountLog()
	if len(dates) > 0 {
		progress := root.AddElement("PROGRESS")
		for _, date := range dates {
			wc := progress.AddElement("WC")
			wc.AddText("Date", date)
			wc.AddText("Count", strconv.Itoa(log[date].Count))
			wc.AddText("WithUnused", strconv.Itoa(log[date].WithUnused))
		}
	}
	return root
}

func encodeProject(prj *xmldom.Node, n *entities.Novel) {
	setBoolAttr(prj, "renumberChapters", n.RenumberChapters())
	setBoolAttr(prj, "renumberParts", n.RenumberParts())
	setBoolAttr(prj, "renumberWithinParts", n.RenumberWithinParts())
	setBoolAttr(prj, "romanChapterNumbers", n.RomanChapterNumbers())
	setBoolAttr(prj, "romanPartNumbers", n.RomanPartNumbers())
	setBoolAttr(prj, "saveWordCount", n.SaveWordCount())
	if wp := n.WorkPhase(); wp != "" {
		prj.SetAttr("workPhase", wp)
	}

	addText(prj, "Title", n.Title())
	addText(prj, "Author", n.Author())
	addParagraphs(prj, "Desc", n.Desc())
	addLinks(prj, n.Links())
	addFields(prj, n.Fields())
	addText(prj, "ChapterHeadingPrefix", n.ChapterHeadingPrefix())
	addText(prj, "ChapterHeadingSuffix", n.ChapterHeadingSuffix())
	addText(prj, "PartHeadingPrefix", n.PartHeadingPrefix())
	addText(prj, "PartHeadingSuffix", n.PartHeadingSuffix())

	cf := n.CustomFields()
	addText(prj, "CustomPlotProgress", cf.PlotProgress)
	addText(prj, "CustomCharacterization", cf.Characterization)
	addText(prj, "CustomWorldBuilding", cf.WorldBuilding)
	addText(prj, "CustomGoal", cf.Goal)
	addText(prj, "CustomConflict", cf.Conflict)
	addText(prj, "CustomOutcome", cf.Outcome)
	addText(prj, "CustomChrBio", cf.ChrBio)
	addText(prj, "CustomChrGoals", cf.ChrGoals)

	addText(prj, "WordCountStart", n.WordCountStart())
	addText(prj, "WordTarget", n.WordTarget())
	addText(prj, "ReferenceDate", n.ReferenceDate())
}

func encodeChapter(el *xmldom.Node, id string, ch *entities.Chapter) {
	el.SetAttr("id", id)
	setIntAttr(el, "type", ch.ChType())
	if ch.IsPart() {
		el.SetAttr("level", strconv.Itoa(entities.LevelPart))
	}
	setBoolAttr(el, "isTrash", ch.IsTrash())
	setBoolAttr(el, "noNumber", ch.NoNumber())
	setBoolAttr(el, "hasEpigraph", ch.HasEpigraph())
	addText(el, "Title", ch.Title())
	addParagraphs(el, "Desc", ch.Desc())
	addParagraphs(el, "Notes", ch.Notes())
	addLinks(el, ch.Links())
	addFields(el, ch.Fields())
}

func encodeSection(el *xmldom.Node, id string, sc *entities.Section) {
	el.SetAttr("id", id)
	setIntAttr(el, "type", sc.ScType())
	if sc.Status() != entities.StatusOutline {
		el.SetAttr("status", strconv.Itoa(sc.Status()))
	}
	setIntAttr(el, "scene", sc.Scene())
	setBoolAttr(el, "append", sc.AppendToPrev())

	addText(el, "Title", sc.Title())
	addParagraphs(el, "Desc", sc.Desc())
	addParagraphs(el, "Notes", sc.Notes())
	addTags(el, sc.Tags())
	addParagraphs(el, "Goal", sc.Goal())
	addParagraphs(el, "Conflict", sc.Conflict())
	addParagraphs(el, "Outcome", sc.Outcome())
	if notes := sc.PlotlineNotes(); len(notes) > 0 {
		pn := el.AddElement("PlotNotes")
		for _, plID := range sortedKeys(notes) {
			addParagraphs(pn, "PlotlineNotes", notes[plID])
			pn.Children[len(pn.Children)-1].SetAttr("id", plID)
		}
	}

	addText(el, "Date", sc.Date())
	addText(el, "Day", sc.Day())
	addText(el, "Time", sc.Time())
	d := sc.Duration()
	addCount(el, "LastsDays", d.Days)
	addCount(el, "LastsHours", d.Hours)
	addCount(el, "LastsMinutes", d.Minutes)

	addID(el, "Viewpoint", sc.Viewpoint())
	addIDs(el, "Characters", sc.Characters())
	addIDs(el, "Locations", sc.Locations())
	addIDs(el, "Items", sc.Items())
	addLinks(el, sc.Links())
	addFields(el, sc.Fields())
	addContent(el, sc.Content())
}

func encodeWorld(el *xmldom.Node, w *entities.WorldElement) {
	addText(el, "Title", w.Title())
	addText(el, "Aka", w.Aka())
	addParagraphs(el, "Desc", w.Desc())
	addParagraphs(el, "Notes", w.Notes())
	addTags(el, w.Tags())
	addLinks(el, w.Links())
	addFields(el, w.Fields())
}

func encodeCharacter(el *xmldom.Node, id string, c *entities.Character) {
	el.SetAttr("id", id)
	setBoolAttr(el, "major", c.IsMajor())
	encodeWorld(el, &c.WorldElement)
	addText(el, "FullName", c.FullName())
	addParagraphs(el, "Bio", c.Bio())
	addParagraphs(el, "Goals", c.Goals())
	addText(el, "BirthDate", c.BirthDate())
	addText(el, "DeathDate", c.DeathDate())
}
