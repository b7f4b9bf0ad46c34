package novx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// parseVersion splits the root's "major.minor" version attribute.
func parseVersion(root *xmldom.Node) (major, minor int, err error) {
	raw, ok := root.Attr("version")
	if !ok {
		return 0, 0, fmt.Errorf("no version attribute")
	}
	majorStr, minorStr, found := strings.Cut(strings.TrimSpace(raw), ".")
	if !found {
		return 0, 0, fmt.Errorf("version %q is not major.minor", raw)
	}
	if major, err = strconv.Atoi(majorStr); err != nil {
		return 0, 0, fmt.Errorf("version %q: %w", raw, err)
	}
	if minor, err = strconv.Atoi(minorStr); err != nil {
		return 0, 0, fmt.Errorf("version %q: %w", raw, err)
	}
	return major, minor, nil
}

// checkDocument validates the root element, migrates older documents in
// place and verifies that the result is supported.
func checkDocument(path string, root *xmldom.Node, logger *slog.Logger) error {
	if root.Name != RootTag {
		return errs.NewFormatError(path, "not a novx file", fmt.Errorf("root element is <%s>", root.Name))
	}
	major, minor, err := parseVersion(root)
	if err != nil {
		return errs.NewFormatError(path, "missing or invalid file version", err)
	}
	if major != MajorVersion {
		return errs.NewFormatError(path, fmt.Sprintf("file version %d.%d is not supported", major, minor), nil)
	}
	if minor < MinorVersion {
		migrated, err := Migrate(root, minor)
		if err != nil {
			return errs.NewFormatError(path, "cannot migrate file", err)
		}
		logger.Info("migrated novx file", "path", path, "from", fmt.Sprintf("%d.%d", major, minor), "to", fmt.Sprintf("%d.%d", major, migrated))
	}

	major, minor, err = parseVersion(root)
	if err != nil {
		return errs.NewFormatError(path, "missing or invalid file version", err)
	}
	if major != MajorVersion {
		return errs.NewFormatError(path, fmt.Sprintf("file version %d.%d is not supported", major, minor), nil)
	}
	if minor > MinorVersion {
		return errs.NewFormatError(path, fmt.Sprintf("file was created by a newer application (version %d.%d)", major, minor), nil)
	}
	return nil
}

// decoder fills a Novel from a validated document. Unusable values fall back
// to their defaults and are logged.
type decoder struct {
	path   string
	logger *slog.Logger
	novel  *entities.Novel
}

func (d *decoder) fallback(what, id string, err error) {
	if err != nil {
		d.logger.Warn("ignoring invalid value", "path", d.path, "element", id, "field", what, "error", err)
	}
}

func (d *decoder) decode(root *xmldom.Node) error {
	d.novel.Reset()
	if lang := root.Lang(); lang != "" {
		d.fallback("xml:lang", "novx", d.novel.SetLocale(lang))
	}
	if prj := root.Find("PROJECT"); prj != nil {
		d.decodeProject(prj)
	}
	if chapters := root.Find("CHAPTERS"); chapters != nil {
		for _, chEl := range chapters.FindAll("CHAPTER") {
			if err := d.decodeChapter(chEl); err != nil {
				return err
			}
		}
	}
	if characters := root.Find("CHARACTERS"); characters != nil {
		for _, el := range characters.FindAll("CHARACTER") {
			d.decodeCharacter(el)
		}
	}
	if locations := root.Find("LOCATIONS"); locations != nil {
		for _, el := range locations.FindAll("LOCATION") {
			id := el.AttrValue("id")
			l := entities.NewLocation(textOf(el, "Title"))
			d.decodeWorld(&l.WorldElement, el)
			d.novel.AddLocation(id, l)
		}
	}
	if items := root.Find("ITEMS"); items != nil {
		for _, el := range items.FindAll("ITEM") {
			id := el.AttrValue("id")
			it := entities.NewItem(textOf(el, "Title"))
			d.decodeWorld(&it.WorldElement, el)
			d.novel.AddItem(id, it)
		}
	}
	if arcs := root.Find("ARCS"); arcs != nil {
		for _, el := range arcs.FindAll("ARC") {
			if err := d.decodePlotLine(el); err != nil {
				return err
			}
		}
	}
	if notes := root.Find("NOTES"); notes != nil {
		for _, el := range notes.FindAll("NOTE") {
			id := el.AttrValue("id")
			pn := entities.NewProjectNote(textOf(el, "Title"))
			d.decodeBasic(&pn.Element, el)
			d.novel.AddProjectNote(id, pn)
		}
	}
	if progress := root.Find("PROGRESS"); progress != nil {
		for _, wc := range progress.FindAll("WC") {
			count, _ := strconv.Atoi(strings.TrimSpace(textOf(wc, "Count")))
			withUnused, _ := strconv.Atoi(strings.TrimSpace(textOf(wc, "WithUnused")))
			date := strings.TrimSpace(textOf(wc, "Date"))
			d.fallback("WC", date, d.novel.LogWordCount(date, entities.WordCountEntry{Count: count, WithUnused: withUnused}))
		}
	}
	return nil
}

func (d *decoder) decodeBasic(e *entities.Element, el *xmldom.Node) {
	e.SetDesc(paragraphsOf(el, "Desc"))
	e.SetLinks(linksOf(el))
	e.SetFields(fieldsOf(el))
}

func (d *decoder) decodeProject(prj *xmldom.Node) {
	n := d.novel
	n.SetRenumberChapters(boolAttr(prj, "renumberChapters"))
	n.SetRenumberParts(boolAttr(prj, "renumberParts"))
	n.SetRenumberWithinParts(boolAttr(prj, "renumberWithinParts"))
	n.SetRomanChapterNumbers(boolAttr(prj, "romanChapterNumbers"))
	n.SetRomanPartNumbers(boolAttr(prj, "romanPartNumbers"))
	n.SetSaveWordCount(boolAttr(prj, "saveWordCount"))
	d.fallback("workPhase", "PROJECT", n.SetWorkPhase(prj.AttrValue("workPhase")))

	n.SetTitle(textOf(prj, "Title"))
	n.SetAuthor(textOf(prj, "Author"))
	d.decodeBasic(&n.Element, prj)

	n.SetChapterHeadingPrefix(textOf(prj, "ChapterHeadingPrefix"))
	n.SetChapterHeadingSuffix(textOf(prj, "ChapterHeadingSuffix"))
	n.SetPartHeadingPrefix(textOf(prj, "PartHeadingPrefix"))
	n.SetPartHeadingSuffix(textOf(prj, "PartHeadingSuffix"))
	n.SetCustomFields(entities.CustomFields{
		PlotProgress:     textOf(prj, "CustomPlotProgress"),
		Characterization: textOf(prj, "CustomCharacterization"),
		WorldBuilding:    textOf(prj, "CustomWorldBuilding"),
		Goal:             textOf(prj, "CustomGoal"),
		Conflict:         textOf(prj, "CustomConflict"),
		Outcome:          textOf(prj, "CustomOutcome"),
		ChrBio:           textOf(prj, "CustomChrBio"),
		ChrGoals:         textOf(prj, "CustomChrGoals"),
	})
	d.fallback("WordCountStart", "PROJECT", n.SetWordCountStart(strings.TrimSpace(textOf(prj, "WordCountStart"))))
	d.fallback("WordTarget", "PROJECT", n.SetWordTarget(strings.TrimSpace(textOf(prj, "WordTarget"))))
	d.fallback("ReferenceDate", "PROJECT", n.SetReferenceDate(strings.TrimSpace(textOf(prj, "ReferenceDate"))))
}

func (d *decoder) decodeChapter(chEl *xmldom.Node) error {
	id := chEl.AttrValue("id")
	if !entities.IsID(entities.ChapterPrefix, id) {
		return errs.NewFormatError(d.path, "invalid chapter ID", fmt.Errorf("%q", id))
	}
	ch := entities.NewChapter(textOf(chEl, "Title"))
	if v, present, ok := intAttr(chEl, "type"); present {
		if !ok || ch.SetChType(v) != nil {
			_ = ch.SetChType(entities.ChapterUnused)
		}
	}
	if v, present, ok := intAttr(chEl, "level"); present {
		if !ok {
			v = entities.LevelChapter
		}
		d.fallback("level", id, ch.SetLevel(v))
	}
	ch.SetIsTrash(boolAttr(chEl, "isTrash"))
	ch.SetNoNumber(boolAttr(chEl, "noNumber"))
	ch.SetHasEpigraph(boolAttr(chEl, "hasEpigraph"))
	d.decodeBasic(&ch.Element, chEl)
	ch.SetNotes(paragraphsOf(chEl, "Notes"))
	d.novel.AddChapter(id, ch, -1)

	for _, scEl := range chEl.FindAll("SECTION") {
		if err := d.decodeSection(id, scEl); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeSection(chID string, scEl *xmldom.Node) error {
	id := scEl.AttrValue("id")
	if !entities.IsID(entities.SectionPrefix, id) {
		return errs.NewFormatError(d.path, "invalid section ID", fmt.Errorf("%q", id))
	}
	sc := entities.NewSection(textOf(scEl, "Title"))

	if v, present, ok := intAttr(scEl, "type"); present {
		if !ok || sc.SetScType(v) != nil {
			_ = sc.SetScType(entities.SectionUnused)
		}
	}
	if v, present, ok := intAttr(scEl, "status"); present && ok {
		d.fallback("status", id, sc.SetStatus(v))
	}
	if v, present, ok := intAttr(scEl, "scene"); present && ok {
		d.fallback("scene", id, sc.SetScene(v))
	}
	sc.SetAppendToPrev(boolAttr(scEl, "append"))

	d.decodeBasic(&sc.Element, scEl)
	sc.SetNotes(paragraphsOf(scEl, "Notes"))
	sc.SetTags(tagsOf(scEl))
	sc.SetGoal(paragraphsOf(scEl, "Goal"))
	sc.SetConflict(paragraphsOf(scEl, "Conflict"))
	sc.SetOutcome(paragraphsOf(scEl, "Outcome"))
	if pn := scEl.Find("PlotNotes"); pn != nil {
		for _, note := range pn.FindAll("PlotlineNotes") {
			sc.SetPlotlineNote(note.AttrValue("id"), paragraphs(note))
		}
	}

	if date := strings.TrimSpace(textOf(scEl, "Date")); date != "" {
		d.fallback("Date", id, sc.SetDate(date))
	} else if day := strings.TrimSpace(textOf(scEl, "Day")); day != "" {
		d.fallback("Day", id, sc.SetDay(day))
	}
	d.fallback("Time", id, sc.SetTime(strings.TrimSpace(textOf(scEl, "Time"))))
	d.fallback("Lasts", id, sc.SetDuration(entities.Duration{
		Days:    strings.TrimSpace(textOf(scEl, "LastsDays")),
		Hours:   strings.TrimSpace(textOf(scEl, "LastsHours")),
		Minutes: strings.TrimSpace(textOf(scEl, "LastsMinutes")),
	}))

	sc.SetViewpoint(idOf(scEl, "Viewpoint"))
	sc.SetCharacters(idsOf(scEl, "Characters"))
	sc.SetLocations(idsOf(scEl, "Locations"))
	sc.SetItems(idsOf(scEl, "Items"))
	sc.SetContent(contentOf(scEl))

	return d.novel.AddSection(chID, id, sc, -1)
}

func (d *decoder) decodeWorld(w *entities.WorldElement, el *xmldom.Node) {
	d.decodeBasic(&w.Element, el)
	w.SetAka(textOf(el, "Aka"))
	w.SetNotes(paragraphsOf(el, "Notes"))
	w.SetTags(tagsOf(el))
}

func (d *decoder) decodeCharacter(el *xmldom.Node) {
	id := el.AttrValue("id")
	c := entities.NewCharacter(textOf(el, "Title"))
	d.decodeWorld(&c.WorldElement, el)
	c.SetMajor(boolAttr(el, "major"))
	c.SetFullName(textOf(el, "FullName"))
	c.SetBio(paragraphsOf(el, "Bio"))
	c.SetGoals(paragraphsOf(el, "Goals"))
	d.fallback("BirthDate", id, c.SetBirthDate(strings.TrimSpace(textOf(el, "BirthDate"))))
	d.fallback("DeathDate", id, c.SetDeathDate(strings.TrimSpace(textOf(el, "DeathDate"))))
	d.novel.AddCharacter(id, c)
}

// decodePlotLine reads a plot line and its plot points. Memberships and
// assignments go through the relationship manager, so both directions are
// populated; references to unknown sections are dropped.
func (d *decoder) decodePlotLine(el *xmldom.Node) error {
	id := el.AttrValue("id")
	if !entities.IsID(entities.PlotLinePrefix, id) {
		return errs.NewFormatError(d.path, "invalid plot line ID", fmt.Errorf("%q", id))
	}
	pl := entities.NewPlotLine(textOf(el, "Title"), textOf(el, "ShortName"))
	d.decodeBasic(&pl.Element, el)
	pl.SetNotes(paragraphsOf(el, "Notes"))
	d.novel.AddPlotLine(id, pl)

	for _, scID := range idsOf(el, "Sections") {
		if _, ok := d.novel.Sections[scID]; !ok {
			d.logger.Warn("dropping reference to unknown section", "path", d.path, "plotLine", id, "section", scID)
			continue
		}
		if err := d.novel.LinkPlotLine(scID, id); err != nil {
			return fmt.Errorf("linking %s to %s: %w", scID, id, err)
		}
	}

	for _, ppEl := range el.FindAll("POINT") {
		ppID := ppEl.AttrValue("id")
		if !entities.IsID(entities.PlotPointPrefix, ppID) {
			return errs.NewFormatError(d.path, "invalid plot point ID", fmt.Errorf("%q", ppID))
		}
		pp := entities.NewPlotPoint(textOf(ppEl, "Title"))
		d.decodeBasic(&pp.Element, ppEl)
		pp.SetNotes(paragraphsOf(ppEl, "Notes"))
		if err := d.novel.AddPlotPoint(id, ppID, pp); err != nil {
			return err
		}
		scID := idOf(ppEl, "Section")
		if scID == "" {
			continue
		}
		if _, ok := d.novel.Sections[scID]; !ok {
			d.logger.Warn("dropping reference to unknown section", "path", d.path, "plotPoint", ppID, "section", scID)
			continue
		}
		if err := d.novel.AssignPlotPoint(ppID, scID); err != nil {
			return fmt.Errorf("assigning %s to %s: %w", ppID, scID, err)
		}
	}
	return nil
}
