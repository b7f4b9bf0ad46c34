package entities

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
)

// WordCountEntry is one record of the project's word-count log.
type WordCountEntry struct {
	Count      int
	WithUnused int
}

// Novel is the root aggregate: project settings, the tree index and the
// per-kind element maps. The maps may be read directly; adding and removing
// elements goes through the Add/Delete methods so that the tree, the maps and
// every cross reference stay consistent.
type Novel struct {
	Element

	author       string
	languageCode string
	countryCode  string

	renumberChapters    bool
	renumberParts       bool
	renumberWithinParts bool
	romanChapterNumbers bool
	romanPartNumbers    bool
	saveWordCount       bool
	workPhase           string

	chapterHeadingPrefix string
	chapterHeadingSuffix string
	partHeadingPrefix    string
	partHeadingSuffix    string

	customPlotProgress     string
	customCharacterization string
	customWorldBuilding    string
	customGoal             string
	customConflict         string
	customOutcome          string
	customChrBio           string
	customChrGoals         string

	referenceDate  string
	wordTarget     string
	wordCountStart string

	wordCountLog map[string]WordCountEntry
	languages    []string

	Tree         *Tree
	Chapters     map[string]*Chapter
	Sections     map[string]*Section
	Characters   map[string]*Character
	Locations    map[string]*Location
	Items        map[string]*Item
	PlotLines    map[string]*PlotLine
	PlotPoints   map[string]*PlotPoint
	ProjectNotes map[string]*ProjectNote
}

// NewNovel returns an empty novel.
func NewNovel() *Novel {
	n := &Novel{Tree: NewTree()}
	n.Reset()
	return n
}

// Reset discards all elements and the tree, keeping the listener.
func (n *Novel) Reset() {
	n.Tree.Reset()
	n.Chapters = make(map[string]*Chapter)
	n.Sections = make(map[string]*Section)
	n.Characters = make(map[string]*Character)
	n.Locations = make(map[string]*Location)
	n.Items = make(map[string]*Item)
	n.PlotLines = make(map[string]*PlotLine)
	n.PlotPoints = make(map[string]*PlotPoint)
	n.ProjectNotes = make(map[string]*ProjectNote)
	n.wordCountLog = make(map[string]WordCountEntry)
	n.languages = nil
}

// SetChangeListener registers fn on the novel and on every element it owns.
// Elements added later inherit the listener.
func (n *Novel) SetChangeListener(fn ChangeListener) {
	n.listener = fn
	for _, e := range n.elements() {
		e.SetChangeListener(fn)
	}
}

type listenable interface {
	SetChangeListener(fn ChangeListener)
}

func (n *Novel) elements() []listenable {
	var out []listenable
	for _, e := range n.Chapters {
		out = append(out, e)
	}
	for _, e := range n.Sections {
		out = append(out, e)
	}
	for _, e := range n.Characters {
		out = append(out, e)
	}
	for _, e := range n.Locations {
		out = append(out, e)
	}
	for _, e := range n.Items {
		out = append(out, e)
	}
	for _, e := range n.PlotLines {
		out = append(out, e)
	}
	for _, e := range n.PlotPoints {
		out = append(out, e)
	}
	for _, e := range n.ProjectNotes {
		out = append(out, e)
	}
	return out
}

// NewID returns an unused ID with the given kind prefix.
func (n *Novel) NewID(prefix string) string {
	switch prefix {
	case ChapterPrefix:
		return NextID(prefix, n.Chapters)
	case SectionPrefix:
		return NextID(prefix, n.Sections)
	case CharacterPrefix:
		return NextID(prefix, n.Characters)
	case LocationPrefix:
		return NextID(prefix, n.Locations)
	case ItemPrefix:
		return NextID(prefix, n.Items)
	case PlotLinePrefix:
		return NextID(prefix, n.PlotLines)
	case PlotPointPrefix:
		return NextID(prefix, n.PlotPoints)
	case ProjectNotePrefix:
		return NextID(prefix, n.ProjectNotes)
	default:
		return ""
	}
}

// AddChapter registers a chapter and inserts it into the book at index
// (negative appends).
func (n *Novel) AddChapter(id string, c *Chapter, index int) {
	c.listener = n.listener
	n.Chapters[id] = c
	n.Tree.Insert(ChapterRoot, index, id)
	n.changed()
}

// AddSection registers a section and inserts it into a chapter at index
// (negative appends).
func (n *Novel) AddSection(chapterID, id string, s *Section, index int) error {
	if _, ok := n.Chapters[chapterID]; !ok {
		return fmt.Errorf("%w: chapter %q", ErrNotFound, chapterID)
	}
	s.listener = n.listener
	n.Sections[id] = s
	n.Tree.Insert(chapterID, index, id)
	n.changed()
	return nil
}

// AddCharacter registers a character.
func (n *Novel) AddCharacter(id string, c *Character) {
	c.listener = n.listener
	n.Characters[id] = c
	n.Tree.Append(CharacterRoot, id)
	n.changed()
}

// AddLocation registers a location.
func (n *Novel) AddLocation(id string, l *Location) {
	l.listener = n.listener
	n.Locations[id] = l
	n.Tree.Append(LocationRoot, id)
	n.changed()
}

// AddItem registers an item.
func (n *Novel) AddItem(id string, i *Item) {
	i.listener = n.listener
	n.Items[id] = i
	n.Tree.Append(ItemRoot, id)
	n.changed()
}

// AddPlotLine registers a plot line.
func (n *Novel) AddPlotLine(id string, p *PlotLine) {
	p.listener = n.listener
	n.PlotLines[id] = p
	n.Tree.Append(PlotLineRoot, id)
	n.changed()
}

// AddPlotPoint registers a plot point under a plot line.
func (n *Novel) AddPlotPoint(plotLineID, id string, p *PlotPoint) error {
	if _, ok := n.PlotLines[plotLineID]; !ok {
		return fmt.Errorf("%w: plot line %q", ErrNotFound, plotLineID)
	}
	p.listener = n.listener
	p.plotLine = plotLineID
	n.PlotPoints[id] = p
	n.Tree.Append(plotLineID, id)
	n.changed()
	return nil
}

// AddProjectNote registers a project note.
func (n *Novel) AddProjectNote(id string, p *ProjectNote) {
	p.listener = n.listener
	n.ProjectNotes[id] = p
	n.Tree.Append(ProjectNoteRoot, id)
	n.changed()
}

// ChapterOf returns the ID of the chapter containing the section, or "".
func (n *Novel) ChapterOf(sectionID string) string {
	for _, chID := range n.Tree.GetChildren(ChapterRoot) {
		if slices.Contains(n.Tree.GetChildren(chID), sectionID) {
			return chID
		}
	}
	return ""
}

// DeleteSection removes a section together with its plot-line memberships and
// plot-point assignments.
func (n *Novel) DeleteSection(id string) {
	s, ok := n.Sections[id]
	if !ok {
		return
	}
	for _, plID := range slices.Clone(s.plotLines) {
		n.UnlinkPlotLine(id, plID)
	}
	if chID := n.ChapterOf(id); chID != "" {
		n.Tree.Remove(chID, id)
	}
	delete(n.Sections, id)
	n.changed()
}

// DeleteChapter removes a chapter and all of its sections.
func (n *Novel) DeleteChapter(id string) {
	if _, ok := n.Chapters[id]; !ok {
		return
	}
	for _, scID := range n.Tree.GetChildren(id) {
		n.DeleteSection(scID)
	}
	n.Tree.Remove(ChapterRoot, id)
	delete(n.Chapters, id)
	n.changed()
}

// DeletePlotLine removes a plot line, its plot points and every section
// membership and plot-line note referring to it.
func (n *Novel) DeletePlotLine(id string) {
	p, ok := n.PlotLines[id]
	if !ok {
		return
	}
	for _, scID := range slices.Clone(p.sections) {
		n.UnlinkPlotLine(scID, id)
	}
	for _, ppID := range n.Tree.GetChildren(id) {
		n.DeletePlotPoint(ppID)
	}
	for _, s := range n.Sections {
		s.SetPlotlineNote(id, "")
	}
	n.Tree.Remove(PlotLineRoot, id)
	delete(n.PlotLines, id)
	n.changed()
}

// DeletePlotPoint removes a plot point and its section assignment.
func (n *Novel) DeletePlotPoint(id string) {
	p, ok := n.PlotPoints[id]
	if !ok {
		return
	}
	n.UnassignPlotPoint(id)
	n.Tree.Remove(p.plotLine, id)
	delete(n.PlotPoints, id)
	n.changed()
}

// DeleteCharacter removes a character and all section references to it.
func (n *Novel) DeleteCharacter(id string) {
	if _, ok := n.Characters[id]; !ok {
		return
	}
	for _, s := range n.Sections {
		s.SetCharacters(slices.DeleteFunc(s.Characters(), func(v string) bool { return v == id }))
		if s.viewpoint == id {
			s.SetViewpoint("")
		}
	}
	n.Tree.Remove(CharacterRoot, id)
	delete(n.Characters, id)
	n.changed()
}

// DeleteLocation removes a location and all section references to it.
func (n *Novel) DeleteLocation(id string) {
	if _, ok := n.Locations[id]; !ok {
		return
	}
	for _, s := range n.Sections {
		s.SetLocations(slices.DeleteFunc(s.Locations(), func(v string) bool { return v == id }))
	}
	n.Tree.Remove(LocationRoot, id)
	delete(n.Locations, id)
	n.changed()
}

// DeleteItem removes an item and all section references to it.
func (n *Novel) DeleteItem(id string) {
	if _, ok := n.Items[id]; !ok {
		return
	}
	for _, s := range n.Sections {
		s.SetItems(slices.DeleteFunc(s.Items(), func(v string) bool { return v == id }))
	}
	n.Tree.Remove(ItemRoot, id)
	delete(n.Items, id)
	n.changed()
}

// DeleteProjectNote removes a project note.
func (n *Novel) DeleteProjectNote(id string) {
	if _, ok := n.ProjectNotes[id]; !ok {
		return
	}
	n.Tree.Remove(ProjectNoteRoot, id)
	delete(n.ProjectNotes, id)
	n.changed()
}

// SectionsInOrder returns the IDs of all sections in book order.
func (n *Novel) SectionsInOrder() []string {
	var out []string
	for _, chID := range n.Tree.GetChildren(ChapterRoot) {
		out = append(out, n.Tree.GetChildren(chID)...)
	}
	return out
}

// CountWords returns the word count of normal sections in normal chapters,
// and the word count including unused sections and chapters.
func (n *Novel) CountWords() (count, withUnused int) {
	for _, chID := range n.Tree.GetChildren(ChapterRoot) {
		ch := n.Chapters[chID]
		for _, scID := range n.Tree.GetChildren(chID) {
			s := n.Sections[scID]
			if s == nil {
				continue
			}
			if s.IsStage() {
				continue
			}
			withUnused += s.wordCount
			if ch != nil && ch.chType == ChapterNormal && s.scType == SectionNormal {
				count += s.wordCount
			}
		}
	}
	return count, withUnused
}

// Author returns the author's name.
func (n *Novel) Author() string { return n.author }

// SetAuthor sets the author's name.
func (n *Novel) SetAuthor(v string) { setString(n, &n.author, v) }

// LanguageCode returns the ISO 639 language code of the document.
func (n *Novel) LanguageCode() string { return n.languageCode }

// CountryCode returns the ISO 3166 country code of the document.
func (n *Novel) CountryCode() string { return n.countryCode }

// RenumberChapters reports whether chapters are auto-numbered.
func (n *Novel) RenumberChapters() bool { return n.renumberChapters }

// SetRenumberChapters sets chapter auto-numbering.
func (n *Novel) SetRenumberChapters(v bool) { setBool(n, &n.renumberChapters, v) }

// RenumberParts reports whether parts are auto-numbered.
func (n *Novel) RenumberParts() bool { return n.renumberParts }

// SetRenumberParts sets part auto-numbering.
func (n *Novel) SetRenumberParts(v bool) { setBool(n, &n.renumberParts, v) }

// RenumberWithinParts reports whether chapter numbering restarts in each part.
func (n *Novel) RenumberWithinParts() bool { return n.renumberWithinParts }

// SetRenumberWithinParts sets chapter numbering restart per part.
func (n *Novel) SetRenumberWithinParts(v bool) { setBool(n, &n.renumberWithinParts, v) }

// RomanChapterNumbers reports whether chapters use roman numbers.
func (n *Novel) RomanChapterNumbers() bool { return n.romanChapterNumbers }

// SetRomanChapterNumbers sets roman chapter numbers.
func (n *Novel) SetRomanChapterNumbers(v bool) { setBool(n, &n.romanChapterNumbers, v) }

// RomanPartNumbers reports whether parts use roman numbers.
func (n *Novel) RomanPartNumbers() bool { return n.romanPartNumbers }

// SetRomanPartNumbers sets roman part numbers.
func (n *Novel) SetRomanPartNumbers(v bool) { setBool(n, &n.romanPartNumbers, v) }

// SaveWordCount reports whether the word-count log is maintained.
func (n *Novel) SaveWordCount() bool { return n.saveWordCount }

// SetSaveWordCount enables the word-count log.
func (n *Novel) SetSaveWordCount(v bool) { setBool(n, &n.saveWordCount, v) }

// WorkPhase returns the work phase number as a string.
func (n *Novel) WorkPhase() string { return n.workPhase }

// SetWorkPhase sets the work phase; it must be empty or 1..5.
func (n *Novel) SetWorkPhase(v string) error {
	if v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 5 {
			return fmt.Errorf("%w: work phase %q", ErrInvalidValue, v)
		}
	}
	setString(n, &n.workPhase, v)
	return nil
}

// ChapterHeadingPrefix returns the text placed before chapter numbers.
func (n *Novel) ChapterHeadingPrefix() string { return n.chapterHeadingPrefix }

// SetChapterHeadingPrefix sets the text placed before chapter numbers.
func (n *Novel) SetChapterHeadingPrefix(v string) { setString(n, &n.chapterHeadingPrefix, v) }

// ChapterHeadingSuffix returns the text placed after chapter numbers.
func (n *Novel) ChapterHeadingSuffix() string { return n.chapterHeadingSuffix }

// SetChapterHeadingSuffix sets the text placed after chapter numbers.
func (n *Novel) SetChapterHeadingSuffix(v string) { setString(n, &n.chapterHeadingSuffix, v) }

// PartHeadingPrefix returns the text placed before part numbers.
func (n *Novel) PartHeadingPrefix() string { return n.partHeadingPrefix }

// SetPartHeadingPrefix sets the text placed before part numbers.
func (n *Novel) SetPartHeadingPrefix(v string) { setString(n, &n.partHeadingPrefix, v) }

// PartHeadingSuffix returns the text placed after part numbers.
func (n *Novel) PartHeadingSuffix() string { return n.partHeadingSuffix }

// SetPartHeadingSuffix sets the text placed after part numbers.
func (n *Novel) SetPartHeadingSuffix(v string) { setString(n, &n.partHeadingSuffix, v) }

// ReferenceDate returns the date day offsets are relative to.
func (n *Novel) ReferenceDate() string { return n.referenceDate }

// SetReferenceDate sets the date day offsets are relative to.
func (n *Novel) SetReferenceDate(v string) error {
	if err := validDate(v); err != nil {
		return err
	}
	setString(n, &n.referenceDate, v)
	return nil
}

// WordTarget returns the target word count.
func (n *Novel) WordTarget() string { return n.wordTarget }

// SetWordTarget sets the target word count.
func (n *Novel) SetWordTarget(v string) error {
	if err := validCount(v); err != nil {
		return err
	}
	setString(n, &n.wordTarget, v)
	return nil
}

// WordCountStart returns the word count at the start of the writing period.
func (n *Novel) WordCountStart() string { return n.wordCountStart }

// SetWordCountStart sets the word count at the start of the writing period.
func (n *Novel) SetWordCountStart(v string) error {
	if err := validCount(v); err != nil {
		return err
	}
	setString(n, &n.wordCountStart, v)
	return nil
}

func validCount(v string) error {
	if v == "" {
		return nil
	}
	if c, err := strconv.Atoi(v); err != nil || c < 0 {
		return fmt.Errorf("%w: count %q", ErrInvalidValue, v)
	}
	return nil
}

// CustomFields holds the user-defined field labels.
type CustomFields struct {
	PlotProgress     string
	Characterization string
	WorldBuilding    string
	Goal             string
	Conflict         string
	Outcome          string
	ChrBio           string
	ChrGoals         string
}

// CustomFields returns the user-defined field labels.
func (n *Novel) CustomFields() CustomFields {
	return CustomFields{
		PlotProgress:     n.customPlotProgress,
		Characterization: n.customCharacterization,
		WorldBuilding:    n.customWorldBuilding,
		Goal:             n.customGoal,
		Conflict:         n.customConflict,
		Outcome:          n.customOutcome,
		ChrBio:           n.customChrBio,
		ChrGoals:         n.customChrGoals,
	}
}

// SetCustomFields sets the user-defined field labels.
func (n *Novel) SetCustomFields(f CustomFields) {
	if n.CustomFields() == f {
		return
	}
	n.customPlotProgress = f.PlotProgress
	n.customCharacterization = f.Characterization
	n.customWorldBuilding = f.WorldBuilding
	n.customGoal = f.Goal
	n.customConflict = f.Conflict
	n.customOutcome = f.Outcome
	n.customChrBio = f.ChrBio
	n.customChrGoals = f.ChrGoals
	n.changed()
}

// SectionFieldLabels returns the labels of the goal, conflict and outcome
// fields for a scene kind.
func (n *Novel) SectionFieldLabels(scene int) [3]string {
	pick := func(custom, fallback string) string {
		if custom != "" {
			return custom
		}
		return fallback
	}
	switch scene {
	case SceneAction:
		return [3]string{"Goal", "Conflict", "Outcome"}
	case SceneReaction:
		return [3]string{"Reaction", "Dilemma", "Choice"}
	case SceneOther:
		return [3]string{
			pick(n.customGoal, "Opening"),
			pick(n.customConflict, "Peak emotional moment"),
			pick(n.customOutcome, "Ending"),
		}
	default:
		return [3]string{
			pick(n.customPlotProgress, "Plot progress"),
			pick(n.customCharacterization, "Characterization"),
			pick(n.customWorldBuilding, "World building"),
		}
	}
}

// CharacterFieldLabels returns the labels of the character bio and goals fields.
func (n *Novel) CharacterFieldLabels() [2]string {
	bio, goals := "Bio", "Goals"
	if n.customChrBio != "" {
		bio = n.customChrBio
	}
	if n.customChrGoals != "" {
		goals = n.customChrGoals
	}
	return [2]string{bio, goals}
}

// WordCountLog returns the word-count log dates in ascending order.
func (n *Novel) WordCountLog() ([]string, map[string]WordCountEntry) {
	dates := make([]string, 0, len(n.wordCountLog))
	entries := make(map[string]WordCountEntry, len(n.wordCountLog))
	for date, e := range n.wordCountLog {
		dates = append(dates, date)
		entries[date] = e
	}
	sort.Strings(dates)
	return dates, entries
}

// LogWordCount records the word counts for a date.
func (n *Novel) LogWordCount(date string, e WordCountEntry) error {
	if err := validDate(date); err != nil || date == "" {
		return fmt.Errorf("%w: log date %q", ErrInvalidValue, date)
	}
	if current, ok := n.wordCountLog[date]; ok && current == e {
		return nil
	}
	n.wordCountLog[date] = e
	n.changed()
	return nil
}
