package services

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// Divider markers, longest first.
const (
	AppendedSceneMarker = "####"
	SceneMarker         = "###"
	ChapterMarker       = "##"
	PartMarker          = "#"
)

// WarningPrefix marks narrative fields a split may have invalidated.
const WarningPrefix = "(!)"

// Default titles of chapters and parts created from untitled markers.
const (
	DefaultChapterTitle = "New Chapter"
	DefaultPartTitle    = "New Part"
)

// splitTitleRunes is the length the parent title is clipped to in fallback
// titles of split sections.
const splitTitleRunes = 20

var markupTag = regexp.MustCompile(`<[^>]+>`)

// divider is a parsed marker line.
type divider struct {
	marker string
	title  string
	desc   string
}

// parseDivider recognizes a marker line. Inline markup is ignored. A title
// may follow "##" and longer markers directly; "#" needs a space so that
// hashtags stay plain text.
func parseDivider(line string) (divider, bool) {
	text := strings.TrimSpace(markupTag.ReplaceAllString(line, ""))
	for _, marker := range []string{AppendedSceneMarker, SceneMarker, ChapterMarker, PartMarker} {
		rest, ok := strings.CutPrefix(text, marker)
		if !ok || !dividerTitleStart(marker, rest) {
			continue
		}
		title, desc, _ := strings.Cut(strings.TrimSpace(rest), "|")
		return divider{marker: marker, title: strings.TrimSpace(title), desc: strings.TrimSpace(desc)}, true
	}
	return divider{}, false
}

func dividerTitleStart(marker, rest string) bool {
	if rest == "" || rest[0] == ' ' {
		return true
	}
	if marker == PartMarker {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(line string) bool {
	return strings.TrimSpace(markupTag.ReplaceAllString(line, "")) == ""
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Splitter turns divider lines in section content into chapters and
// sections.
type Splitter struct {
	logger *slog.Logger
}

// NewSplitter creates a splitter. A nil logger uses slog.Default().
func NewSplitter(logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{logger: logger}
}

// SplitSections materializes every divider found in the book and reports
// whether anything was split. "#" starts a part, "##" a chapter, "###" a
// section and "####" a section appended to the previous one. A "|" in the
// marker line separates title and description.
func (s *Splitter) SplitSections(n *entities.Novel) bool {
	split := false
	for i := 0; i < len(n.Tree.GetChildren(entities.ChapterRoot)); i++ {
		chID := n.Tree.GetChildren(entities.ChapterRoot)[i]
		for j := 0; j < len(n.Tree.GetChildren(chID)); j++ {
			scID := n.Tree.GetChildren(chID)[j]
			if s.splitSection(n, chID, scID) {
				split = true
			}
		}
	}
	return split
}

// splitRun holds the state of splitting one section.
type splitRun struct {
	n        *entities.Novel
	logger   *slog.Logger
	parentID string
	parent   *entities.Section
	count    int

	chapterID string
	// current receives buffered lines; nil right after a chapter marker.
	current   *entities.Section
	currentID string
	buffer    []string
}

func (s *Splitter) splitSection(n *entities.Novel, chID, scID string) bool {
	sc := n.Sections[scID]
	if sc == nil || sc.Content() == "" {
		return false
	}
	lines := strings.Split(sc.Content(), "\n")
	if !slices.ContainsFunc(lines, func(l string) bool { _, ok := parseDivider(l); return ok }) {
		return false
	}

	run := &splitRun{
		n:         n,
		logger:    s.logger,
		parentID:  scID,
		parent:    sc,
		chapterID: chID,
		current:   sc,
		currentID: scID,
	}
	for _, line := range lines {
		d, ok := parseDivider(line)
		if !ok {
			run.buffer = append(run.buffer, line)
			continue
		}
		switch d.marker {
		case SceneMarker, AppendedSceneMarker:
			run.newSection(d)
		default:
			run.newChapter(d)
		}
	}
	run.flush()
	return true
}

// flush moves the buffered lines into the current section, opening a
// section first if a chapter marker left none.
func (r *splitRun) flush() {
	lines := trimBlankLines(r.buffer)
	r.buffer = nil
	if r.current == nil {
		if len(lines) == 0 {
			return
		}
		r.addSection(divider{}, 0)
	}
	r.current.SetContent(strings.Join(lines, "\n"))
}

func (r *splitRun) fallbackTitle() string {
	title := []rune(r.parent.Title())
	if len(title) > splitTitleRunes {
		title = title[:splitTitleRunes]
	}
	return strings.TrimSpace(fmt.Sprintf("%s Split: %d", strings.TrimSpace(string(title)), r.count))
}

// addSection creates a section derived from the parent at index in the
// current chapter and makes it current.
func (r *splitRun) addSection(d divider, index int) {
	r.count++
	title := d.title
	if title == "" {
		title = r.fallbackTitle()
	}
	sc := entities.NewSection(title)
	sc.SetDesc(d.desc)
	_ = sc.SetScType(r.parent.ScType())
	status := min(r.parent.Status(), entities.StatusDraft)
	_ = sc.SetStatus(status)
	if r.parent.Date() != "" {
		_ = sc.SetDate(r.parent.Date())
	} else {
		_ = sc.SetDay(r.parent.Day())
	}
	_ = sc.SetTime(r.parent.Time())
	_ = sc.SetDuration(r.parent.Duration())
	sc.SetAppendToPrev(d.marker == AppendedSceneMarker)

	id := r.n.NewID(entities.SectionPrefix)
	if err := r.n.AddSection(r.chapterID, id, sc, index); err != nil {
		r.logger.Error("cannot add split section", "chapter", r.chapterID, "error", err)
		return
	}
	r.current, r.currentID = sc, id
	r.markParent()
	r.logger.Debug("split section", "parent", r.parentID, "section", id, "title", title)
}

func (r *splitRun) markParent() {
	p := r.parent
	mark := func(get func() string, set func(string)) {
		if v := get(); v != "" && !strings.HasPrefix(v, WarningPrefix) {
			set(WarningPrefix + v)
		}
	}
	mark(p.Desc, p.SetDesc)
	mark(p.Goal, p.SetGoal)
	mark(p.Conflict, p.SetConflict)
	mark(p.Outcome, p.SetOutcome)
}

func (r *splitRun) newSection(d divider) {
	r.flush()
	index := 0
	if r.current != nil {
		index = slices.Index(r.n.Tree.GetChildren(r.chapterID), r.currentID) + 1
	}
	r.addSection(d, index)
}

// newChapter opens a chapter after the current one and moves the
// sections following the current section into it.
func (r *splitRun) newChapter(d divider) {
	r.flush()

	oldChapter := r.n.Chapters[r.chapterID]
	level := entities.LevelChapter
	title := d.title
	if d.marker == PartMarker {
		level = entities.LevelPart
		if title == "" {
			title = DefaultPartTitle
		}
	} else if title == "" {
		title = DefaultChapterTitle
	}
	ch := entities.NewChapter(title)
	ch.SetDesc(d.desc)
	_ = ch.SetLevel(level)
	if oldChapter != nil {
		_ = ch.SetChType(oldChapter.ChType())
	}

	chapters := r.n.Tree.GetChildren(entities.ChapterRoot)
	id := r.n.NewID(entities.ChapterPrefix)
	r.n.AddChapter(id, ch, slices.Index(chapters, r.chapterID)+1)

	siblings := r.n.Tree.GetChildren(r.chapterID)
	cut := 0
	if r.current != nil {
		cut = slices.Index(siblings, r.currentID) + 1
	}
	r.n.Tree.SetChildren(r.chapterID, siblings[:cut])
	r.n.Tree.SetChildren(id, siblings[cut:])

	r.chapterID = id
	r.current, r.currentID = nil, ""
	r.logger.Debug("split chapter", "parent", r.parentID, "chapter", id, "title", title)
}
