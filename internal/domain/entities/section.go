package entities

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"
)

// Section types.
const (
	SectionNormal = 0
	SectionUnused = 1
	SectionStage1 = 2
	SectionStage2 = 3
)

// Completion status.
const (
	StatusOutline    = 1
	StatusDraft      = 2
	StatusFirstEdit  = 3
	StatusSecondEdit = 4
	StatusDone       = 5
)

// Scene kinds.
const (
	SceneNone     = 0
	SceneAction   = 1
	SceneReaction = 2
	SceneOther    = 3
)

// DateLayout is the ISO date format used for section and character dates.
const DateLayout = "2006-01-02"

// StatusNames maps completion status to display names.
var StatusNames = map[int]string{
	StatusOutline:    "Outline",
	StatusDraft:      "Draft",
	StatusFirstEdit:  "1st Edit",
	StatusSecondEdit: "2nd Edit",
	StatusDone:       "Done",
}

// SceneNames maps scene kinds to display names.
var SceneNames = map[int]string{
	SceneNone:     "",
	SceneAction:   "Action",
	SceneReaction: "Reaction",
	SceneOther:    "Other",
}

// Duration is how long a section lasts. Empty strings mean "not set".
type Duration struct {
	Days    string
	Hours   string
	Minutes string
}

// IsZero reports whether no duration component carries a non-zero value.
func (d Duration) IsZero() bool {
	return isZeroCount(d.Days) && isZeroCount(d.Hours) && isZeroCount(d.Minutes)
}

func isZeroCount(s string) bool {
	n, err := strconv.Atoi(s)
	return err != nil || n == 0
}

// Section is a scene or other text unit inside a chapter.
type Section struct {
	Element
	Annotated
	Tagged

	scType       int
	status       int
	scene        int
	appendToPrev bool

	goal     string
	conflict string
	outcome  string

	plotlineNotes map[string]string

	date     string
	day      string
	time     string
	duration Duration

	viewpoint  string
	characters []string
	locations  []string
	items      []string

	content   string
	wordCount int

	// Back references, owned by the Novel's relationship manager.
	plotLines  []string
	plotPoints map[string]string
}

// NewSection returns a normal section in outline status.
func NewSection(title string) *Section {
	return &Section{
		Element: Element{title: title},
		status:  StatusOutline,
	}
}

// ScType returns the section type.
func (s *Section) ScType() int { return s.scType }

// SetScType sets the section type.
func (s *Section) SetScType(v int) error {
	if v < SectionNormal || v > SectionStage2 {
		return fmt.Errorf("%w: section type %d", ErrInvalidValue, v)
	}
	if s.scType == v {
		return nil
	}
	s.scType = v
	s.changed()
	return nil
}

// IsStage reports whether the section is a stage (type 2 or 3).
func (s *Section) IsStage() bool {
	return s.scType == SectionStage1 || s.scType == SectionStage2
}

// Status returns the completion status.
func (s *Section) Status() int { return s.status }

// SetStatus sets the completion status.
func (s *Section) SetStatus(v int) error {
	if v < StatusOutline || v > StatusDone {
		return fmt.Errorf("%w: status %d", ErrInvalidValue, v)
	}
	if s.status == v {
		return nil
	}
	s.status = v
	s.changed()
	return nil
}

// Scene returns the scene kind.
func (s *Section) Scene() int { return s.scene }

// SetScene sets the scene kind.
func (s *Section) SetScene(v int) error {
	if v < SceneNone || v > SceneOther {
		return fmt.Errorf("%w: scene kind %d", ErrInvalidValue, v)
	}
	if s.scene == v {
		return nil
	}
	s.scene = v
	s.changed()
	return nil
}

// AppendToPrev reports whether the section continues the previous one
// without a divider.
func (s *Section) AppendToPrev() bool { return s.appendToPrev }

// SetAppendToPrev sets the append-to-previous flag.
func (s *Section) SetAppendToPrev(v bool) { setBool(s, &s.appendToPrev, v) }

// Goal returns the goal (or reaction, or custom first field) text.
func (s *Section) Goal() string { return s.goal }

// SetGoal sets the goal text.
func (s *Section) SetGoal(v string) { setString(s, &s.goal, v) }

// Conflict returns the conflict (or dilemma, or custom second field) text.
func (s *Section) Conflict() string { return s.conflict }

// SetConflict sets the conflict text.
func (s *Section) SetConflict(v string) { setString(s, &s.conflict, v) }

// Outcome returns the outcome (or choice, or custom third field) text.
func (s *Section) Outcome() string { return s.outcome }

// SetOutcome sets the outcome text.
func (s *Section) SetOutcome(v string) { setString(s, &s.outcome, v) }

// SetNotes sets the section notes.
func (s *Section) SetNotes(v string) { setString(s, &s.notes, v) }

// SetTags sets the tag list. Empty tags are dropped.
func (s *Section) SetTags(v []string) { setList(s, &s.tags, cleanList(v)) }

// PlotlineNotes returns a copy of the per-plot-line notes.
func (s *Section) PlotlineNotes() map[string]string {
	return maps.Clone(s.plotlineNotes)
}

// SetPlotlineNote sets the note for one plot line. Empty text removes it.
func (s *Section) SetPlotlineNote(plotLineID, text string) {
	current, ok := s.plotlineNotes[plotLineID]
	if text == "" {
		if ok {
			delete(s.plotlineNotes, plotLineID)
			s.changed()
		}
		return
	}
	if ok && current == text {
		return
	}
	if s.plotlineNotes == nil {
		s.plotlineNotes = make(map[string]string)
	}
	s.plotlineNotes[plotLineID] = text
	s.changed()
}

// Date returns the ISO date, or "" if the section uses a day offset.
func (s *Section) Date() string { return s.date }

// SetDate sets an ISO date and clears the day offset.
func (s *Section) SetDate(v string) error {
	if v != "" {
		if _, err := time.Parse(DateLayout, v); err != nil {
			return fmt.Errorf("%w: date %q", ErrInvalidValue, v)
		}
	}
	if s.date == v && (v == "" || s.day == "") {
		return nil
	}
	s.date = v
	if v != "" {
		s.day = ""
	}
	s.changed()
	return nil
}

// Day returns the day offset, or "" if the section uses a date.
func (s *Section) Day() string { return s.day }

// SetDay sets an integer day offset and clears the date.
func (s *Section) SetDay(v string) error {
	if v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("%w: day %q", ErrInvalidValue, v)
		}
	}
	if s.day == v && (v == "" || s.date == "") {
		return nil
	}
	s.day = v
	if v != "" {
		s.date = ""
	}
	s.changed()
	return nil
}

// Time returns the time of day as HH:MM or HH:MM:SS.
func (s *Section) Time() string { return s.time }

// SetTime sets the time of day.
func (s *Section) SetTime(v string) error {
	if v != "" && !ValidTime(v) {
		return fmt.Errorf("%w: time %q", ErrInvalidValue, v)
	}
	setString(s, &s.time, v)
	return nil
}

// ValidTime reports whether v is HH:MM or HH:MM:SS.
func ValidTime(v string) bool {
	if _, err := time.Parse("15:04:05", v); err == nil {
		return true
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

// Duration returns how long the section lasts.
func (s *Section) Duration() Duration { return s.duration }

// SetDuration sets how long the section lasts. Components must be empty or
// non-negative integers.
func (s *Section) SetDuration(d Duration) error {
	for _, v := range []string{d.Days, d.Hours, d.Minutes} {
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			return fmt.Errorf("%w: duration component %q", ErrInvalidValue, v)
		}
	}
	if s.duration == d {
		return nil
	}
	s.duration = d
	s.changed()
	return nil
}

const secondsPerDay = 24 * 60 * 60

// DateToDay converts the section's date into a day offset relative to
// referenceDate.
func (s *Section) DateToDay(referenceDate string) error {
	if s.date == "" {
		return nil
	}
	ref, err := time.Parse(DateLayout, referenceDate)
	if err != nil {
		return fmt.Errorf("%w: reference date %q", ErrInvalidValue, referenceDate)
	}
	date, err := time.Parse(DateLayout, s.date)
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidValue, s.date)
	}
	// Both dates parse as UTC midnights, so the difference is whole days.
	days := (date.Unix() - ref.Unix()) / secondsPerDay
	return s.SetDay(strconv.FormatInt(days, 10))
}

// DayToDate converts the section's day offset into a date relative to
// referenceDate.
func (s *Section) DayToDate(referenceDate string) error {
	if s.day == "" {
		return nil
	}
	ref, err := time.Parse(DateLayout, referenceDate)
	if err != nil {
		return fmt.Errorf("%w: reference date %q", ErrInvalidValue, referenceDate)
	}
	days, err := strconv.Atoi(s.day)
	if err != nil {
		return fmt.Errorf("%w: day %q", ErrInvalidValue, s.day)
	}
	return s.SetDate(ref.AddDate(0, 0, days).Format(DateLayout))
}

// Viewpoint returns the viewpoint character ID.
func (s *Section) Viewpoint() string { return s.viewpoint }

// SetViewpoint sets the viewpoint character ID.
func (s *Section) SetViewpoint(v string) { setString(s, &s.viewpoint, v) }

// Characters returns a copy of the related character IDs.
func (s *Section) Characters() []string { return slices.Clone(s.characters) }

// SetCharacters sets the related character IDs.
func (s *Section) SetCharacters(v []string) { setList(s, &s.characters, cleanList(v)) }

// Locations returns a copy of the related location IDs.
func (s *Section) Locations() []string { return slices.Clone(s.locations) }

// SetLocations sets the related location IDs.
func (s *Section) SetLocations(v []string) { setList(s, &s.locations, cleanList(v)) }

// Items returns a copy of the related item IDs.
func (s *Section) Items() []string { return slices.Clone(s.items) }

// SetItems sets the related item IDs.
func (s *Section) SetItems(v []string) { setList(s, &s.items, cleanList(v)) }

// Content returns the section body as novx inline XML.
func (s *Section) Content() string { return s.content }

// SetContent sets the section body and recomputes the word count.
func (s *Section) SetContent(v string) {
	if s.content == v {
		return
	}
	s.content = v
	s.wordCount = CountWords(v)
	s.changed()
}

// WordCount returns the number of words in the content.
func (s *Section) WordCount() int { return s.wordCount }

// PlotLines returns the IDs of the plot lines the section belongs to.
func (s *Section) PlotLines() []string { return slices.Clone(s.plotLines) }

// PlotPoints returns the assigned plot points, mapped to their plot lines.
func (s *Section) PlotPoints() map[string]string { return maps.Clone(s.plotPoints) }

// InPlotLine reports whether the section belongs to the plot line.
func (s *Section) InPlotLine(plotLineID string) bool {
	return slices.Contains(s.plotLines, plotLineID)
}

func cleanList(v []string) []string {
	out := make([]string, 0, len(v))
	for _, item := range v {
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
