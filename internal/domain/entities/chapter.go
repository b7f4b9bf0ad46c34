package entities

import "fmt"

// Chapter types.
const (
	ChapterNormal = 0
	ChapterUnused = 1
)

// Chapter levels.
const (
	LevelPart    = 1
	LevelChapter = 2
)

// Chapter is a part or chapter of the book.
type Chapter struct {
	Element
	Annotated
	chType      int
	level       int
	isTrash     bool
	noNumber    bool
	hasEpigraph bool
}

// NewChapter returns a normal chapter at chapter level.
func NewChapter(title string) *Chapter {
	return &Chapter{
		Element: Element{title: title},
		level:   LevelChapter,
	}
}

// ChType returns the chapter type.
func (c *Chapter) ChType() int { return c.chType }

// SetChType sets the chapter type (ChapterNormal or ChapterUnused).
func (c *Chapter) SetChType(v int) error {
	if v != ChapterNormal && v != ChapterUnused {
		return fmt.Errorf("%w: chapter type %d", ErrInvalidValue, v)
	}
	if c.chType == v {
		return nil
	}
	c.chType = v
	c.changed()
	return nil
}

// Level returns the chapter level.
func (c *Chapter) Level() int { return c.level }

// SetLevel sets the chapter level (LevelPart or LevelChapter).
func (c *Chapter) SetLevel(v int) error {
	if v != LevelPart && v != LevelChapter {
		return fmt.Errorf("%w: chapter level %d", ErrInvalidValue, v)
	}
	if c.level == v {
		return nil
	}
	c.level = v
	c.changed()
	return nil
}

// IsPart reports whether the chapter is a part heading.
func (c *Chapter) IsPart() bool { return c.level == LevelPart }

// IsTrash reports whether the chapter is the trash bin.
func (c *Chapter) IsTrash() bool { return c.isTrash }

// SetIsTrash marks the chapter as the trash bin.
func (c *Chapter) SetIsTrash(v bool) { setBool(c, &c.isTrash, v) }

// NoNumber reports whether the chapter is excluded from auto-numbering.
func (c *Chapter) NoNumber() bool { return c.noNumber }

// SetNoNumber excludes the chapter from auto-numbering.
func (c *Chapter) SetNoNumber(v bool) { setBool(c, &c.noNumber, v) }

// HasEpigraph reports whether the chapter's first section is an epigraph.
func (c *Chapter) HasEpigraph() bool { return c.hasEpigraph }

// SetHasEpigraph flags the chapter's first section as an epigraph.
func (c *Chapter) SetHasEpigraph(v bool) { setBool(c, &c.hasEpigraph, v) }

// SetNotes sets the chapter notes.
func (c *Chapter) SetNotes(v string) { setString(c, &c.notes, v) }
