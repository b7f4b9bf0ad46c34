package entities

import (
	"fmt"
	"time"
)

// WorldElement is a location or item.
type WorldElement struct {
	Element
	Annotated
	Tagged
	aka string
}

// Aka returns the alternative name.
func (w *WorldElement) Aka() string { return w.aka }

// SetAka sets the alternative name.
func (w *WorldElement) SetAka(v string) { setString(w, &w.aka, v) }

// SetNotes sets the notes text.
func (w *WorldElement) SetNotes(v string) { setString(w, &w.notes, v) }

// SetTags sets the tag list. Empty tags are dropped.
func (w *WorldElement) SetTags(v []string) { setList(w, &w.tags, cleanList(v)) }

// Location is a place in the story world.
type Location struct {
	WorldElement
}

// NewLocation returns a location with the given title.
func NewLocation(title string) *Location {
	return &Location{WorldElement{Element: Element{title: title}}}
}

// Item is an object in the story world.
type Item struct {
	WorldElement
}

// NewItem returns an item with the given title.
func NewItem(title string) *Item {
	return &Item{WorldElement{Element: Element{title: title}}}
}

// Character is a person in the story.
type Character struct {
	WorldElement
	fullName  string
	bio       string
	goals     string
	major     bool
	birthDate string
	deathDate string
}

// NewCharacter returns a minor character with the given title.
func NewCharacter(title string) *Character {
	return &Character{WorldElement: WorldElement{Element: Element{title: title}}}
}

// FullName returns the character's full name.
func (c *Character) FullName() string { return c.fullName }

// SetFullName sets the character's full name.
func (c *Character) SetFullName(v string) { setString(c, &c.fullName, v) }

// Bio returns the character's biography.
func (c *Character) Bio() string { return c.bio }

// SetBio sets the character's biography.
func (c *Character) SetBio(v string) { setString(c, &c.bio, v) }

// Goals returns the character's goals.
func (c *Character) Goals() string { return c.goals }

// SetGoals sets the character's goals.
func (c *Character) SetGoals(v string) { setString(c, &c.goals, v) }

// IsMajor reports whether the character is a major character.
func (c *Character) IsMajor() bool { return c.major }

// SetMajor sets the major character flag.
func (c *Character) SetMajor(v bool) { setBool(c, &c.major, v) }

// BirthDate returns the ISO birth date.
func (c *Character) BirthDate() string { return c.birthDate }

// SetBirthDate sets the ISO birth date.
func (c *Character) SetBirthDate(v string) error {
	if err := validDate(v); err != nil {
		return err
	}
	setString(c, &c.birthDate, v)
	return nil
}

// DeathDate returns the ISO death date.
func (c *Character) DeathDate() string { return c.deathDate }

// SetDeathDate sets the ISO death date.
func (c *Character) SetDeathDate(v string) error {
	if err := validDate(v); err != nil {
		return err
	}
	setString(c, &c.deathDate, v)
	return nil
}

func validDate(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, v); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidValue, v)
	}
	return nil
}

// ProjectNote is a free note attached to the project.
type ProjectNote struct {
	Element
}

// NewProjectNote returns a project note with the given title.
func NewProjectNote(title string) *ProjectNote {
	return &ProjectNote{Element{title: title}}
}
