package entities

import "slices"

// PlotLine is a named narrative thread. Its section list is maintained by the
// Novel's relationship manager.
type PlotLine struct {
	Element
	Annotated
	shortName string
	sections  []string
}

// NewPlotLine returns a plot line with the given title and short name.
func NewPlotLine(title, shortName string) *PlotLine {
	return &PlotLine{Element: Element{title: title}, shortName: shortName}
}

// ShortName returns the abbreviation used in section references.
func (p *PlotLine) ShortName() string { return p.shortName }

// SetShortName sets the abbreviation.
func (p *PlotLine) SetShortName(v string) { setString(p, &p.shortName, v) }

// SetNotes sets the notes text.
func (p *PlotLine) SetNotes(v string) { setString(p, &p.notes, v) }

// Sections returns the IDs of the sections belonging to the plot line.
func (p *PlotLine) Sections() []string { return slices.Clone(p.sections) }

// HasSection reports whether the section belongs to the plot line.
func (p *PlotLine) HasSection(sectionID string) bool {
	return slices.Contains(p.sections, sectionID)
}

// PlotPoint is a turning point of a plot line, optionally tied to a section.
type PlotPoint struct {
	Element
	Annotated
	plotLine     string
	sectionAssoc string
}

// NewPlotPoint returns a plot point with the given title.
func NewPlotPoint(title string) *PlotPoint {
	return &PlotPoint{Element: Element{title: title}}
}

// SetNotes sets the notes text.
func (p *PlotPoint) SetNotes(v string) { setString(p, &p.notes, v) }

// PlotLine returns the ID of the owning plot line.
func (p *PlotPoint) PlotLine() string { return p.plotLine }

// SectionAssoc returns the ID of the associated section, or "".
func (p *PlotPoint) SectionAssoc() string { return p.sectionAssoc }
