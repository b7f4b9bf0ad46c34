package entities

import (
	"fmt"
	"slices"
)

// The methods in this file are the only entry points that mutate the
// plot-line memberships and plot-point assignments. They keep both sides of
// each link in step:
//
//	plotLine.sections contains s  <=>  section.plotLines contains p
//	plotPoint.sectionAssoc == s   <=>  section.plotPoints[pp] == plotPoint.plotLine

// LinkPlotLine adds the section to the plot line.
func (n *Novel) LinkPlotLine(sectionID, plotLineID string) error {
	s, ok := n.Sections[sectionID]
	if !ok {
		return fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	}
	p, ok := n.PlotLines[plotLineID]
	if !ok {
		return fmt.Errorf("%w: plot line %q", ErrNotFound, plotLineID)
	}
	changed := false
	if !slices.Contains(p.sections, sectionID) {
		p.sections = append(p.sections, sectionID)
		changed = true
	}
	if !slices.Contains(s.plotLines, plotLineID) {
		s.plotLines = append(s.plotLines, plotLineID)
		changed = true
	}
	if changed {
		p.changed()
		s.changed()
	}
	return nil
}

// UnlinkPlotLine removes the section from the plot line, and clears every
// assignment of the plot line's plot points to the section.
func (n *Novel) UnlinkPlotLine(sectionID, plotLineID string) {
	s := n.Sections[sectionID]
	p := n.PlotLines[plotLineID]
	if p != nil && slices.Contains(p.sections, sectionID) {
		p.sections = slices.DeleteFunc(p.sections, func(id string) bool { return id == sectionID })
		p.changed()
	}
	if s == nil {
		return
	}
	if slices.Contains(s.plotLines, plotLineID) {
		s.plotLines = slices.DeleteFunc(s.plotLines, func(id string) bool { return id == plotLineID })
		s.changed()
	}
	for ppID, plID := range s.plotPoints {
		if plID != plotLineID {
			continue
		}
		delete(s.plotPoints, ppID)
		if pp := n.PlotPoints[ppID]; pp != nil && pp.sectionAssoc == sectionID {
			pp.sectionAssoc = ""
			pp.changed()
		}
		s.changed()
	}
}

// SetSectionPlotLines makes the section belong to exactly the given plot
// lines, linking and unlinking as needed.
func (n *Novel) SetSectionPlotLines(sectionID string, plotLineIDs []string) error {
	s, ok := n.Sections[sectionID]
	if !ok {
		return fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	}
	for _, plID := range plotLineIDs {
		if _, ok := n.PlotLines[plID]; !ok {
			return fmt.Errorf("%w: plot line %q", ErrNotFound, plID)
		}
	}
	for _, plID := range slices.Clone(s.plotLines) {
		if !slices.Contains(plotLineIDs, plID) {
			n.UnlinkPlotLine(sectionID, plID)
		}
	}
	for _, plID := range plotLineIDs {
		if err := n.LinkPlotLine(sectionID, plID); err != nil {
			return err
		}
	}
	return nil
}

// AssignPlotPoint associates a plot point with a section. The section joins
// the plot point's plot line if it is not yet a member. A previous assignment
// of the plot point is released.
func (n *Novel) AssignPlotPoint(plotPointID, sectionID string) error {
	pp, ok := n.PlotPoints[plotPointID]
	if !ok {
		return fmt.Errorf("%w: plot point %q", ErrNotFound, plotPointID)
	}
	s, ok := n.Sections[sectionID]
	if !ok {
		return fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	}
	if pp.sectionAssoc == sectionID {
		return nil
	}
	if err := n.LinkPlotLine(sectionID, pp.plotLine); err != nil {
		return err
	}
	n.UnassignPlotPoint(plotPointID)
	pp.sectionAssoc = sectionID
	if s.plotPoints == nil {
		s.plotPoints = make(map[string]string)
	}
	s.plotPoints[plotPointID] = pp.plotLine
	pp.changed()
	s.changed()
	return nil
}

// UnassignPlotPoint releases the plot point's section association.
func (n *Novel) UnassignPlotPoint(plotPointID string) {
	pp, ok := n.PlotPoints[plotPointID]
	if !ok || pp.sectionAssoc == "" {
		return
	}
	if s := n.Sections[pp.sectionAssoc]; s != nil {
		delete(s.plotPoints, plotPointID)
		s.changed()
	}
	pp.sectionAssoc = ""
	pp.changed()
}
