package services

import (
	"fmt"
	"slices"
	"sort"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// Issue kinds.
const (
	IssueTree      = "tree"
	IssueReference = "reference"
	IssuePlot      = "plot"
	IssueDate      = "date"
)

// Issue is one inconsistency found in a novel.
type Issue struct {
	Kind    string
	ID      string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Message)
}

// CheckIntegrity reports tree entries without elements, elements missing
// from the tree, dangling references and broken plot links. Issues are
// sorted by kind and ID.
func CheckIntegrity(n *entities.Novel) []Issue {
	var issues []Issue
	add := func(kind, id, format string, args ...any) {
		issues = append(issues, Issue{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)})
	}

	checkRoot(n, entities.CharacterRoot, keys(n.Characters), add)
	checkRoot(n, entities.LocationRoot, keys(n.Locations), add)
	checkRoot(n, entities.ItemRoot, keys(n.Items), add)
	checkRoot(n, entities.ProjectNoteRoot, keys(n.ProjectNotes), add)
	checkRoot(n, entities.ChapterRoot, keys(n.Chapters), add)
	checkRoot(n, entities.PlotLineRoot, keys(n.PlotLines), add)

	placed := make(map[string]bool)
	for _, chID := range n.Tree.GetChildren(entities.ChapterRoot) {
		for _, scID := range n.Tree.GetChildren(chID) {
			placed[scID] = true
			if n.Sections[scID] == nil {
				add(IssueTree, scID, "listed in chapter %s but not defined", chID)
			}
		}
	}
	for id := range n.Sections {
		if !placed[id] {
			add(IssueTree, id, "section is not part of any chapter")
		}
	}

	placed = make(map[string]bool)
	for _, plID := range n.Tree.GetChildren(entities.PlotLineRoot) {
		for _, ppID := range n.Tree.GetChildren(plID) {
			placed[ppID] = true
			pp := n.PlotPoints[ppID]
			if pp == nil {
				add(IssueTree, ppID, "listed in plot line %s but not defined", plID)
				continue
			}
			if pp.PlotLine() != plID {
				add(IssuePlot, ppID, "listed in plot line %s but belongs to %s", plID, pp.PlotLine())
			}
		}
	}
	for id := range n.PlotPoints {
		if !placed[id] {
			add(IssueTree, id, "plot point is not part of any plot line")
		}
	}

	for id, sc := range n.Sections {
		if vp := sc.Viewpoint(); vp != "" && n.Characters[vp] == nil {
			add(IssueReference, id, "viewpoint %s not found", vp)
		}
		for _, crID := range sc.Characters() {
			if n.Characters[crID] == nil {
				add(IssueReference, id, "character %s not found", crID)
			}
		}
		for _, lcID := range sc.Locations() {
			if n.Locations[lcID] == nil {
				add(IssueReference, id, "location %s not found", lcID)
			}
		}
		for _, itID := range sc.Items() {
			if n.Items[itID] == nil {
				add(IssueReference, id, "item %s not found", itID)
			}
		}
		for _, plID := range sc.PlotLines() {
			pl := n.PlotLines[plID]
			switch {
			case pl == nil:
				add(IssuePlot, id, "plot line %s not found", plID)
			case !pl.HasSection(id):
				add(IssuePlot, id, "plot line %s does not list the section", plID)
			}
		}
		for ppID, plID := range sc.PlotPoints() {
			pp := n.PlotPoints[ppID]
			if pp == nil || pp.SectionAssoc() != id || pp.PlotLine() != plID {
				add(IssuePlot, id, "plot point %s is not assigned to the section", ppID)
			}
		}
	}

	for id, pl := range n.PlotLines {
		for _, scID := range pl.Sections() {
			if sc := n.Sections[scID]; sc == nil || !sc.InPlotLine(id) {
				add(IssuePlot, id, "section %s does not belong to the plot line", scID)
			}
		}
	}
	for id, pp := range n.PlotPoints {
		scID := pp.SectionAssoc()
		if scID == "" {
			continue
		}
		sc := n.Sections[scID]
		if sc == nil {
			add(IssuePlot, id, "section %s not found", scID)
			continue
		}
		if _, ok := sc.PlotPoints()[id]; !ok {
			add(IssuePlot, id, "section %s does not reference the plot point", scID)
		}
	}

	for id, cr := range n.Characters {
		birth, death := cr.BirthDate(), cr.DeathDate()
		if birth != "" && death != "" && death < birth {
			add(IssueDate, id, "death date %s precedes birth date %s", death, birth)
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		if issues[i].ID != issues[j].ID {
			return issues[i].ID < issues[j].ID
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

// checkRoot compares the children of a tree root with the element map.
func checkRoot(n *entities.Novel, root string, ids []string, add func(kind, id, format string, args ...any)) {
	children := n.Tree.GetChildren(root)
	for _, id := range children {
		if !slices.Contains(ids, id) {
			add(IssueTree, id, "listed under %s but not defined", root)
		}
	}
	for _, id := range ids {
		if !slices.Contains(children, id) {
			add(IssueTree, id, "not listed under %s", root)
		}
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
