package ods

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// CellKind is the value type of a column.
type CellKind int

const (
	String CellKind = iota
	Float
	Date
	Time
)

// Column describes one spreadsheet column. Columns without Set are
// exported but ignored on import.
type Column struct {
	Header string
	Kind   CellKind
	Get    func(n *entities.Novel, id string) string
	Set    func(n *entities.Novel, id, value string) error
}

// List is a spreadsheet listing one kind of element.
type List struct {
	// Suffix is appended to the project name to form the file name.
	Suffix string
	// Title names the sheet.
	Title string
	// Tag prefixes element IDs in the ID column, e.g. "ScID".
	Tag     string
	Columns []Column
	rows    func(n *entities.Novel) []string
	// lookup reports whether an ID names an element of this list.
	lookup func(n *entities.Novel, id string) bool
}

// Writable reports whether the list can be imported back.
func (l *List) Writable() bool { return l.lookup != nil }

// IDHeader is the header of the first column of every list.
const IDHeader = "ID"

func (l *List) cellID(id string) string { return l.Tag + ":" + id }

func (l *List) parseID(cell string) (string, bool) {
	tag, id, found := strings.Cut(strings.TrimSpace(cell), ":")
	if !found || tag != l.Tag || id == "" {
		return "", false
	}
	return id, true
}

func joinTags(tags []string) string { return strings.Join(tags, ";") }

func splitTags(v string) []string {
	var tags []string
	for _, t := range strings.Split(v, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func statusByName(v string) (int, error) {
	for status, name := range entities.StatusNames {
		if strings.EqualFold(name, strings.TrimSpace(v)) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: status %q", entities.ErrInvalidValue, v)
}

// The getters below are only called with IDs from the list's own rows.

func section(n *entities.Novel, id string) *entities.Section { return n.Sections[id] }

func sectionRows(n *entities.Novel) []string {
	var ids []string
	for _, id := range n.SectionsInOrder() {
		if sc := n.Sections[id]; sc != nil && sc.ScType() == entities.SectionNormal {
			ids = append(ids, id)
		}
	}
	return ids
}

// SectionList lists the normal sections in reading order.
var SectionList = &List{
	Suffix: "_sectionlist",
	Title:  "Sections",
	Tag:    "ScID",
	rows:   sectionRows,
	lookup: func(n *entities.Novel, id string) bool { _, ok := n.Sections[id]; return ok },
	Columns: []Column{
		{
			Header: "Title",
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Title() },
			Set: func(n *entities.Novel, id, v string) error {
				section(n, id).SetTitle(v)
				return nil
			},
		},
		{
			Header: "Description",
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Desc() },
			Set: func(n *entities.Novel, id, v string) error {
				section(n, id).SetDesc(v)
				return nil
			},
		},
		{
			Header: "Viewpoint",
			Get: func(n *entities.Novel, id string) string {
				if cr := n.Characters[section(n, id).Viewpoint()]; cr != nil {
					return cr.Title()
				}
				return ""
			},
		},
		{
			Header: "Date",
			Kind:   Date,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Date() },
			Set:    func(n *entities.Novel, id, v string) error { return section(n, id).SetDate(v) },
		},
		{
			Header: "Time",
			Kind:   Time,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Time() },
			Set:    func(n *entities.Novel, id, v string) error { return section(n, id).SetTime(v) },
		},
		{
			Header: "Day",
			Kind:   Float,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Day() },
			Set: func(n *entities.Novel, id, v string) error {
				if v == "" && section(n, id).Date() != "" {
					return nil
				}
				return section(n, id).SetDay(v)
			},
		},
		{
			Header: "Days",
			Kind:   Float,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Duration().Days },
			Set: func(n *entities.Novel, id, v string) error {
				d := section(n, id).Duration()
				d.Days = v
				return section(n, id).SetDuration(d)
			},
		},
		{
			Header: "Hours",
			Kind:   Float,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Duration().Hours },
			Set: func(n *entities.Novel, id, v string) error {
				d := section(n, id).Duration()
				d.Hours = v
				return section(n, id).SetDuration(d)
			},
		},
		{
			Header: "Minutes",
			Kind:   Float,
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Duration().Minutes },
			Set: func(n *entities.Novel, id, v string) error {
				d := section(n, id).Duration()
				d.Minutes = v
				return section(n, id).SetDuration(d)
			},
		},
		{
			Header: "Words",
			Kind:   Float,
			Get:    func(n *entities.Novel, id string) string { return strconv.Itoa(section(n, id).WordCount()) },
		},
		{
			Header: "Status",
			Get:    func(n *entities.Novel, id string) string { return entities.StatusNames[section(n, id).Status()] },
			Set: func(n *entities.Novel, id, v string) error {
				status, err := statusByName(v)
				if err != nil {
					return err
				}
				return section(n, id).SetStatus(status)
			},
		},
		{
			Header: "Tags",
			Get:    func(n *entities.Novel, id string) string { return joinTags(section(n, id).Tags()) },
			Set: func(n *entities.Novel, id, v string) error {
				section(n, id).SetTags(splitTags(v))
				return nil
			},
		},
		{
			Header: "Notes",
			Get:    func(n *entities.Novel, id string) string { return section(n, id).Notes() },
			Set: func(n *entities.Novel, id, v string) error {
				section(n, id).SetNotes(v)
				return nil
			},
		},
		{
			Header: "Plot lines",
			Get: func(n *entities.Novel, id string) string {
				var names []string
				for _, plID := range section(n, id).PlotLines() {
					if pl := n.PlotLines[plID]; pl != nil {
						names = append(names, pl.ShortName())
					}
				}
				return joinTags(names)
			},
		},
	},
}

// worldColumns are shared by the character, location and item lists.
func worldColumns(get func(n *entities.Novel, id string) *entities.WorldElement) []Column {
	return []Column{
		{
			Header: "Name",
			Get:    func(n *entities.Novel, id string) string { return get(n, id).Title() },
			Set: func(n *entities.Novel, id, v string) error {
				get(n, id).SetTitle(v)
				return nil
			},
		},
		{
			Header: "Aka",
			Get:    func(n *entities.Novel, id string) string { return get(n, id).Aka() },
			Set: func(n *entities.Novel, id, v string) error {
				get(n, id).SetAka(v)
				return nil
			},
		},
		{
			Header: "Description",
			Get:    func(n *entities.Novel, id string) string { return get(n, id).Desc() },
			Set: func(n *entities.Novel, id, v string) error {
				get(n, id).SetDesc(v)
				return nil
			},
		},
		{
			Header: "Tags",
			Get:    func(n *entities.Novel, id string) string { return joinTags(get(n, id).Tags()) },
			Set: func(n *entities.Novel, id, v string) error {
				get(n, id).SetTags(splitTags(v))
				return nil
			},
		},
		{
			Header: "Notes",
			Get:    func(n *entities.Novel, id string) string { return get(n, id).Notes() },
			Set: func(n *entities.Novel, id, v string) error {
				get(n, id).SetNotes(v)
				return nil
			},
		},
	}
}

func character(n *entities.Novel, id string) *entities.Character { return n.Characters[id] }

// CharacterList lists the characters.
var CharacterList = &List{
	Suffix: "_charlist",
	Title:  "Characters",
	Tag:    "CrID",
	rows:   func(n *entities.Novel) []string { return n.Tree.GetChildren(entities.CharacterRoot) },
	lookup: func(n *entities.Novel, id string) bool { _, ok := n.Characters[id]; return ok },
	Columns: append(worldColumns(func(n *entities.Novel, id string) *entities.WorldElement {
		return &character(n, id).WorldElement
	}),
		Column{
			Header: "Full name",
			Get:    func(n *entities.Novel, id string) string { return character(n, id).FullName() },
			Set: func(n *entities.Novel, id, v string) error {
				character(n, id).SetFullName(v)
				return nil
			},
		},
		Column{
			Header: "Bio",
			Get:    func(n *entities.Novel, id string) string { return character(n, id).Bio() },
			Set: func(n *entities.Novel, id, v string) error {
				character(n, id).SetBio(v)
				return nil
			},
		},
		Column{
			Header: "Goals",
			Get:    func(n *entities.Novel, id string) string { return character(n, id).Goals() },
			Set: func(n *entities.Novel, id, v string) error {
				character(n, id).SetGoals(v)
				return nil
			},
		},
		Column{
			Header: "Birth date",
			Kind:   Date,
			Get:    func(n *entities.Novel, id string) string { return character(n, id).BirthDate() },
			Set:    func(n *entities.Novel, id, v string) error { return character(n, id).SetBirthDate(v) },
		},
		Column{
			Header: "Death date",
			Kind:   Date,
			Get:    func(n *entities.Novel, id string) string { return character(n, id).DeathDate() },
			Set:    func(n *entities.Novel, id, v string) error { return character(n, id).SetDeathDate(v) },
		},
	),
}

// LocationList lists the locations.
var LocationList = &List{
	Suffix: "_loclist",
	Title:  "Locations",
	Tag:    "LcID",
	rows:   func(n *entities.Novel) []string { return n.Tree.GetChildren(entities.LocationRoot) },
	lookup: func(n *entities.Novel, id string) bool { _, ok := n.Locations[id]; return ok },
	Columns: worldColumns(func(n *entities.Novel, id string) *entities.WorldElement {
		return &n.Locations[id].WorldElement
	}),
}

// ItemList lists the items.
var ItemList = &List{
	Suffix: "_itemlist",
	Title:  "Items",
	Tag:    "ItID",
	rows:   func(n *entities.Novel) []string { return n.Tree.GetChildren(entities.ItemRoot) },
	lookup: func(n *entities.Novel, id string) bool { _, ok := n.Items[id]; return ok },
	Columns: worldColumns(func(n *entities.Novel, id string) *entities.WorldElement {
		return &n.Items[id].WorldElement
	}),
}

// plotRows lists every plot line followed by its plot points.
func plotRows(n *entities.Novel) []string {
	var ids []string
	for _, plID := range n.Tree.GetChildren(entities.PlotLineRoot) {
		ids = append(ids, plID)
		ids = append(ids, n.Tree.GetChildren(plID)...)
	}
	return ids
}

func plotElement(n *entities.Novel, id string) *entities.Element {
	if pl := n.PlotLines[id]; pl != nil {
		return &pl.Element
	}
	return &n.PlotPoints[id].Element
}

func sectionTitles(n *entities.Novel, ids ...string) string {
	var titles []string
	for _, id := range ids {
		if sc := n.Sections[id]; sc != nil {
			titles = append(titles, sc.Title())
		}
	}
	return joinTags(titles)
}

// PlotList lists plot lines and plot points. It is export only.
var PlotList = &List{
	Suffix: "_plotlist",
	Title:  "Plot lines",
	Tag:    "PlID",
	rows:   plotRows,
	Columns: []Column{
		{
			Header: "Plot line",
			Get: func(n *entities.Novel, id string) string {
				if pl := n.PlotLines[id]; pl != nil {
					return pl.Title()
				}
				return ""
			},
		},
		{
			Header: "Short name",
			Get: func(n *entities.Novel, id string) string {
				if pl := n.PlotLines[id]; pl != nil {
					return pl.ShortName()
				}
				return ""
			},
		},
		{
			Header: "Plot point",
			Get: func(n *entities.Novel, id string) string {
				if pp := n.PlotPoints[id]; pp != nil {
					return pp.Title()
				}
				return ""
			},
		},
		{
			Header: "Description",
			Get:    func(n *entities.Novel, id string) string { return plotElement(n, id).Desc() },
		},
		{
			Header: "Sections",
			Get: func(n *entities.Novel, id string) string {
				if pl := n.PlotLines[id]; pl != nil {
					return sectionTitles(n, pl.Sections()...)
				}
				return sectionTitles(n, n.PlotPoints[id].SectionAssoc())
			},
		},
	},
}

// Lists holds every list in file suffix order.
var Lists = []*List{SectionList, CharacterList, LocationList, ItemList, PlotList}
