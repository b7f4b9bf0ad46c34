package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

// ListSeparator separates names in typed-in reference lists.
const ListSeparator = ";"

// Resolution is the outcome of resolving a typed-in list of names.
type Resolution struct {
	IDs      []string
	Rejected []string
}

// Message names the rejected tokens, or returns "" if there are none.
func (r Resolution) Message() string {
	if len(r.Rejected) == 0 {
		return ""
	}
	quoted := make([]string, len(r.Rejected))
	for i, t := range r.Rejected {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "Wrong name: " + strings.Join(quoted, ", ")
}

// ResolvePlotLines maps short names (or titles) of plot lines to IDs in
// book order.
func ResolvePlotLines(n *entities.Novel, input string) Resolution {
	return resolve(input, n.Tree.GetChildren(entities.PlotLineRoot), func(id, token string) bool {
		pl := n.PlotLines[id]
		return pl != nil && (pl.ShortName() == token || pl.Title() == token)
	})
}

// ResolveCharacters maps character names (or full names) to IDs.
func ResolveCharacters(n *entities.Novel, input string) Resolution {
	return resolve(input, n.Tree.GetChildren(entities.CharacterRoot), func(id, token string) bool {
		cr := n.Characters[id]
		return cr != nil && (cr.Title() == token || cr.FullName() == token)
	})
}

func resolve(input string, candidates []string, match func(id, token string) bool) Resolution {
	var r Resolution
	for _, token := range strings.Split(input, ListSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		i := slices.IndexFunc(candidates, func(id string) bool { return match(id, token) })
		if i < 0 {
			if !slices.Contains(r.Rejected, token) {
				r.Rejected = append(r.Rejected, token)
			}
			continue
		}
		if !slices.Contains(r.IDs, candidates[i]) {
			r.IDs = append(r.IDs, candidates[i])
		}
	}
	return r
}
