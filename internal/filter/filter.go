// Package filter computes the visible, ordered subset of the notice
// collection for a set of filter criteria. It is pure: inputs are never
// mutated and the result is always a fresh slice.
package filter

import (
	"sort"
	"strings"

	"marches-engine/internal/dates"
	"marches-engine/internal/domain"
)

// SeenState selects notices by whether the user already opened them.
type SeenState string

const (
	SeenAny    SeenState = "any"
	SeenOnly   SeenState = "seen"
	UnseenOnly SeenState = "unseen"
)

// ValidSeenState accepts the three states plus "" (treated as any).
func ValidSeenState(s SeenState) bool {
	switch s {
	case "", SeenAny, SeenOnly, UnseenOnly:
		return true
	}
	return false
}

// Criteria is one snapshot of the four filter controls. An empty string
// means no constraint on that axis.
type Criteria struct {
	Department string    `json:"department"`
	Source     string    `json:"source"`
	Search     string    `json:"search"`
	Seen       SeenState `json:"seen"`
}

// SeenIndex answers whether a notice identity has been opened.
type SeenIndex interface {
	Has(id string) bool
}

// Apply narrows notices to those matching c and sorts them by publication
// date, newest first. Notices without a parsable publication date sort
// after every dated notice; ties keep encounter order (stable sort).
func Apply(notices []domain.Notice, c Criteria, seen SeenIndex) []domain.Notice {
	search := strings.ToLower(c.Search)

	out := make([]domain.Notice, 0, len(notices))
	for _, n := range notices {
		if c.Department != "" && c.Department != n.Department {
			continue
		}
		if c.Source != "" && !strings.EqualFold(c.Source, n.Source) {
			continue
		}
		if search != "" {
			blob := strings.ToLower(n.Title + " " + n.Description + " " + n.BuyerName + " " + n.Reference)
			if !strings.Contains(blob, search) {
				continue
			}
		}
		if !matchesSeen(n, c.Seen, seen) {
			continue
		}
		out = append(out, n)
	}

	sortByPublication(out)
	return out
}

func matchesSeen(n domain.Notice, want SeenState, seen SeenIndex) bool {
	if want == "" || want == SeenAny {
		return true
	}
	opened := false
	if seen != nil {
		if id := n.Identity(); id != "" {
			opened = seen.Has(id)
		}
	}
	if want == SeenOnly {
		return opened
	}
	return !opened
}

func sortByPublication(notices []domain.Notice) {
	sort.SliceStable(notices, func(i, j int) bool {
		a, aok := dates.Parse(notices[i].PublicationDate)
		b, bok := dates.Parse(notices[j].PublicationDate)
		if aok && bok {
			return a.After(b)
		}
		// dated before undated; two undated keep encounter order
		return aok && !bok
	})
}
