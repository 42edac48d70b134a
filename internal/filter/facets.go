package filter

import (
	"sort"
	"strings"

	"marches-engine/internal/domain"
)

// Facets lists the distinct values the two select controls offer.
type Facets struct {
	Departments []string `json:"departments"`
	Sources     []string `json:"sources"`
}

// CollectFacets gathers the distinct departments and sources. Sources are
// deduplicated case-insensitively (the filter matches them that way too);
// the first spelling seen in the collection is the one offered.
func CollectFacets(notices []domain.Notice) Facets {
	deps := map[string]struct{}{}
	srcs := map[string]string{} // lowercase key -> first spelling seen
	for _, n := range notices {
		if n.Department != "" {
			deps[n.Department] = struct{}{}
		}
		if n.Source != "" {
			key := strings.ToLower(n.Source)
			if _, ok := srcs[key]; !ok {
				srcs[key] = n.Source
			}
		}
	}
	f := Facets{
		Departments: make([]string, 0, len(deps)),
		Sources:     make([]string, 0, len(srcs)),
	}
	for d := range deps {
		f.Departments = append(f.Departments, d)
	}
	for _, s := range srcs {
		f.Sources = append(f.Sources, s)
	}
	sort.Strings(f.Departments)
	sort.Strings(f.Sources)
	return f
}
