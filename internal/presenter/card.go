// Package presenter maps already-filtered, already-sorted notices to the
// card view-models the UI shell renders. Pure data out; the shell owns the
// DOM.
package presenter

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marches-engine/internal/dates"
	"marches-engine/internal/domain"
	"marches-engine/internal/filter"
)

const excerptRunes = 280

// Card is one rendered notice. Every display field degrades to "" when
// the underlying data is absent.
type Card struct {
	ID                 string `json:"id"`
	Source             string `json:"source"`
	Reference          string `json:"reference"`
	Title              string `json:"title"`
	Excerpt            string `json:"excerpt"`
	BuyerName          string `json:"buyer_name"`
	Department         string `json:"department"`
	City               string `json:"city"`
	URL                string `json:"url"`
	PublicationDisplay string `json:"publication_display"`
	DeadlineDisplay    string `json:"deadline_display"`
	DeadlineTime       string `json:"deadline_time"`
	DeadlinePassed     bool   `json:"deadline_passed"`
	Recent             bool   `json:"recent"`
	BudgetDisplay      string `json:"budget_display"`
	Seen               bool   `json:"seen"`
}

func Build(n domain.Notice, seen bool, now time.Time) Card {
	return Card{
		ID:                 n.Identity(),
		Source:             n.Source,
		Reference:          n.Reference,
		Title:              n.Title,
		Excerpt:            Excerpt(n.Description),
		BuyerName:          n.BuyerName,
		Department:         n.Department,
		City:               cityDisplay(n),
		URL:                n.URL,
		PublicationDisplay: dates.FormatDisplay(n.PublicationDate),
		DeadlineDisplay:    dates.FormatDisplay(n.DeadlineDate),
		DeadlineTime:       dates.NormalizeTimeOfDay(n.DeadlineTime),
		DeadlinePassed:     dates.DeadlinePassedAt(n.DeadlineDate, n.DeadlineTime, now),
		Recent:             dates.RecentAt(n.PublicationDate, now),
		BudgetDisplay:      BudgetDisplay(n),
		Seen:               seen,
	}
}

func BuildAll(notices []domain.Notice, seen filter.SeenIndex) []Card {
	now := time.Now()
	cards := make([]Card, 0, len(notices))
	for _, n := range notices {
		opened := false
		if seen != nil {
			if id := n.Identity(); id != "" {
				opened = seen.Has(id)
			}
		}
		cards = append(cards, Build(n, opened, now))
	}
	return cards
}

func cityDisplay(n domain.Notice) string {
	switch {
	case n.City == "":
		return n.PostalCode
	case n.PostalCode == "":
		return n.City
	default:
		return n.City + " (" + n.PostalCode + ")"
	}
}

// Excerpt strips markup from a notice description (BOAMP bodies carry
// HTML fragments) and truncates for the card body.
func Excerpt(desc string) string {
	if desc == "" {
		return ""
	}
	text := desc
	if strings.ContainsRune(desc, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc)); err == nil {
			text = doc.Text()
		}
	}
	text = cleanText(text)

	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	return strings.TrimRight(string(runes[:excerptRunes]), " ") + "…"
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// BudgetDisplay renders the numeric estimate as a French amount
// ("1 234 567 €") and falls back to the free-text value when no number
// was extracted upstream.
func BudgetDisplay(n domain.Notice) string {
	if n.EstimatedBudget == nil {
		return n.EstimatedBudgetRaw
	}
	return groupThousands(*n.EstimatedBudget) + " €"
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
