package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marches-engine/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuild_FullNotice(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)
	n := domain.Notice{
		Source:          "boamp",
		SourceNoticeID:  "24-118233",
		Reference:       "24-118233",
		Title:           "Mission de géomètre-expert",
		Description:     "<p>Bornage &amp; plans topographiques</p>",
		BuyerName:       "Ville de Nanterre",
		Department:      "92",
		City:            "Nanterre",
		PostalCode:      "92000",
		URL:             "https://www.boamp.fr/avis/detail/24-118233",
		PublicationDate: "2024-11-04",
		DeadlineDate:    "2024-12-02",
		DeadlineTime:    "12h00",
		EstimatedBudget: floatPtr(85000),
	}

	c := Build(n, true, now)
	require.Equal(t, "24-118233", c.ID)
	require.Equal(t, "Bornage & plans topographiques", c.Excerpt)
	require.Equal(t, "Nanterre (92000)", c.City)
	require.Equal(t, "04/11/2024", c.PublicationDisplay)
	require.Equal(t, "02/12/2024", c.DeadlineDisplay)
	require.Equal(t, "12:00", c.DeadlineTime)
	require.False(t, c.DeadlinePassed)
	require.True(t, c.Recent)
	require.Equal(t, "85 000 €", c.BudgetDisplay)
	require.True(t, c.Seen)
}

func TestBuild_EmptyNoticeDegradesToNeutralCard(t *testing.T) {
	t.Parallel()

	c := Build(domain.Notice{}, false, time.Now())
	require.Empty(t, c.ID)
	require.Empty(t, c.Excerpt)
	require.Empty(t, c.PublicationDisplay)
	require.Empty(t, c.DeadlineDisplay)
	require.Empty(t, c.BudgetDisplay)
	require.False(t, c.DeadlinePassed)
	require.False(t, c.Recent)
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	require.Empty(t, Excerpt(""))
	require.Equal(t, "texte brut", Excerpt("  texte   brut "))
	require.Equal(t, "Bornage contradictoire", Excerpt("<div><b>Bornage</b> contradictoire</div>"))

	long := strings.Repeat("topographie ", 60)
	got := Excerpt(long)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), excerptRunes+1)
}

func TestBudgetDisplay(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", BudgetDisplay(domain.Notice{}))
	require.Equal(t, "selon devis", BudgetDisplay(domain.Notice{EstimatedBudgetRaw: "selon devis"}))
	require.Equal(t, "950 €", BudgetDisplay(domain.Notice{EstimatedBudget: floatPtr(950)}))
	require.Equal(t, "85 000 €", BudgetDisplay(domain.Notice{EstimatedBudget: floatPtr(85000)}))
	require.Equal(t, "1 234 567 €", BudgetDisplay(domain.Notice{EstimatedBudget: floatPtr(1234567.4)}))
	// numeric value wins over the raw fallback
	require.Equal(t, "950 €", BudgetDisplay(domain.Notice{EstimatedBudget: floatPtr(950), EstimatedBudgetRaw: "environ 1000"}))
}

func TestBuildAll_MarksSeenFromIndex(t *testing.T) {
	t.Parallel()

	notices := []domain.Notice{
		{SourceNoticeID: "vu"},
		{SourceNoticeID: "pas-vu"},
	}
	cards := BuildAll(notices, seenSet{"vu": {}})
	require.Len(t, cards, 2)
	require.True(t, cards[0].Seen)
	require.False(t, cards[1].Seen)
}

type seenSet map[string]struct{}

func (s seenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
