package domain

// Notice is one procurement notice as published by the veille pipeline
// (normalized_geometre_latest.json). Every field is optional on the wire;
// missing strings decode to "" and a missing budget stays nil.
type Notice struct {
	Source             string   `json:"source"`
	Reference          string   `json:"reference"`
	SourceNoticeID     string   `json:"source_notice_id"`
	URL                string   `json:"url"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	BuyerName          string   `json:"buyer_name"`
	Department         string   `json:"department"`
	City               string   `json:"city"`
	PostalCode         string   `json:"postal_code"`
	PublicationDate    string   `json:"publication_date"`
	DeadlineDate       string   `json:"deadline_date"`
	DeadlineTime       string   `json:"deadline_time"`
	EstimatedBudget    *float64 `json:"estimated_budget"`
	EstimatedBudgetRaw string   `json:"estimated_budget_raw"`
}

// identitySep joins source and reference in the fallback identity.
const identitySep = "::"

// Identity returns a stable id for the notice: the platform id when the
// source assigned one, else the canonical URL, else source+reference.
// Returns "" only when no identifying field exists at all; such a notice
// cannot be marked viewed.
func (n Notice) Identity() string {
	if n.SourceNoticeID != "" {
		return n.SourceNoticeID
	}
	if n.URL != "" {
		return n.URL
	}
	if n.Source == "" && n.Reference == "" {
		return ""
	}
	src := n.Source
	if src == "" {
		src = "?"
	}
	return src + identitySep + n.Reference
}
