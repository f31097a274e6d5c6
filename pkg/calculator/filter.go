package calculator

import (
	"strings"

	"order-forecast/pkg/models"
)

// Filter keeps the records matching every criterion that is set. Order is preserved.
func Filter(records []models.TransactionRecord, c models.Criteria) []models.TransactionRecord {
	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.TransactionRecord, c models.Criteria) bool {
	return exact(c.ItemCode, r.ItemCode) &&
		exact(c.CustomerCode, r.CustomerCode) &&
		siteMatches(r.Site, c.Site, c.AltSite) &&
		exact(c.SalesTerritory, r.SalesTerritory) &&
		exact(c.Category, r.Category) &&
		exact(c.ItemType, r.ItemType) &&
		exact(c.ParentCategory, r.ParentCategory)
}

func exact(want, got string) bool {
	return want == "" || want == got
}

func siteMatches(site, prefix, alt string) bool {
	if prefix == "" {
		return true
	}
	if strings.HasPrefix(site, prefix) {
		return true
	}
	return alt != "" && strings.HasPrefix(site, alt)
}
