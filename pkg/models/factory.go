package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"order-forecast/pkg/dates"
)

// SiteAliases maps a site-name prefix to the canonical site it is reported under.
type SiteAliases map[string]string

// Canonical returns the alias of the longest matching prefix, or site itself.
func (a SiteAliases) Canonical(site string) string {
	best, name := -1, site
	for prefix, alias := range a {
		if len(prefix) > best && strings.HasPrefix(site, prefix) {
			best, name = len(prefix), alias
		}
	}
	return name
}

// NewOrderRecord builds an order line. In dollar mode Qty carries the AUD value
// (truncated eaches × unit cost) and lines without a cost are skipped (ok == false).
func NewOrderRecord(row RawOrderRow, costs CostTable, aliases SiteAliases, dollars bool) (TransactionRecord, bool, error) {
	required, err := dates.Parse(row.DateRequired)
	if err != nil {
		return TransactionRecord{}, false, fmt.Errorf("order %s: %w", row.ItemCode, err)
	}
	eaches := int64(row.QtyOrdered * row.ConversionUnits)
	cost, hasCost := costs[row.ItemCode]
	if dollars && !hasCost {
		return TransactionRecord{}, false, nil
	}

	value := decimal.NewFromInt(eaches).Mul(cost)
	qty := eaches
	if dollars {
		qty = value.IntPart()
	}
	return TransactionRecord{
		ItemCode:     row.ItemCode,
		CustomerCode: row.CustomerCode,
		Site:         aliases.Canonical(row.SiteName),
		RequiredDate: required,
		Qty:          qty,
		EstValue:     value,
	}, true, nil
}

// NewDespatchRecord builds a despatch line. Negative waits (despatched early) clamp to zero.
// A line without a sales order has no required date and is treated as despatched on time.
func NewDespatchRecord(row RawDespatchRow, costs CostTable, aliases SiteAliases) (TransactionRecord, error) {
	despatched, err := dates.Parse(row.ProcessedDate)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("despatch %s: %w", row.DespatchNo, err)
	}
	required := despatched
	if row.DateRequired != "" {
		if required, err = dates.Parse(row.DateRequired); err != nil {
			return TransactionRecord{}, fmt.Errorf("despatch %s: %w", row.DespatchNo, err)
		}
	}

	qty := int64(row.QtyEach)
	return TransactionRecord{
		ItemCode:       row.ItemCode,
		CustomerCode:   row.CustomerCode,
		Site:           aliases.Canonical(row.SiteName),
		SalesTerritory: row.SalesTerritory,
		Category:       row.Category,
		ItemType:       row.ItemType,
		ParentCategory: row.ParentCategory,
		DespatchNo:     row.DespatchNo,
		RequiredDate:   required,
		DespatchedDate: despatched,
		Qty:            qty,
		EstValue:       decimal.NewFromInt(qty).Mul(costs[row.ItemCode]),
		WaitDays:       max(0, dates.DaysBetween(required, despatched)),
	}, nil
}

// Sample is the record's value-weighted wait, as grouped in the scatter view.
func (r TransactionRecord) Sample() WeightedSample {
	return WeightedSample{Weight: r.EstValue.InexactFloat64(), Magnitude: float64(r.WaitDays)}
}

// QtySample is the record's wait weighted by eaches despatched, as used by the daily series.
// Uncosted items still count.
func (r TransactionRecord) QtySample() WeightedSample {
	return WeightedSample{Weight: float64(r.Qty), Magnitude: float64(r.WaitDays)}
}
