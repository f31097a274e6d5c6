package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode     = errors.New("unknown aggregation mode")
	ErrUnknownGroupKey = errors.New("unknown group key")
)

// Mode selects how a group of weighted samples collapses to one magnitude.
type Mode int

const (
	ModeMean Mode = iota
	ModeMedian
	ModeMax
	ModeMin
	ModeMode
)

func (m Mode) String() string {
	switch m {
	case ModeMean:
		return "mean"
	case ModeMedian:
		return "median"
	case ModeMax:
		return "max"
	case ModeMin:
		return "min"
	case ModeMode:
		return "mode"
	default:
		return "unknown"
	}
}

// ParseMode maps a query value to a Mode. The empty string is the mean.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "mean":
		return ModeMean, nil
	case "median":
		return ModeMedian, nil
	case "max":
		return ModeMax, nil
	case "min":
		return ModeMin, nil
	case "mode":
		return ModeMode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// GroupKey is the categorical column a scatter view partitions on.
type GroupKey int

const (
	GroupCustomer GroupKey = iota
	GroupItem
	GroupSite
	GroupCategory
	GroupType
	GroupTerritory
	GroupParent
)

func (k GroupKey) String() string {
	switch k {
	case GroupCustomer:
		return "customer_code"
	case GroupItem:
		return "item_code"
	case GroupSite:
		return "site"
	case GroupCategory:
		return "category"
	case GroupType:
		return "type"
	case GroupTerritory:
		return "sales_territory"
	case GroupParent:
		return "parent"
	default:
		return "unknown"
	}
}

// ParseGroupKey accepts both the short names and the column names used by the dashboards.
func ParseGroupKey(s string) (GroupKey, error) {
	switch s {
	case "", "customer", "customer_code":
		return GroupCustomer, nil
	case "item", "item_code":
		return GroupItem, nil
	case "site", "site_name":
		return GroupSite, nil
	case "category", "item_category":
		return GroupCategory, nil
	case "type", "item_type":
		return GroupType, nil
	case "sales_territory", "territory":
		return GroupTerritory, nil
	case "parent", "item_category_parent":
		return GroupParent, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGroupKey, s)
}

// Of returns the record's value for the key.
func (k GroupKey) Of(r TransactionRecord) string {
	switch k {
	case GroupCustomer:
		return r.CustomerCode
	case GroupItem:
		return r.ItemCode
	case GroupSite:
		return r.Site
	case GroupCategory:
		return r.Category
	case GroupType:
		return r.ItemType
	case GroupTerritory:
		return r.SalesTerritory
	case GroupParent:
		return r.ParentCategory
	default:
		return ""
	}
}
