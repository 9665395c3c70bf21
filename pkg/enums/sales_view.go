package enums

// SalesView selects how the sales report series is grouped.
type SalesView string

const (
	SalesViewDaily   SalesView = "daily"
	SalesViewMonthly SalesView = "monthly"
)

func (v SalesView) IsValid() bool {
	switch v {
	case SalesViewDaily, SalesViewMonthly:
		return true
	}
	return false
}

// SortOrder selects the direction of a date-ordered query.
type SortOrder string

const (
	SortOrderNewest SortOrder = "newest"
	SortOrderOldest SortOrder = "oldest"
)

func (o SortOrder) IsValid() bool {
	switch o {
	case SortOrderNewest, SortOrderOldest:
		return true
	}
	return false
}
