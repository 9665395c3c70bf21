package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/museshop/backend/internal/ledger"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Filters narrow the sales report to one month and choose its shape.
// Zero values fall back to the current year/month, daily view, newest first.
type Filters struct {
	Year  int
	Month time.Month
	View  enums.SalesView
	Sort  enums.SortOrder
}

// Point is a single labelled value on the sales chart.
type Point struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesReport is the staff dashboard payload. TodaysSales and OverallSales
// ignore the filters; the points honor them.
type SalesReport struct {
	Points       []Point         `json:"points"`
	TodaysSales  decimal.Decimal `json:"todays_sales"`
	OverallSales decimal.Decimal `json:"overall_sales"`
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	View         enums.SalesView `json:"view"`
	Sort         enums.SortOrder `json:"sort"`
}

// Service builds staff sales reports from the ledger.
type Service interface {
	SalesReport(ctx context.Context, filters Filters) (*SalesReport, error)
}

type service struct {
	ledger ledger.Service
	now    func() time.Time
}

// NewService wires a reporting service over the ledger.
func NewService(ledgerSvc ledger.Service) (Service, error) {
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &service{ledger: ledgerSvc, now: time.Now}, nil
}

// SalesReport recomputes the report on every call so the dashboard always
// reflects the latest settlements.
func (s *service) SalesReport(ctx context.Context, filters Filters) (*SalesReport, error) {
	filters = s.applyDefaults(filters)
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	startKey, endKey := ledger.MonthSpan(filters.Year, filters.Month)
	rows, err := s.ledger.Range(ctx, startKey, endKey, filters.Sort)
	if err != nil {
		return nil, err
	}

	var points []Point
	if filters.View == enums.SalesViewDaily {
		points = make([]Point, 0, len(rows))
		for _, row := range rows {
			points = append(points, Point{
				Label:  ledger.KeyTime(row.DateKey).Format("02 Jan"),
				Amount: row.Amount,
			})
		}
	} else {
		total := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.Amount)
		}
		// Months with no sales are omitted from the chart entirely.
		if total.IsPositive() {
			points = []Point{{Label: filters.Month.String(), Amount: total}}
		}
	}

	todays, err := s.ledger.TodaysTotal(ctx)
	if err != nil {
		return nil, err
	}
	overall, err := s.ledger.OverallTotal(ctx)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Points:       points,
		TodaysSales:  todays,
		OverallSales: overall,
		Year:         filters.Year,
		Month:        filters.Month,
		View:         filters.View,
		Sort:         filters.Sort,
	}, nil
}

func (s *service) applyDefaults(filters Filters) Filters {
	now := s.now().UTC()
	if filters.Year == 0 {
		filters.Year = now.Year()
	}
	if filters.Month == 0 {
		filters.Month = now.Month()
	}
	if filters.View == "" {
		filters.View = enums.SalesViewDaily
	}
	if filters.Sort == "" {
		filters.Sort = enums.SortOrderNewest
	}
	return filters
}

func validateFilters(filters Filters) error {
	if filters.Year < 1970 || filters.Year > 9999 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("year %d out of range", filters.Year))
	}
	if filters.Month < time.January || filters.Month > time.December {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("month %d out of range", filters.Month))
	}
	if !filters.View.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown view %q", filters.View))
	}
	if !filters.Sort.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort order %q", filters.Sort))
	}
	return nil
}
