package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/museshop/backend/api/responses"
	"github.com/museshop/backend/api/validators"
	"github.com/museshop/backend/internal/reports"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/museshop/backend/pkg/logger"
)

// StaffSalesReport charts a month of the sales ledger. Omitted filters
// default to the current month, daily view, newest first.
func StaffSalesReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		year, err := validators.ParseQueryInt(r, "year", 0, 1970, 9999)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := validators.ParseQueryInt(r, "month", 0, 1, 12)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := reports.Filters{
			Year:  year,
			Month: time.Month(month),
			View:  enums.SalesView(strings.TrimSpace(r.URL.Query().Get("view"))),
			Sort:  enums.SortOrder(strings.TrimSpace(r.URL.Query().Get("sort"))),
		}

		report, err := svc.SalesReport(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
