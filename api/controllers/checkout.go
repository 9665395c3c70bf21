package controllers

import (
	"net/http"

	"github.com/museshop/backend/api/middleware"
	"github.com/museshop/backend/api/responses"
	"github.com/museshop/backend/api/validators"
	"github.com/museshop/backend/internal/cart"
	checkoutsvc "github.com/museshop/backend/internal/checkout"
	"github.com/museshop/backend/pkg/enums"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/museshop/backend/pkg/logger"
)

type checkoutRequest struct {
	Method string `json:"method" validate:"required,oneof=cash card"`
}

// Checkout settles the selected cart lines. The cart keeps its unselected
// lines when settlement succeeds; a failed settlement leaves it untouched.
func Checkout(svc checkoutsvc.Service, carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		method := enums.PaymentMethod(payload.Method)

		payment, err := svc.Settle(r.Context(), userID, store.SelectedLines(), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.ClearSelected()

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}
