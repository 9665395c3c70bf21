package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/museshop/backend/api/middleware"
	"github.com/museshop/backend/api/responses"
	"github.com/museshop/backend/api/validators"
	"github.com/museshop/backend/internal/cart"
	"github.com/museshop/backend/internal/products"
	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/museshop/backend/pkg/logger"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type updateItemRequest struct {
	Quantity *int  `json:"quantity" validate:"omitempty,min=1"`
	Selected *bool `json:"selected"`
}

func CartFetch(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem puts a product into the cart, refreshing its catalog data
// on the way in.
func CartAddItem(carts *cart.Manager, productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := productSvc.Get(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.AddItem(cart.ProductInfo{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
			Stock: product.Stock,
		}, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.Snapshot())
	}
}

func CartUpdateItem(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil && payload.Selected == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity or selected is required"))
			return
		}

		if payload.Quantity != nil {
			if _, ok := store.SetQuantity(productID, *payload.Quantity); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
				return
			}
		}
		if payload.Selected != nil {
			if _, ok := store.SetSelected(productID, *payload.Selected); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
				return
			}
		}

		responses.WriteSuccess(w, store.Snapshot())
	}
}

func CartRemoveItem(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(productID)
		responses.WriteSuccess(w, store.Snapshot())
	}
}

func CartClear(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartForRequest(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccess(w, store.Snapshot())
	}
}

func cartForRequest(carts *cart.Manager, r *http.Request) (*cart.Store, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable")
	}
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return carts.For(userID), nil
}
