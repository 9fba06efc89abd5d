package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/api/validators"
	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/internal/order"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

const maxNoteLength = 500

// OrderEngine is the active order and its transitions into sales and drafts.
type OrderEngine interface {
	Order() order.Order
	AddItem(ctx context.Context, in order.AddItemInput) order.Order
	RemoveItem(ctx context.Context, position int) (order.Order, error)
	SetQuantity(ctx context.Context, position, quantity int) (order.Order, error)
	Clear(ctx context.Context) order.Order
	Checkout(ctx context.Context, method enums.PaymentMethod, notes string) (sales.Sale, error)
	SaveDraft(ctx context.Context) (sales.Sale, error)
	LoadDraft(ctx context.Context, draftID string) (order.Order, error)
	DeleteDraft(ctx context.Context, draftID string) error
}

type addItemRequest struct {
	MenuItemID          string           `json:"menuItemId" validate:"required"`
	Size                enums.SizeOption `json:"size" validate:"omitempty,enum"`
	ModifierIDs         []string         `json:"modifierIds" validate:"omitempty,dive,required"`
	SpecialInstructions string           `json:"specialInstructions" validate:"max=500"`
}

// toInput resolves the request against the menu. Modifier ids are passed
// through in order, so a repeated id toggles off in the engine.
func (req addItemRequest) toInput(menu Menu) (order.AddItemInput, error) {
	id := strings.TrimSpace(req.MenuItemID)
	item, ok := menu.Get(id)
	if !ok {
		return order.AddItemInput{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").WithDetails(map[string]any{"menuItemId": id})
	}
	if !item.Available {
		return order.AddItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "menu item is unavailable").WithDetails(map[string]any{"menuItemId": id})
	}

	mods := make([]catalog.SelectedModifier, 0, len(req.ModifierIDs))
	for _, modID := range req.ModifierIDs {
		mod, ok := item.Modifier(strings.TrimSpace(modID))
		if !ok {
			return order.AddItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown modifier for menu item").WithDetails(map[string]any{"menuItemId": id, "modifierId": modID})
		}
		mods = append(mods, mod.Select())
	}

	return order.AddItemInput{
		Item:      item,
		Size:      req.Size,
		Modifiers: mods,
		Note:      validators.SanitizeString(req.SpecialInstructions, maxNoteLength),
	}, nil
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	Notes         string `json:"notes" validate:"max=500"`
}

func OrderFetch(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}
		responses.WriteSuccess(w, newOrderView(engine.Order()))
	}
}

func OrderClear(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}
		responses.WriteSuccess(w, newOrderView(engine.Clear(r.Context())))
	}
}

// OrderAddItem adds one menu item to the active order. Unavailable items and
// modifiers the item does not offer are rejected here.
func OrderAddItem(engine OrderEngine, menu Menu, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil || menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput(menu)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderView(engine.AddItem(r.Context(), input)))
	}
}

// OrderSetQuantity changes a line's quantity. Zero or less removes the line.
func OrderSetQuantity(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		position, err := validators.ParsePathInt(r, "position")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := engine.SetQuantity(r.Context(), position, *req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(updated))
	}
}

func OrderRemoveItem(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		position, err := validators.ParsePathInt(r, "position")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := engine.RemoveItem(r.Context(), position)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(updated))
	}
}

// OrderCheckout completes the active order as a sale.
func OrderCheckout(engine OrderEngine, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method := enums.NormalizePaymentMethod(req.PaymentMethod)
		sale, err := engine.Checkout(r.Context(), method, validators.SanitizeString(req.Notes, maxNoteLength))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSaleView(sale, loc))
	}
}

// OrderSaveDraft parks the active order as a draft.
func OrderSaveDraft(engine OrderEngine, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		draft, err := engine.SaveDraft(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSaleView(draft, loc))
	}
}
