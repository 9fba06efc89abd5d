// Package order holds the in-progress order for the terminal and turns it into
// sales and drafts.
package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/internal/kitchen"
	"github.com/FuadAliah/celtis-pos/internal/pricing"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	"github.com/FuadAliah/celtis-pos/pkg/metrics"
	"github.com/google/uuid"
)

// SalesStore is the part of the transaction store the engine writes to.
type SalesStore interface {
	AppendSale(ctx context.Context, sale sales.Sale)
	AddDraft(ctx context.Context, draft sales.Sale)
	RemoveDraft(ctx context.Context, id string) (sales.Sale, bool)
}

// StaffSession resolves and changes the acting staff member.
type StaffSession interface {
	CurrentStaff() (staff.Member, bool)
	SelectStaff(ctx context.Context, staffID string) (staff.Member, error)
	ClearStaff(ctx context.Context)
}

type Deps struct {
	Store         SalesStore
	Session       StaffSession
	Calculator    pricing.Calculator
	Notifier      kitchen.Notifier
	Metrics       *metrics.POSMetrics
	Logger        *logger.Logger
	Sequencer     *sales.Sequencer
	Clock         func() time.Time
	NewID         func() string
	// NotifyTimeout bounds each kitchen publish. Zero means DefaultNotifyTimeout.
	NotifyTimeout time.Duration
}

const DefaultNotifyTimeout = 2 * time.Second

// Engine serializes every operation on the active order. The order's totals
// are recomputed once per mutation and served from cache in between.
type Engine struct {
	mu sync.Mutex

	store    SalesStore
	session  StaffSession
	calc     pricing.Calculator
	notifier kitchen.Notifier
	metrics  *metrics.POSMetrics
	logg     *logger.Logger
	seq      *sales.Sequencer
	now      func() time.Time
	newID    func() string
	notifyIn time.Duration

	items []LineItem
	order Order
}

func NewEngine(deps Deps) (*Engine, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("sales store required")
	}
	if deps.Session == nil {
		return nil, fmt.Errorf("staff session required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	e := &Engine{
		store:    deps.Store,
		session:  deps.Session,
		calc:     deps.Calculator,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		logg:     deps.Logger,
		seq:      deps.Sequencer,
		now:      deps.Clock,
		newID:    deps.NewID,
		notifyIn: deps.NotifyTimeout,
	}
	if e.notifyIn <= 0 {
		e.notifyIn = DefaultNotifyTimeout
	}
	if e.notifier == nil {
		e.notifier = kitchen.Nop{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.seq == nil {
		e.seq = sales.NewSequencer(e.now)
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	e.recompute()
	return e, nil
}

// Order returns a copy of the active order.
func (e *Engine) Order() Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order.clone()
}

// AddItem appends a line with quantity 1. Sized items default to medium;
// unsized items never carry a size. A modifier id given twice cancels out.
func (e *Engine) AddItem(ctx context.Context, in AddItemInput) Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	size := enums.SizeOption("")
	if in.Item.HasSizes {
		size = in.Size
		if size == "" {
			size = enums.SizeMedium
		}
	}
	mods := toggleModifiers(in.Modifiers)
	unit := pricing.UnitPrice(in.Item, size, mods)

	e.items = append(e.items, LineItem{
		MenuItem:            in.Item.Clone(),
		Quantity:            1,
		Size:                size,
		Customizations:      mods,
		SpecialInstructions: in.Note,
		UnitPrice:           unit,
		Subtotal:            unit,
	})
	e.recompute()

	e.logg.Debug(e.logg.WithFields(ctx, map[string]any{"menu_item_id": in.Item.ID, "position": len(e.items) - 1}), "order.item_added")
	return e.order.clone()
}

// RemoveItem deletes the line at position. Survivors keep their order.
func (e *Engine) RemoveItem(ctx context.Context, position int) (Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPosition(position); err != nil {
		return e.order.clone(), err
	}
	e.removeAt(position)
	return e.order.clone(), nil
}

// SetQuantity changes a line's quantity; zero or less removes the line. The
// unit price is kept as is.
func (e *Engine) SetQuantity(ctx context.Context, position, quantity int) (Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPosition(position); err != nil {
		return e.order.clone(), err
	}
	if quantity <= 0 {
		e.removeAt(position)
		return e.order.clone(), nil
	}
	line := &e.items[position]
	line.Quantity = quantity
	line.Subtotal = pricing.LineSubtotal(line.UnitPrice, quantity)
	e.recompute()
	return e.order.clone(), nil
}

// Clear empties the active order.
func (e *Engine) Clear(ctx context.Context) Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.recompute()
	return e.order.clone()
}

// Checkout turns the active order into a completed sale, records it and
// clears the order. The kitchen is notified after mu is released.
func (e *Engine) Checkout(ctx context.Context, method enums.PaymentMethod, notes string) (sales.Sale, error) {
	if !method.IsValid() {
		return sales.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").WithDetails(map[string]any{"paymentMethod": method.String()})
	}

	sale, err := e.completeSale(ctx, method, notes)
	if err != nil {
		return sales.Sale{}, err
	}

	ctx = e.logg.WithSaleID(e.logg.WithStaffID(ctx, sale.StaffID), sale.ID)
	e.notifyKitchen(ctx, sale)
	e.logg.Info(e.logg.WithField(ctx, "sale_number", sale.SaleNumber), "order.checkout_completed")
	return sale, nil
}

func (e *Engine) completeSale(ctx context.Context, method enums.PaymentMethod, notes string) (sales.Sale, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	member, err := e.readyForSale()
	if err != nil {
		return sales.Sale{}, err
	}

	now := e.now().UTC()
	completed := now
	sale := e.snapshot(member, now)
	sale.SaleNumber = e.seq.Next(sales.SalePrefix)
	sale.PaymentMethod = method
	sale.Status = enums.SaleStatusCompleted
	sale.CompletedAt = &completed
	sale.Notes = notes

	e.store.AppendSale(ctx, sale)
	e.metrics.IncSale(method.String(), sale.Total)

	e.items = nil
	e.recompute()
	return sale.Clone(), nil
}

// notifyKitchen is best effort. Must not be called with mu held.
func (e *Engine) notifyKitchen(ctx context.Context, sale sales.Sale) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.notifyIn)
	defer cancel()
	if err := e.notifier.Notify(ctx, sale.Clone()); err != nil {
		e.logg.Error(ctx, "order.kitchen_notify_failed", err)
	}
}

// SaveDraft parks the active order as a draft and clears it.
func (e *Engine) SaveDraft(ctx context.Context) (sales.Sale, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	member, err := e.readyForSale()
	if err != nil {
		return sales.Sale{}, err
	}

	draft := e.snapshot(member, e.now().UTC())
	draft.SaleNumber = e.seq.Next(sales.DraftPrefix)
	draft.PaymentMethod = enums.PaymentMethodCash
	draft.Status = enums.SaleStatusDraft

	e.store.AddDraft(ctx, draft)
	e.metrics.IncDraft("saved")
	e.logg.Info(e.logg.WithSaleID(e.logg.WithStaffID(ctx, member.ID), draft.ID), "order.draft_saved")

	e.items = nil
	e.recompute()
	return draft.Clone(), nil
}

// LoadDraft replaces the active order with a draft's lines and deletes the
// draft. Lines are rebuilt from the snapshot alone, so their menu item keeps
// only id, name and sku, and its category becomes Unknown.
func (e *Engine) LoadDraft(ctx context.Context, draftID string) (Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft, ok := e.store.RemoveDraft(ctx, draftID)
	if !ok {
		return e.order.clone(), draftNotFound(draftID)
	}

	items := make([]LineItem, 0, len(draft.Items))
	for _, si := range draft.Items {
		items = append(items, LineItem{
			MenuItem: catalog.Item{
				ID:        si.MenuItemID,
				Name:      si.MenuItemName,
				BasePrice: si.UnitPrice,
				HasSizes:  si.Size != "",
				SKU:       si.MenuItemSKU,
				Category:  UnknownCategory,
				Available: true,
			},
			Quantity:            si.Quantity,
			Size:                si.Size,
			Customizations:      append([]catalog.SelectedModifier{}, si.Customizations...),
			SpecialInstructions: si.SpecialInstructions,
			UnitPrice:           si.UnitPrice,
			Subtotal:            si.Subtotal,
		})
	}
	e.items = items
	e.recompute()

	e.metrics.IncDraft("loaded")
	e.logg.Info(e.logg.WithSaleID(ctx, draftID), "order.draft_loaded")
	return e.order.clone(), nil
}

// DeleteDraft discards a draft without loading it.
func (e *Engine) DeleteDraft(ctx context.Context, draftID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.store.RemoveDraft(ctx, draftID); !ok {
		return draftNotFound(draftID)
	}
	e.metrics.IncDraft("deleted")
	return nil
}

func (e *Engine) SelectStaff(ctx context.Context, staffID string) (staff.Member, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.SelectStaff(ctx, staffID)
}

func (e *Engine) ClearStaff(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.ClearStaff(ctx)
}

// readyForSale checks emptiness before staff. Callers hold mu.
func (e *Engine) readyForSale() (staff.Member, error) {
	if len(e.items) == 0 {
		return staff.Member{}, pkgerrors.New(pkgerrors.CodeEmptyOrder, "order has no items")
	}
	member, ok := e.session.CurrentStaff()
	if !ok {
		return staff.Member{}, pkgerrors.New(pkgerrors.CodeNoStaffSelected, "select staff first")
	}
	return member, nil
}

func (e *Engine) snapshot(member staff.Member, at time.Time) sales.Sale {
	items := make([]sales.Item, 0, len(e.items))
	for _, line := range e.items {
		items = append(items, sales.Item{
			MenuItemID:          line.MenuItem.ID,
			MenuItemName:        line.MenuItem.Name,
			MenuItemSKU:         line.MenuItem.SKU,
			Quantity:            line.Quantity,
			Size:                line.Size,
			Customizations:      append([]catalog.SelectedModifier{}, line.Customizations...),
			SpecialInstructions: line.SpecialInstructions,
			UnitPrice:           line.UnitPrice,
			Subtotal:            line.Subtotal,
		})
	}
	return sales.Sale{
		ID:        e.newID(),
		Items:     items,
		Subtotal:  e.order.Subtotal,
		Tax:       e.order.Tax,
		Discount:  e.order.Discount,
		Total:     e.order.Total,
		CreatedAt: at,
		StaffID:   member.ID,
		StaffName: member.Name,
		StaffRole: member.Role.String(),
	}
}

func (e *Engine) checkPosition(position int) error {
	if position < 0 || position >= len(e.items) {
		return pkgerrors.New(pkgerrors.CodeInvalidIndex, "line item position out of range").
			WithDetails(map[string]any{"position": position, "items": len(e.items)})
	}
	return nil
}

func (e *Engine) removeAt(position int) {
	e.items = append(e.items[:position:position], e.items[position+1:]...)
	e.recompute()
}

func (e *Engine) recompute() {
	subtotals := make([]float64, len(e.items))
	items := make([]LineItem, len(e.items))
	for i, line := range e.items {
		subtotals[i] = line.Subtotal
		items[i] = line.clone()
	}
	e.order = Order{Items: items, Totals: e.calc.Aggregate(subtotals...)}
}

// toggleModifiers folds repeated ids: selecting an already selected modifier
// deselects it. Selection order is kept for the survivors.
func toggleModifiers(mods []catalog.SelectedModifier) []catalog.SelectedModifier {
	out := make([]catalog.SelectedModifier, 0, len(mods))
	for _, mod := range mods {
		idx := -1
		for i, existing := range out {
			if existing.ID == mod.ID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			out = append(out[:idx], out[idx+1:]...)
			continue
		}
		out = append(out, mod)
	}
	return out
}

func draftNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeDraftNotFound, "draft not found").WithDetails(map[string]any{"draftId": id})
}
