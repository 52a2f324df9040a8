// Package inventory holds the session's authoritative in-memory product set
// and mediates every mutation against the record store. Writes are
// store-first, cache-second: the local set changes only after the store has
// confirmed the operation, so on failure the cache stays consistent with the
// last known-good server state.
package inventory

import (
	"context"
	"sync"
	"time"

	"stocktrack/internal/derive"
	"stocktrack/internal/model"
	"stocktrack/internal/store"

	"github.com/rs/zerolog"
)

// Inventory is the owned, injectable state container for one session.
// Construct one per session with New; there is no ambient singleton.
//
// The busy flag is a single process-wide boolean covering whichever store
// call is currently outstanding, not a per-record lock. Nothing at this
// layer stops two in-flight mutations on the same id: the store calls run
// outside the cache lock, and whichever completion arrives last overwrites
// the cache (last-writer-wins). There is no version field or optimistic
// lock, so the earlier edit's result is silently discarded. Known
// limitation, kept intentionally.
type Inventory struct {
	store            store.RecordStore
	notify           Notifier
	defaultThreshold int
	logger           zerolog.Logger

	mu       sync.Mutex
	products []model.Product
	busy     bool
	lastErr  string
}

// New creates an inventory container backed by the given store.
// defaultThreshold is applied to inputs that omit a low-stock threshold.
func New(recordStore store.RecordStore, notify Notifier, defaultThreshold int, logger zerolog.Logger) *Inventory {
	return &Inventory{
		store:            recordStore,
		notify:           notify,
		defaultThreshold: defaultThreshold,
		logger:           logger.With().Str("component", "inventory").Logger(),
	}
}

// Load fetches the full record set from the store. It runs once at session
// start; on failure the set stays empty, the error is recorded and notified,
// and no retry is attempted.
func (inv *Inventory) Load(ctx context.Context) error {
	inv.setBusy(true)
	defer inv.setBusy(false)

	products, err := inv.store.ListAll(ctx)
	if err != nil {
		inv.logger.Error().Err(err).Msg("initial load failed")
		inv.recordError("Could not fetch products")
		return err
	}

	inv.mu.Lock()
	inv.products = products
	inv.lastErr = ""
	inv.mu.Unlock()

	inv.logger.Info().Int("count", len(products)).Msg("inventory loaded")
	return nil
}

// Add validates the input, persists a new record, and appends the returned
// record to the in-memory set. On validation failure nothing reaches the
// store; on store failure the set is unchanged.
func (inv *Inventory) Add(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	inv.setBusy(true)
	defer inv.setBusy(false)

	now := time.Now().UTC()
	p := model.Product{
		Name:              in.Name,
		Code:              in.Code,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: in.Threshold(inv.defaultThreshold),
		Category:          in.Category,
		ImageURL:          in.ImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := inv.store.Create(ctx, p)
	if err != nil {
		inv.logger.Error().Err(err).Str("name", in.Name).Msg("failed to add product")
		inv.recordError("Could not add " + in.Name)
		return nil, err
	}
	p.ID = id

	inv.mu.Lock()
	inv.products = append(inv.products, p)
	inv.lastErr = ""
	inv.mu.Unlock()

	inv.notify.Success(p.Name + " added successfully")
	inv.logger.Info().Str("product_id", id).Str("name", p.Name).Msg("product added")
	return &p, nil
}

// Update persists a full-field overwrite of the record with the given id,
// stamping a fresh UpdatedAt, then replaces the matching in-memory record.
// On store failure the set is unchanged. The store call runs outside the
// cache lock; see the type comment for the concurrent-edit semantics.
func (inv *Inventory) Update(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	inv.setBusy(true)
	defer inv.setBusy(false)

	existing, found := inv.Find(id)

	p := model.Product{
		ID:                id,
		Name:              in.Name,
		Code:              in.Code,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: in.Threshold(inv.defaultThreshold),
		Category:          in.Category,
		ImageURL:          in.ImageURL,
		CreatedAt:         existing.CreatedAt, // zero when absent locally; Replace never writes it
		UpdatedAt:         time.Now().UTC(),
	}

	if err := inv.store.Replace(ctx, id, p); err != nil {
		inv.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		inv.recordError("Could not update " + in.Name)
		return nil, err
	}

	if found {
		inv.mu.Lock()
		for i := range inv.products {
			if inv.products[i].ID == id {
				inv.products[i] = p
				break
			}
		}
		inv.lastErr = ""
		inv.mu.Unlock()
	}

	inv.notify.Success(p.Name + " updated successfully")
	inv.logger.Info().Str("product_id", id).Msg("product updated")
	return &p, nil
}

// Remove persists a delete and drops the record from the in-memory set.
// Removing an id absent from the cache is a local no-op, though the store
// call is still attempted.
func (inv *Inventory) Remove(ctx context.Context, id string) error {
	inv.setBusy(true)
	defer inv.setBusy(false)

	if err := inv.store.Delete(ctx, id); err != nil {
		inv.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		inv.recordError("Could not delete product")
		return err
	}

	inv.mu.Lock()
	for i := range inv.products {
		if inv.products[i].ID == id {
			inv.products = append(inv.products[:i], inv.products[i+1:]...)
			break
		}
	}
	inv.lastErr = ""
	inv.mu.Unlock()

	inv.notify.Success("Product deleted successfully")
	inv.logger.Info().Str("product_id", id).Msg("product removed")
	return nil
}

// Find looks up a product in the in-memory set. It never errors; callers
// must handle absence.
func (inv *Inventory) Find(id string) (model.Product, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, p := range inv.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Products returns a snapshot of the current record set in load order.
func (inv *Inventory) Products() []model.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	snapshot := make([]model.Product, len(inv.products))
	copy(snapshot, inv.products)
	return snapshot
}

// LowStock returns the current low-stock subset, recomputed from the live
// set on every call.
func (inv *Inventory) LowStock() []model.Product {
	return derive.LowStock(inv.Products())
}

// Busy reports whether a store call is currently outstanding. Callers use
// it to disable concurrent submissions; the container itself does not
// reject them.
func (inv *Inventory) Busy() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.busy
}

// LastError returns the most recent store failure message, empty after any
// subsequent success.
func (inv *Inventory) LastError() string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.lastErr
}

func (inv *Inventory) setBusy(b bool) {
	inv.mu.Lock()
	inv.busy = b
	inv.mu.Unlock()
}

func (inv *Inventory) recordError(msg string) {
	inv.mu.Lock()
	inv.lastErr = msg
	inv.mu.Unlock()
	inv.notify.Error(msg)
}
