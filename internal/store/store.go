package store

import (
	"context"
	"fmt"

	"stocktrack/internal/model"
)

// RecordStore is the persistence boundary for product records. The collection
// is accessed strictly by identifier: the full set is fetched once per session
// and every filter or aggregate is computed client-side. Implementations never
// set timestamps; the writer stamps them before calling in.
type RecordStore interface {
	// ListAll fetches the entire collection, ordered by creation time.
	// Fails with *ConnectivityError when the store is unreachable.
	ListAll(ctx context.Context) ([]model.Product, error)

	// Create persists a new record and returns the identifier the store
	// assigned to it. Fails with *WriteError.
	Create(ctx context.Context, p model.Product) (string, error)

	// Replace overwrites every field of the record with the given id.
	// Fails with *NotFoundError when the id is absent server-side, or
	// *WriteError on any other failure.
	Replace(ctx context.Context, id string, p model.Product) error

	// Delete removes the record with the given id. Same error contract
	// as Replace.
	Delete(ctx context.Context, id string) error
}

// ConnectivityError indicates the store could not be reached at all.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("store unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// WriteError indicates a create, replace, or delete failed server-side.
type WriteError struct {
	Op  string
	ID  string
	Err error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed for record %s: %v", e.Op, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates the targeted record vanished server-side.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %s not found", e.ID)
}
