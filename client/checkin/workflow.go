package checkin

import (
	"context"
	"fmt"

	"github.com/ghuser/stocktrack/client/state"
	"github.com/ghuser/stocktrack/client/warehouse"
)

// Workflow turns confirmed detections into checked-in items and keeps the
// local item store in sync with the server.
type Workflow struct {
	client *warehouse.Client
	items  *state.ItemStore
}

// NewWorkflow returns a Workflow posting to the given client and merging
// results into the given store.
func NewWorkflow(client *warehouse.Client, items *state.ItemStore) *Workflow {
	return &Workflow{client: client, items: items}
}

// Refresh loads the pending pool from the server into the item store.
func (w *Workflow) Refresh(ctx context.Context) error {
	items, err := w.client.ListItems(ctx, warehouse.ItemListOptions{Unassigned: true})
	if err != nil {
		return fmt.Errorf("load pending items: %w", err)
	}
	w.items.Replace(items)
	return nil
}

// CheckIn posts one confirmed (barcode, quantity) pair. The server applies
// the name default and sets scannedAt; the created item is merged into the
// store. On error the store is left untouched. The scan-versus-manual origin
// stays on the Detection; it is a UI annotation and is never persisted.
func (w *Workflow) CheckIn(ctx context.Context, barcode string, quantity int) (*warehouse.Item, error) {
	item, err := w.client.CreateItem(ctx, warehouse.CreateItemParams{
		Barcode:  barcode,
		Quantity: quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("check in %s: %w", barcode, err)
	}
	w.items.Add(*item)
	return item, nil
}

// Delete removes an item on the server and from the store.
func (w *Workflow) Delete(ctx context.Context, item warehouse.Item) error {
	if err := w.client.DeleteItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	w.items.Remove(item.ID)
	return nil
}
