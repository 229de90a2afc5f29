package checkin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/client/state"
	"github.com/ghuser/stocktrack/client/warehouse"
)

// Assigner moves checked-in items to storage locations and keeps the local
// stores in sync.
type Assigner struct {
	client    *warehouse.Client
	items     *state.ItemStore
	locations *state.LocationStore
}

// NewAssigner returns an Assigner over the given client and stores.
func NewAssigner(client *warehouse.Client, items *state.ItemStore, locations *state.LocationStore) *Assigner {
	return &Assigner{client: client, items: items, locations: locations}
}

// Refresh loads all locations from the server into the location store.
func (a *Assigner) Refresh(ctx context.Context) error {
	locs, err := a.client.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	a.locations.Replace(locs)
	return nil
}

// Search returns the stored locations whose name or description contains the
// term, case-insensitive. An empty term returns everything.
func (a *Assigner) Search(term string) []warehouse.Location {
	all := a.locations.List()
	if strings.TrimSpace(term) == "" {
		return all
	}
	term = strings.ToLower(term)
	var out []warehouse.Location
	for _, loc := range all {
		if strings.Contains(strings.ToLower(loc.Name), term) ||
			strings.Contains(strings.ToLower(loc.Description), term) {
			out = append(out, loc)
		}
	}
	return out
}

// Assign puts the item at the given location. The server response (location
// expanded) replaces the store entry, so the item leaves the pending view
// without a refetch.
func (a *Assigner) Assign(ctx context.Context, itemID, locationID uuid.UUID) (*warehouse.Item, error) {
	ref := warehouse.LocationRef{Kind: warehouse.LocationReference, ID: locationID}
	item, err := a.client.UpdateItem(ctx, itemID, warehouse.UpdateItemParams{Location: &ref})
	if err != nil {
		return nil, fmt.Errorf("assign item: %w", err)
	}
	a.items.Update(*item)
	return item, nil
}

// CreateAndAssign creates a location inline and assigns the item to it. The
// location is persisted first; if assignment then fails the new location
// remains, matching the two-step nature of the operation.
func (a *Assigner) CreateAndAssign(ctx context.Context, itemID uuid.UUID, params warehouse.CreateLocationParams) (*warehouse.Item, error) {
	loc, err := a.client.CreateLocation(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	a.locations.Add(*loc)
	return a.Assign(ctx, itemID, loc.ID)
}
