package state

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/client/warehouse"
)

func pendingItem(barcode string) warehouse.Item {
	return warehouse.Item{ID: uuid.New(), Barcode: barcode}
}

func assignedItem(barcode string) warehouse.Item {
	locID := uuid.New()
	return warehouse.Item{
		ID:      uuid.New(),
		Barcode: barcode,
		Location: warehouse.LocationRef{
			Kind: warehouse.LocationExpanded,
			ID:   locID,
			Location: &warehouse.Location{
				ID:   locID,
				Name: "Shelf A-1",
			},
		},
	}
}

func TestItemStore_AddNewestFirst(t *testing.T) {
	store := NewItemStore()

	first := pendingItem("111")
	second := pendingItem("222")
	store.Add(first)
	store.Add(second)

	items := store.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Error("expected newest item first")
	}
}

func TestItemStore_UpdateKeepsPosition(t *testing.T) {
	store := NewItemStore()

	first := pendingItem("111")
	second := pendingItem("222")
	store.Add(first)
	store.Add(second)

	first.Name = "Renamed"
	store.Update(first)

	items := store.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Name != "Renamed" {
		t.Errorf("expected update in place, got %q at position 1", items[1].Name)
	}
}

func TestItemStore_Remove(t *testing.T) {
	store := NewItemStore()
	item := pendingItem("111")
	store.Add(item)

	store.Remove(item.ID)
	if _, ok := store.Get(item.ID); ok {
		t.Error("expected item removed")
	}
	if len(store.List()) != 0 {
		t.Error("expected empty list")
	}

	// Removing twice is fine.
	store.Remove(item.ID)
}

func TestItemStore_Pending(t *testing.T) {
	store := NewItemStore()
	store.Replace([]warehouse.Item{pendingItem("111"), assignedItem("222"), pendingItem("333")})

	pending := store.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending items, got %d", len(pending))
	}
	for _, item := range pending {
		if !item.Location.Unassigned() {
			t.Errorf("item %s is not pending", item.Barcode)
		}
	}
}

func TestItemStore_SubscribeReceivesSnapshots(t *testing.T) {
	store := NewItemStore()
	ch := store.Subscribe()

	store.Add(pendingItem("111"))
	snapshot := <-ch
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 item in snapshot, got %d", len(snapshot))
	}

	// A slow consumer sees the freshest state, not every intermediate one.
	store.Add(pendingItem("222"))
	store.Add(pendingItem("333"))
	snapshot = <-ch
	if len(snapshot) != 3 {
		t.Fatalf("expected latest snapshot with 3 items, got %d", len(snapshot))
	}
}

func TestLocationStore_ReplaceAndGet(t *testing.T) {
	store := NewLocationStore()
	locs := []warehouse.Location{
		{ID: uuid.New(), Name: "Shelf A-1"},
		{ID: uuid.New(), Name: "Bin 7"},
	}
	store.Replace(locs)

	if got := store.List(); len(got) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(got))
	}
	loc, ok := store.Get(locs[1].ID)
	if !ok || loc.Name != "Bin 7" {
		t.Errorf("unexpected lookup result: %v %v", loc, ok)
	}

	store.Remove(locs[0].ID)
	if len(store.List()) != 1 {
		t.Error("expected 1 location after removal")
	}
}
