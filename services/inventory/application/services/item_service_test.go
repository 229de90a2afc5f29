package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// fakeItemRepo is an in-memory ItemRepository recording the arguments of the
// last Update call.
type fakeItemRepo struct {
	items map[uuid.UUID]*models.Item

	lastUpdateAssigned bool
	updateCalls        int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]*models.Item{}}
}

func (r *fakeItemRepo) Save(_ context.Context, item *models.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, inventorydomain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) Find(_ context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range r.items {
		if filter.Unassigned && item.LocationID != nil {
			continue
		}
		if filter.Barcode != "" && item.Barcode.String() != filter.Barcode {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *models.Item, assigned bool) error {
	if _, ok := r.items[item.ID]; !ok {
		return inventorydomain.ErrItemNotFound
	}
	r.items[item.ID] = item
	r.lastUpdateAssigned = assigned
	r.updateCalls++
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return inventorydomain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeLocationRepo is an in-memory LocationRepository.
type fakeLocationRepo struct {
	locations map[uuid.UUID]*models.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[uuid.UUID]*models.Location{}}
}

func (r *fakeLocationRepo) Save(_ context.Context, loc *models.Location) error {
	r.locations[loc.ID] = loc
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, inventorydomain.ErrLocationNotFound
	}
	copied := *loc
	return &copied, nil
}

func (r *fakeLocationRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Location, error) {
	out := map[uuid.UUID]*models.Location{}
	for _, id := range ids {
		if loc, ok := r.locations[id]; ok {
			out[id] = loc
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) FindAll(_ context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, loc := range r.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, loc *models.Location) error {
	if _, ok := r.locations[loc.ID]; !ok {
		return inventorydomain.ErrLocationNotFound
	}
	r.locations[loc.ID] = loc
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.locations[id]; !ok {
		return inventorydomain.ErrLocationNotFound
	}
	delete(r.locations, id)
	return nil
}

func mustAddLocation(t *testing.T, repo *fakeLocationRepo, name string) *models.Location {
	t.Helper()
	ln, err := models.NewLocationName(name)
	if err != nil {
		t.Fatalf("location name: %v", err)
	}
	loc, err := models.NewLocation(ln, "")
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	repo.locations[loc.ID] = loc
	return loc
}

func TestItemService_CheckIn_Defaults(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, newFakeLocationRepo(), nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "4912345678904"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Name != "Item 4912345678904" {
		t.Errorf("expected default name, got %q", item.Name)
	}
	if item.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", item.Quantity)
	}
	if !item.Pending() {
		t.Error("expected item pending")
	}
	if _, ok := repo.items[item.ID]; !ok {
		t.Error("expected item persisted")
	}
}

func TestItemService_CheckIn_InvalidBarcode(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeLocationRepo(), nil)

	_, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "   "})
	if !errors.Is(err, inventorydomain.ErrInvalidBarcode) {
		t.Fatalf("expected ErrInvalidBarcode, got %v", err)
	}
}

func TestItemService_CheckIn_InvalidQuantity(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeLocationRepo(), nil)

	_, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345", Quantity: -2})
	if !errors.Is(err, inventorydomain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestItemService_CheckIn_WithLocation(t *testing.T) {
	locRepo := newFakeLocationRepo()
	loc := mustAddLocation(t, locRepo, "Shelf A-1")
	svc := NewItemService(newFakeItemRepo(), locRepo, nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345", LocationID: &loc.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.LocationID == nil || *item.LocationID != loc.ID {
		t.Fatalf("expected location assigned, got %v", item.LocationID)
	}
}

func TestItemService_CheckIn_UnknownLocation(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeLocationRepo(), nil)

	missing := uuid.New()
	_, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345", LocationID: &missing})
	if !errors.Is(err, inventorydomain.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestItemService_Update_AssignLocation(t *testing.T) {
	repo := newFakeItemRepo()
	locRepo := newFakeLocationRepo()
	loc := mustAddLocation(t, locRepo, "Shelf A-1")
	svc := NewItemService(repo, locRepo, nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345"})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	updated, err := svc.Update(context.Background(), item.ID, UpdateItemParams{
		LocationSet: true,
		LocationID:  &loc.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LocationID == nil || *updated.LocationID != loc.ID {
		t.Fatalf("expected location assigned, got %v", updated.LocationID)
	}
	if !repo.lastUpdateAssigned {
		t.Error("expected the assignment to be signalled to the repository")
	}
}

func TestItemService_Update_ClearLocation(t *testing.T) {
	repo := newFakeItemRepo()
	locRepo := newFakeLocationRepo()
	loc := mustAddLocation(t, locRepo, "Shelf A-1")
	svc := NewItemService(repo, locRepo, nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345", LocationID: &loc.ID})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	updated, err := svc.Update(context.Background(), item.ID, UpdateItemParams{LocationSet: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LocationID != nil {
		t.Fatalf("expected location cleared, got %v", updated.LocationID)
	}
	if repo.lastUpdateAssigned {
		t.Error("clearing a location must not signal an assignment")
	}
}

func TestItemService_Update_LocationOmitted(t *testing.T) {
	repo := newFakeItemRepo()
	locRepo := newFakeLocationRepo()
	loc := mustAddLocation(t, locRepo, "Shelf A-1")
	svc := NewItemService(repo, locRepo, nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345", LocationID: &loc.ID})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	name := "Renamed"
	updated, err := svc.Update(context.Background(), item.ID, UpdateItemParams{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected name updated, got %q", updated.Name)
	}
	if updated.LocationID == nil || *updated.LocationID != loc.ID {
		t.Error("omitting the location field must not touch the assignment")
	}
}

func TestItemService_Update_NotFound(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeLocationRepo(), nil)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateItemParams{})
	if !errors.Is(err, inventorydomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Delete(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, newFakeLocationRepo(), nil)

	item, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "12345"})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), item.ID); !errors.Is(err, inventorydomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestItemService_ExpandLocations(t *testing.T) {
	locRepo := newFakeLocationRepo()
	loc := mustAddLocation(t, locRepo, "Shelf A-1")
	svc := NewItemService(newFakeItemRepo(), locRepo, nil)

	assigned, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "111", LocationID: &loc.ID})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	pending, err := svc.CheckIn(context.Background(), CheckInParams{Barcode: "222"})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	locs, err := svc.ExpandLocations(context.Background(), []*models.Item{assigned, pending})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locs))
	}
	if got, ok := locs[loc.ID]; !ok || got.Name != loc.Name {
		t.Fatalf("expected %q in map, got %v", loc.Name, locs)
	}
}
