package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/stocktrack/pkg/cache"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stocktrack/services/inventory/domain/services"
)

// CheckInParams carries the fields of a check-in request. Zero values mean
// "not provided": name and quantity fall back to the domain defaults.
type CheckInParams struct {
	Barcode    string
	Name       string
	Quantity   int
	Metadata   map[string]any
	LocationID *uuid.UUID
}

// UpdateItemParams is a partial update. Nil pointer fields are left untouched.
// LocationSet distinguishes "not provided" from an explicit null assignment.
type UpdateItemParams struct {
	Barcode     *string
	Name        *string
	Quantity    *int
	Metadata    map[string]any
	LocationSet bool
	LocationID  *uuid.UUID
}

// ItemService orchestrates check-in, retrieval, update, and deletion of Items.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type ItemService struct {
	repo      repositories.ItemRepository
	locations repositories.LocationRepository
	cache     *pkgcache.ItemCache
}

// NewItemService returns an ItemService wired with the given repositories and cache.
func NewItemService(repo repositories.ItemRepository, locations repositories.LocationRepository, itemCache *pkgcache.ItemCache) *ItemService {
	return &ItemService{repo: repo, locations: locations, cache: itemCache}
}

// CheckIn validates and persists an Item. The repository publishes
// ItemCheckedInEvent. A location supplied at check-in must already exist.
func (s *ItemService) CheckIn(ctx context.Context, p CheckInParams) (*models.Item, error) {
	barcode, err := models.NewBarcode(p.Barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidBarcode, err)
	}

	var quantity models.Quantity
	if p.Quantity != 0 {
		quantity, err = models.NewQuantity(p.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidQuantity, err)
		}
	}

	item, err := models.NewItem(barcode, p.Name, quantity, p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	if p.LocationID != nil {
		if _, err := s.locations.GetByID(ctx, *p.LocationID); err != nil {
			return nil, fmt.Errorf("check-in location: %w", err)
		}
		item.AssignLocation(*p.LocationID)
	}

	if err := domainsvcs.ValidateItemForCheckIn(item); err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidBarcode, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// Cached entries carry no metadata, so a cache hit falls back to Postgres
// when the caller needs the full record; the cache serves the hot
// barcode/name/quantity/location shape used by list views and the worker.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), cachedFromItem(item))
		}()
	}

	return item, nil
}

// GetCached serves the hot read model from Redis, falling back to Postgres on
// a miss. Used by consumers that only need the denormalized shape.
func (s *ItemService) GetCached(ctx context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			// Cache trouble is not a request failure; fall through to Postgres.
			_ = err
		}
	}

	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cachedFromItem(item), nil
}

// List returns items matching the filter, newest first.
func (s *ItemService) List(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	items, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update applies a partial update to an existing item. Assigning a location
// publishes ItemAssignedEvent via the repository transaction.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, p UpdateItemParams) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if p.Barcode != nil {
		barcode, err := models.NewBarcode(*p.Barcode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidBarcode, err)
		}
		item.Barcode = barcode
	}
	if p.Name != nil && *p.Name != "" {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		quantity, err := models.NewQuantity(*p.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidQuantity, err)
		}
		item.Quantity = quantity
	}
	if p.Metadata != nil {
		item.Metadata = p.Metadata
	}

	// assigned signals that a new location was attached this update; clears
	// do not count and publish no event.
	assigned := false
	if p.LocationSet {
		switch {
		case p.LocationID == nil:
			item.ClearLocation()
		case item.LocationID == nil || *item.LocationID != *p.LocationID:
			if _, err := s.locations.GetByID(ctx, *p.LocationID); err != nil {
				return nil, fmt.Errorf("assign location: %w", err)
			}
			item.AssignLocation(*p.LocationID)
			assigned = true
		}
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item, assigned); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if s.cache != nil {
		// Drop the stale entry; the next read or the worker re-warms it.
		_ = s.cache.Delete(context.Background(), id)
	}

	return item, nil
}

// Delete removes an item by ID. Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

// ExpandLocations fetches the locations referenced by the given items in one
// query, keyed by id. Used by handlers to serve items with the location
// expanded to the full object.
func (s *ItemService) ExpandLocations(ctx context.Context, items []*models.Item) (map[uuid.UUID]*models.Location, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, item := range items {
		if item.LocationID != nil && !seen[*item.LocationID] {
			seen[*item.LocationID] = true
			ids = append(ids, *item.LocationID)
		}
	}
	locs, err := s.locations.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand locations: %w", err)
	}
	return locs, nil
}

func cachedFromItem(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:         item.ID,
		Barcode:    item.Barcode.String(),
		Name:       item.Name,
		Quantity:   item.Quantity.Int(),
		ScannedAt:  item.ScannedAt,
		LocationID: item.LocationID,
	}
}
