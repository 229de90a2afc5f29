package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/imagestore"
	"github.com/ghuser/stocktrack/pkg/imaging"
	"github.com/ghuser/stocktrack/pkg/logger"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// CreateLocationParams carries the fields of a location create request.
// Image is optional; when set it is processed and stored before the record
// is persisted.
type CreateLocationParams struct {
	Name        string
	Description string
	Image       io.Reader
}

// UpdateLocationParams is a partial update. Nil pointer fields are left
// untouched. A new Image replaces the stored one; the old file is deleted
// best-effort.
type UpdateLocationParams struct {
	Name        *string
	Description *string
	Image       io.Reader
}

// LocationService orchestrates CRUD for storage locations, including photo
// processing and storage.
type LocationService struct {
	repo   repositories.LocationRepository
	images imagestore.Store
	log    logger.Logger
}

// NewLocationService returns a LocationService wired with the given
// repository and image store.
func NewLocationService(repo repositories.LocationRepository, images imagestore.Store, log logger.Logger) *LocationService {
	return &LocationService{repo: repo, images: images, log: log}
}

// Create validates and persists a Location. When an image is supplied it is
// downscaled, re-encoded, and stored first so the record always carries a
// working URL.
func (s *LocationService) Create(ctx context.Context, p CreateLocationParams) (*models.Location, error) {
	name, err := models.NewLocationName(p.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidLocationName, err)
	}

	loc, err := models.NewLocation(name, p.Description)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	if p.Image != nil {
		url, err := s.storeImage(ctx, p.Image)
		if err != nil {
			return nil, err
		}
		loc.ImageURL = url
	}

	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}
	return loc, nil
}

// GetByID retrieves a Location by ID.
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// List returns all locations, newest first.
func (s *LocationService) List(ctx context.Context) ([]*models.Location, error) {
	locs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locs, nil
}

// Update applies a partial update. A new image replaces the old one; the old
// file is removed best-effort after the record change succeeds.
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, p UpdateLocationParams) (*models.Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}

	if p.Name != nil {
		name, err := models.NewLocationName(*p.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidLocationName, err)
		}
		loc.Name = name
	}
	if p.Description != nil {
		loc.Description = *p.Description
	}

	oldImageURL := ""
	if p.Image != nil {
		url, err := s.storeImage(ctx, p.Image)
		if err != nil {
			return nil, err
		}
		oldImageURL = loc.ImageURL
		loc.ImageURL = url
	}
	loc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}

	if oldImageURL != "" {
		s.deleteImage(ctx, oldImageURL)
	}
	return loc, nil
}

// Delete removes a location. Items pointing at it drop back to the pending
// pool via the FK. The stored image is removed best-effort.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get location: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if loc.ImageURL != "" {
		s.deleteImage(ctx, loc.ImageURL)
	}
	return nil
}

func (s *LocationService) storeImage(ctx context.Context, r io.Reader) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("%w: image storage not configured", inventorydomain.ErrUnsupportedImage)
	}
	processed, err := imaging.Process(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", inventorydomain.ErrUnsupportedImage, err)
	}
	url, err := s.images.Save(ctx, processed.Data, processed.MIME)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}

// deleteImage removes a stored image and only logs failures. Orphaned files
// are preferable to failing the request that already changed the record.
func (s *LocationService) deleteImage(ctx context.Context, url string) {
	if s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.log.WarnContext(ctx, "delete location image", "url", url, "error", err)
	}
}
