package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocationName is a value object representing a valid storage location name.
// Encapsulates validation rules: non-blank, at most 255 characters.
type LocationName string

const maxLocationNameLength = 255

// NewLocationName constructs a valid LocationName or returns an error if
// constraints are violated.
func NewLocationName(s string) (LocationName, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("location name must not be blank")
	}
	if len(s) > maxLocationNameLength {
		return "", fmt.Errorf("location name must not exceed %d characters", maxLocationNameLength)
	}
	return LocationName(s), nil
}

// String returns the underlying string value.
func (n LocationName) String() string {
	return string(n)
}

// Location is a physical storage place in the warehouse. ImageURL is empty
// until a photo upload succeeds.
type Location struct {
	ID          uuid.UUID
	Name        LocationName
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLocation constructs a valid Location aggregate with generated ID and
// current timestamps.
func NewLocation(name LocationName, description string) (*Location, error) {
	now := time.Now().UTC()
	return &Location{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
