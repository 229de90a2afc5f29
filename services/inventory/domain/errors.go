package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
// The not-found messages are part of the wire contract and must not change.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("Item not found")

	// ErrLocationNotFound indicates the requested location does not exist.
	ErrLocationNotFound = errors.New("Location not found")

	// ErrInvalidBarcode indicates the barcode violates domain constraints.
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrInvalidQuantity indicates a quantity below the floor of 1.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidLocationName indicates the location name violates domain constraints.
	ErrInvalidLocationName = errors.New("invalid location name")

	// ErrUnsupportedImage indicates an upload that is not a decodable JPEG or PNG.
	ErrUnsupportedImage = errors.New("unsupported image")
)
