package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Barcode is a value object representing a scanned or manually entered code.
// Uniqueness is deliberately not a constraint: repeat check-ins of the same
// physical product share a barcode.
type Barcode string

const maxBarcodeLength = 128

// NewBarcode constructs a valid Barcode or returns an error if constraints
// are violated. Surrounding whitespace is trimmed.
func NewBarcode(s string) (Barcode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("barcode must not be empty")
	}
	if len(s) > maxBarcodeLength {
		return "", fmt.Errorf("barcode must not exceed %d characters", maxBarcodeLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("barcode must not contain control characters")
		}
	}
	return Barcode(s), nil
}

// String returns the underlying string value.
func (b Barcode) String() string {
	return string(b)
}
