package models

import "fmt"

// Quantity is a value object for the number of physical units checked in
// under one item record. The floor is 1 everywhere: an item record with zero
// units would not exist.
type Quantity int

// DefaultQuantity is used when a check-in does not state a quantity.
const DefaultQuantity Quantity = 1

// NewQuantity constructs a valid Quantity or returns an error when below 1.
func NewQuantity(n int) (Quantity, error) {
	if n < 1 {
		return 0, fmt.Errorf("quantity must be at least 1, got %d", n)
	}
	return Quantity(n), nil
}

// Int returns the underlying int value.
func (q Quantity) Int() int {
	return int(q)
}
