package checkin

import "sync"

// Confirmation is the quantity prompt for one detection. The count starts at
// 1 and can never go below it: decrementing at 1 is a no-op and a direct set
// below 1 clamps to 1.
type Confirmation struct {
	mu        sync.Mutex
	detection Detection
	quantity  int
}

// NewConfirmation starts a confirmation for the given detection.
func NewConfirmation(d Detection) *Confirmation {
	return &Confirmation{detection: d, quantity: 1}
}

// Detection returns the barcode being confirmed.
func (c *Confirmation) Detection() Detection {
	return c.detection
}

// Quantity returns the current count.
func (c *Confirmation) Quantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantity
}

// Increment adds one unit.
func (c *Confirmation) Increment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantity++
}

// Decrement removes one unit, stopping at the floor of 1.
func (c *Confirmation) Decrement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quantity > 1 {
		c.quantity--
	}
}

// Set replaces the count, clamping anything below 1 to 1.
func (c *Confirmation) Set(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	c.quantity = n
}

// Confirm returns the final (barcode, quantity) pair exactly once per
// confirmation; the workflow turns it into one check-in request.
func (c *Confirmation) Confirm() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detection.Barcode, c.quantity
}
