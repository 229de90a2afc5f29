package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultItemName(t *testing.T) {
	barcode, _ := NewBarcode("4912345678904")
	if got := DefaultItemName(barcode); got != "Item 4912345678904" {
		t.Fatalf("expected %q, got %q", "Item 4912345678904", got)
	}
}

func TestNewItem_Defaults(t *testing.T) {
	barcode, _ := NewBarcode("4912345678904")

	item, err := NewItem(barcode, "", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Name != "Item 4912345678904" {
		t.Errorf("expected default name, got %q", item.Name)
	}
	if item.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", item.Quantity)
	}
	if item.ScannedAt.IsZero() {
		t.Error("expected scannedAt to be set")
	}
	if !item.Pending() {
		t.Error("expected a fresh item to be pending")
	}
	if item.ID == uuid.Nil {
		t.Error("expected generated id")
	}
}

func TestNewItem_ExplicitValues(t *testing.T) {
	barcode, _ := NewBarcode("12345")
	meta := map[string]any{"source": "manual"}

	item, err := NewItem(barcode, "Widget", 3, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Name != "Widget" {
		t.Errorf("expected explicit name kept, got %q", item.Name)
	}
	if item.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", item.Quantity)
	}
	if item.Metadata["source"] != "manual" {
		t.Errorf("expected metadata carried through, got %v", item.Metadata)
	}
}

func TestItem_AssignAndClearLocation(t *testing.T) {
	barcode, _ := NewBarcode("12345")
	item, _ := NewItem(barcode, "", 0, nil)

	locID := uuid.New()
	item.AssignLocation(locID)
	if item.Pending() {
		t.Fatal("expected item not pending after assignment")
	}
	if *item.LocationID != locID {
		t.Fatalf("expected location %v, got %v", locID, *item.LocationID)
	}

	item.ClearLocation()
	if !item.Pending() {
		t.Fatal("expected item pending after clear")
	}
}
