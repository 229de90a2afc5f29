package checkin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/client/state"
	"github.com/ghuser/stocktrack/client/warehouse"
)

func TestWorkflow_CheckIn(t *testing.T) {
	itemID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/items" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["barcode"] != "4912345678904" {
			t.Errorf("unexpected barcode: %v", body["barcode"])
		}
		if body["quantity"] != float64(3) {
			t.Errorf("unexpected quantity: %v", body["quantity"])
		}
		if meta, ok := body["metadata"]; ok {
			t.Errorf("the barcode origin must stay client-side, got metadata %v", meta)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":       itemID,
			"barcode":  "4912345678904",
			"name":     "Item 4912345678904",
			"quantity": 3,
			"location": nil,
		})
	}))
	defer srv.Close()

	items := state.NewItemStore()
	wf := NewWorkflow(warehouse.New(srv.URL), items)

	item, err := wf.CheckIn(context.Background(), "4912345678904", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != itemID {
		t.Errorf("unexpected id: %v", item.ID)
	}
	if _, ok := items.Get(itemID); !ok {
		t.Error("expected item merged into the store")
	}
}

func TestWorkflow_CheckIn_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	items := state.NewItemStore()
	wf := NewWorkflow(warehouse.New(srv.URL), items)

	if _, err := wf.CheckIn(context.Background(), "bad", 1); err == nil {
		t.Fatal("expected error")
	}
	if len(items.List()) != 0 {
		t.Error("store must stay untouched on failure")
	}
}

func TestWorkflow_Refresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("unassigned"); got != "true" {
			t.Errorf("expected pending pool fetch, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":"` + uuid.NewString() + `","barcode":"111","location":null}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	items := state.NewItemStore()
	wf := NewWorkflow(warehouse.New(srv.URL), items)

	if err := wf.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items.Pending()) != 1 {
		t.Fatalf("expected 1 pending item, got %d", len(items.Pending()))
	}
}

func TestAssigner_Assign(t *testing.T) {
	itemID := uuid.New()
	locID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/items/"+itemID.String() {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if string(body["location"]) != `"`+locID.String()+`"` {
			t.Errorf("expected location id string, got %s", body["location"])
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":       itemID,
			"barcode":  "111",
			"location": map[string]any{"id": locID, "name": "Shelf A-1"},
		})
	}))
	defer srv.Close()

	items := state.NewItemStore()
	items.Add(warehouse.Item{ID: itemID, Barcode: "111"})
	a := NewAssigner(warehouse.New(srv.URL), items, state.NewLocationStore())

	item, err := a.Assign(context.Background(), itemID, locID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Location.Kind != warehouse.LocationExpanded {
		t.Errorf("expected expanded location, got %+v", item.Location)
	}
	if len(items.Pending()) != 0 {
		t.Error("expected item to leave the pending view")
	}
}

func TestAssigner_CreateAndAssign(t *testing.T) {
	itemID := uuid.New()
	locID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/locations":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": locID, "name": "New Shelf"}) //nolint:errcheck
		case r.Method == http.MethodPut && r.URL.Path == "/api/items/"+itemID.String():
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"id":       itemID,
				"barcode":  "111",
				"location": map[string]any{"id": locID, "name": "New Shelf"},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	items := state.NewItemStore()
	items.Add(warehouse.Item{ID: itemID, Barcode: "111"})
	locations := state.NewLocationStore()
	a := NewAssigner(warehouse.New(srv.URL), items, locations)

	item, err := a.CreateAndAssign(context.Background(), itemID, warehouse.CreateLocationParams{Name: "New Shelf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Location.ID != locID {
		t.Errorf("unexpected location: %+v", item.Location)
	}
	if _, ok := locations.Get(locID); !ok {
		t.Error("expected new location in the store")
	}
}

func TestAssigner_Search(t *testing.T) {
	locations := state.NewLocationStore()
	locations.Replace([]warehouse.Location{
		{ID: uuid.New(), Name: "Shelf A-1", Description: "near the door"},
		{ID: uuid.New(), Name: "Bin 7", Description: "overflow"},
	})
	a := NewAssigner(nil, state.NewItemStore(), locations)

	if got := a.Search(""); len(got) != 2 {
		t.Fatalf("empty term should return everything, got %d", len(got))
	}
	if got := a.Search("shelf"); len(got) != 1 || got[0].Name != "Shelf A-1" {
		t.Fatalf("unexpected name match: %v", got)
	}
	if got := a.Search("OVERFLOW"); len(got) != 1 || got[0].Name != "Bin 7" {
		t.Fatalf("unexpected description match: %v", got)
	}
	if got := a.Search("freezer"); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}
