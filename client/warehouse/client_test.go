package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestClient_CreateItem(t *testing.T) {
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
		if _, present := body["name"]; present {
			t.Error("zero name must be omitted so the server applies its default")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":       itemID,
			"barcode":  "4912345678904",
			"name":     "Item 4912345678904",
			"quantity": 1,
			"location": nil,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	item, err := c.CreateItem(context.Background(), CreateItemParams{Barcode: "4912345678904"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != itemID {
		t.Errorf("unexpected id: %v", item.ID)
	}
	if !item.Location.Unassigned() {
		t.Error("expected pending item")
	}
}

func TestClient_UpdateItem_AssignLocation(t *testing.T) {
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
			t.Errorf("expected location sent as id string, got %s", body["location"])
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":       itemID,
			"barcode":  "111",
			"location": map[string]any{"id": locID, "name": "Shelf A-1"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	item, err := c.UpdateItem(context.Background(), itemID, UpdateItemParams{
		Location: &LocationRef{Kind: LocationReference, ID: locID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Location.Kind != LocationExpanded || item.Location.ID != locID {
		t.Errorf("expected expanded location, got %+v", item.Location)
	}
}

func TestClient_ListItems_Unassigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("unassigned"); got != "true" {
			t.Errorf("expected unassigned=true, got %q", got)
		}
		w.Write([]byte(`[{"barcode":"111","location":null}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	items, err := c.ListItems(context.Background(), ItemListOptions{Unassigned: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Barcode != "111" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestClient_GetItem_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Item not found"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetItem(context.Background(), uuid.New())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.NotFound() || apiErr.Message != "Item not found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestClient_CreateItem_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed","errors":[{"field":"barcode","message":"This field is required"}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateItem(context.Background(), CreateItemParams{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Field != "barcode" {
		t.Errorf("unexpected field errors: %v", apiErr.Fields)
	}
}

func TestClient_CreateLocation_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart request, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("name"); got != "Shelf A-1" {
			t.Errorf("unexpected name: %q", got)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close() //nolint:errcheck
		if header.Filename != "shelf.jpg" {
			t.Errorf("unexpected filename: %q", header.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":       uuid.New(),
			"name":     "Shelf A-1",
			"imageUrl": "https://img.test/a.jpg",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	loc, err := c.CreateLocation(context.Background(), CreateLocationParams{
		Name:      "Shelf A-1",
		Image:     strings.NewReader("fake image bytes"),
		ImageName: "shelf.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ImageURL != "https://img.test/a.jpg" {
		t.Errorf("unexpected imageUrl: %q", loc.ImageURL)
	}
}

func TestClient_CreateLocation_JSONWhenNoImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON request, got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": uuid.New(), "name": "Bin 7"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.CreateLocation(context.Background(), CreateLocationParams{Name: "Bin 7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
