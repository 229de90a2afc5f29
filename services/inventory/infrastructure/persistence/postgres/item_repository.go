package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/database"
	"github.com/ghuser/stocktrack/pkg/events"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	domainevents "github.com/ghuser/stocktrack/services/inventory/domain/events"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus publishes domain events inside the same
// transaction as the row change (outbox pattern).
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

const itemColumns = `id, barcode, name, quantity, scanned_at, metadata, location_id, created_at, updated_at`

// Save persists a new Item and publishes an ItemCheckedInEvent within the
// same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, barcode, name, quantity, scanned_at, metadata, location_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.Barcode.String(), item.Name, item.Quantity.Int(),
			item.ScannedAt, metadata, item.LocationID, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCheckedIn(tx, item); err != nil {
				return fmt.Errorf("publish item checked in: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventorydomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// Find retrieves items matching the filter, newest first.
func (r *ItemRepository) Find(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var (
		conds []string
		args  []any
	)
	if filter.Unassigned {
		conds = append(conds, "location_id IS NULL")
	}
	if filter.Barcode != "" {
		args = append(args, filter.Barcode)
		conds = append(conds, fmt.Sprintf("barcode = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY scanned_at DESC"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Update persists changes to an existing Item. When assigned is true and the
// item now has a location, an ItemAssignedEvent is published within the same
// transaction. Returns ErrItemNotFound if the item does not exist.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item, assigned bool) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE items
			SET barcode = $2, name = $3, quantity = $4, metadata = $5, location_id = $6, updated_at = $7
			WHERE id = $1`,
			item.ID, item.Barcode.String(), item.Name, item.Quantity.Int(),
			metadata, item.LocationID, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update item rows affected: %w", err)
		}
		if n == 0 {
			return inventorydomain.ErrItemNotFound
		}

		if r.bus != nil && assigned && item.LocationID != nil {
			if err := r.publishAssigned(tx, item); err != nil {
				return fmt.Errorf("publish item assigned: %w", err)
			}
		}
		return nil
	})
}

// Delete removes an item by ID. Returns ErrItemNotFound if the item does not exist.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows affected: %w", err)
	}
	if n == 0 {
		return inventorydomain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) publishCheckedIn(tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemCheckedInEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		Barcode:    item.Barcode.String(),
		Name:       item.Name,
		Quantity:   item.Quantity.Int(),
		ScannedAt:  item.ScannedAt,
		OccurredAt: item.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicItemCheckedIn, event.EventID, event)
}

func (r *ItemRepository) publishAssigned(tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemAssignedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		LocationID: *item.LocationID,
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicItemAssigned, event.EventID, event)
}

func (r *ItemRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return b, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item       models.Item
		barcode    string
		quantity   int
		metadata   []byte
		locationID uuid.NullUUID
	)
	err := row.Scan(&item.ID, &barcode, &item.Name, &quantity, &item.ScannedAt,
		&metadata, &locationID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Barcode = models.Barcode(barcode)
	item.Quantity = models.Quantity(quantity)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &item.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	if locationID.Valid {
		id := locationID.UUID
		item.LocationID = &id
	}
	return &item, nil
}
