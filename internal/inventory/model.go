package inventory

import (
	"database/sql"
	"time"

	"pantry-backend/internal/platform/db"
)

// Item は inventory_items テーブルの1行を表す
type Item struct {
	ID         string
	Name       string
	Category   string
	Quantity   int
	ExpiryDate sql.NullString // DATE → "YYYY-MM-DD"
	Notes      sql.NullString
	ShelfID    sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (it Item) ToDTO() ItemResponse {
	return ItemResponse{
		ID:         it.ID,
		Name:       it.Name,
		Category:   it.Category,
		Quantity:   it.Quantity,
		ExpiryDate: db.StringPtr(it.ExpiryDate),
		Notes:      db.StringPtr(it.Notes),
		ShelfID:    db.StringPtr(it.ShelfID),
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

func ToDTOs(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := 0; i < len(items); i++ {
		out = append(out, items[i].ToDTO())
	}
	return out
}
