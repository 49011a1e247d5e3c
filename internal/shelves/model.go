package shelves

import (
	"database/sql"
	"time"

	"pantry-backend/internal/platform/db"
)

type Shelf struct {
	ID          string
	Location    string
	QRCode      string
	Description sql.NullString
	CreatedAt   time.Time
}

func (s Shelf) ToDTO() ShelfResponse {
	return ShelfResponse{
		ID:          s.ID,
		Location:    s.Location,
		QRCode:      s.QRCode,
		Description: db.StringPtr(s.Description),
		CreatedAt:   s.CreatedAt,
	}
}

// LabelRow: ラベル CSV の1行分
type LabelRow struct {
	Location    string
	QRCode      string
	Description string
}
