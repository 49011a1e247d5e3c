package shelves

import (
	"time"

	"pantry-backend/internal/inventory"
)

// ===== Requests =====

// ScanRequest: POST /scan
type ScanRequest struct {
	QRCode string `json:"qr_code"`
}

type CreateShelfRequest struct {
	Location    string  `json:"location" binding:"required"`
	QRCode      string  `json:"qr_code" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// ===== Responses =====

type ShelfResponse struct {
	ID          string    `json:"id"`
	Location    string    `json:"location"`
	QRCode      string    `json:"qr_code"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// 見つからない場合も 200 で found=false を返す
type ScanResponse struct {
	Found      bool                     `json:"found"`
	Shelf      *ShelfResponse           `json:"shelf"`
	Items      []inventory.ItemResponse `json:"items"`
	Message    string                   `json:"message"`
	DidYouMean []string                 `json:"did_you_mean,omitempty"`
}

type ListResponse struct {
	Shelves []ShelfResponse `json:"shelves"`
	Total   int             `json:"total"`
}
