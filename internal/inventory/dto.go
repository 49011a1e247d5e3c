package inventory

import "time"

const (
	DateLayout = "2006-01-02"

	// ダッシュボードの「在庫少」判定（quantity < LowStockThreshold）
	LowStockThreshold = 10
)

// ===== Requests =====

type CreateItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	Quantity   *int    `json:"quantity,omitempty"` // 未指定なら 0
	ExpiryDate *string `json:"expiry_date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	ShelfID    *string `json:"shelf_id,omitempty"`
}

// 空文字は NULL に戻す（expiry_date / notes / shelf_id）
type UpdateItemRequest struct {
	Name       *string `json:"name,omitempty"`
	Category   *string `json:"category,omitempty"`
	Quantity   *int    `json:"quantity,omitempty"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	ShelfID    *string `json:"shelf_id,omitempty"`
}

// ===== Responses =====

type ItemResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	ExpiryDate *string   `json:"expiry_date"`
	Notes      *string   `json:"notes"`
	ShelfID    *string   `json:"shelf_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// 変更系は必ず一覧を取り直して返す
type MutationResponse struct {
	Message string         `json:"message"`
	Item    *ItemResponse  `json:"item,omitempty"`
	Items   []ItemResponse `json:"items"`
}
