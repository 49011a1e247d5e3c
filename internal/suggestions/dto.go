package suggestions

import "time"

// ===== Requests =====

// SubmitRequest: 公開フォーム（認証なし）
type SubmitRequest struct {
	Suggestion string `json:"suggestion" validate:"min=10,max=1000"`
	Name       string `json:"name" validate:"max=100"`
	Email      string `json:"email" validate:"omitempty,email,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ===== Responses =====

type SuggestionResponse struct {
	ID         string    `json:"id"`
	Suggestion string    `json:"suggestion"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Status     string    `json:"status"`
	Tone       string    `json:"tone"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	Total       int                  `json:"total"`
}

type MutationResponse struct {
	Message     string               `json:"message"`
	Suggestion  *SuggestionResponse  `json:"suggestion,omitempty"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type SubmitResponse struct {
	Message         string `json:"message"`
	RedirectTo      string `json:"redirect_to"`
	RedirectAfterMS int    `json:"redirect_after_ms"`
}
