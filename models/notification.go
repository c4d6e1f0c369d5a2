package models

// PushPayload is the asynq task payload for a queued push notification.
type PushPayload struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// LoyaltyAwardPayload is the asynq task payload for a queued loyalty
// point accrual.
type LoyaltyAwardPayload struct {
	UserID      string `json:"userId"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}
