package models

import "time"

// LoyaltyEntry is one append-only line in a client's loyalty history.
type LoyaltyEntry struct {
	Description string    `bson:"description" json:"description"`
	Points      int       `bson:"points" json:"points"`
	Date        time.Time `bson:"date" json:"date"`
}

// Loyalty tracks a client's point balance. The balance is incremented
// atomically together with its history entry, so an award is applied
// exactly once per enqueue.
type Loyalty struct {
	UserID    string         `bson:"user_id" json:"userId"`
	Points    int            `bson:"points" json:"points"`
	History   []LoyaltyEntry `bson:"history" json:"history"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}
