package tasks

import (
	"encoding/json"

	"barberbook/models"

	"github.com/hibiken/asynq"
)

// Task types handled by the side-effect worker.
const (
	TypePushSend     = "push:send"
	TypeLoyaltyAward = "loyalty:award"
)

// NewPushTask builds the asynq task for one push notification.
func NewPushTask(payload models.PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(5)}
	return asynq.NewTask(TypePushSend, b), opts, nil
}

// NewLoyaltyAwardTask builds the asynq task for one loyalty accrual.
func NewLoyaltyAwardTask(payload models.LoyaltyAwardPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(5)}
	return asynq.NewTask(TypeLoyaltyAward, b), opts, nil
}
