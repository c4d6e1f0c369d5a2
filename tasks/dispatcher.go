package tasks

import (
	"barberbook/config"
	"barberbook/models"
	"barberbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher queues side effects on Redis so the request path returns
// as soon as the primary write commits. Enqueue failures are logged and
// swallowed; a lost notification must never fail a committed reservation.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher creates a dispatcher over the configured Redis queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client}
}

// EnqueuePush queues a push notification for the user.
func (d *AsynqDispatcher) EnqueuePush(userID, title, body string, data map[string]string) {
	task, opts, err := NewPushTask(models.PushPayload{
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	})
	if err != nil {
		utils.GetLogger().Error("failed to build push task", zap.String("userId", userID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue push task", zap.String("userId", userID), zap.Error(err))
	}
}

// EnqueueLoyaltyAward queues a loyalty accrual for the user.
func (d *AsynqDispatcher) EnqueueLoyaltyAward(userID string, points int, description string) {
	task, opts, err := NewLoyaltyAwardTask(models.LoyaltyAwardPayload{
		UserID:      userID,
		Points:      points,
		Description: description,
	})
	if err != nil {
		utils.GetLogger().Error("failed to build loyalty task", zap.String("userId", userID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue loyalty task", zap.String("userId", userID), zap.Error(err))
	}
}

// Close releases the underlying asynq client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
