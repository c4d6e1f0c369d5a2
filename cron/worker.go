package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"barberbook/config"
	"barberbook/models"
	"barberbook/services/loyalty"
	"barberbook/services/notification"
	"barberbook/tasks"

	"github.com/hibiken/asynq"
)

// InitSideEffectWorker runs the asynq worker that executes queued side
// effects (push delivery, loyalty accrual) in the background. Handler
// failures are retried by asynq; they never touch the request path.
func InitSideEffectWorker(notifSvc notification.Service, loyaltySvc loyalty.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(notifSvc))
	mux.HandleFunc(tasks.TypeLoyaltyAward, handleLoyaltyTask(loyaltySvc))

	go func() {
		log.Println("[SideEffectWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SideEffectWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SideEffectWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handlePushTask(notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PushHandler] invalid payload: %v", err)
			return err
		}
		if err := notifSvc.SendPush(ctx, p.UserID, p.Title, p.Body, p.Data); err != nil {
			log.Printf("[PushHandler] failed to send push to user %s: %v", p.UserID, err)
			return err
		}
		return nil
	}
}

func handleLoyaltyTask(loyaltySvc loyalty.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.LoyaltyAwardPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[LoyaltyHandler] invalid payload: %v", err)
			return err
		}
		ledger, err := loyaltySvc.Award(ctx, p.UserID, p.Points, p.Description)
		if err != nil {
			log.Printf("[LoyaltyHandler] failed to award %d points to user %s: %v", p.Points, p.UserID, err)
			return err
		}
		log.Printf("[LoyaltyHandler] awarded %d points to user %s (balance %d)", p.Points, p.UserID, ledger.Points)
		return nil
	}
}
