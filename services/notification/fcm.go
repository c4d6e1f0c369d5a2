package notification

import (
	"context"
	"fmt"

	userRepo "barberbook/database/repository/user"
	"barberbook/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService delivers pushes through Firebase Cloud Messaging.
type FCMNotificationService struct {
	Users  userRepo.Repository
	Client *messaging.Client
}

func NewFCMNotificationService(users userRepo.Repository, client *messaging.Client) (*FCMNotificationService, error) {
	if users == nil || client == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository or FCM client is nil")
	}
	return &FCMNotificationService{Users: users, Client: client}, nil
}

// SendPush looks up the user's push token and sends the message. Users
// without a token are skipped silently; tokens FCM reports as unregistered
// are cleared from the user record so they are not retried forever.
func (s *FCMNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if u.PushToken == "" {
		logger.Warn("SendPush: user has no push token", zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.PushToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	if _, err := s.Client.Send(ctx, msg); err != nil {
		if messaging.IsUnregistered(err) {
			if clearErr := s.Users.ClearPushToken(ctx, userID); clearErr != nil {
				logger.Error("SendPush: failed to clear stale push token",
					zap.String("userId", userID), zap.Error(clearErr))
			} else {
				logger.Info("SendPush: cleared stale push token", zap.String("userId", userID))
			}
			return nil
		}
		return fmt.Errorf("SendPush: failed to send FCM message to user %s: %w", userID, err)
	}
	return nil
}
