package notification

import "context"

// Service defines push delivery to a user's stored device token.
type Service interface {
	// SendPush looks up the user's push token and delivers a notification.
	// A missing token is not an error; an invalid token is pruned from the
	// user record.
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}
