package handlers

import (
	userRepoPkg "barberbook/database/repository/user"
)

// HandlerBundle groups the endpoint handlers and the repositories the
// route middleware depends on.
type HandlerBundle struct {
	UserRepo userRepoPkg.Repository

	Reservations *ReservationHandler
	BlockedSlots *BlockedSlotHandler
	Loyalty      *LoyaltyHandler
}
