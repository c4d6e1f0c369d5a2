package models

import "time"

// BlockedSlot is a time window a personnel (or an admin, shop-wide) marks
// unavailable, independent of any client booking. Unlike reservations,
// blocked slots are physically removed on unblock.
type BlockedSlot struct {
	ID           string    `bson:"id" json:"id"`
	PersonnelID  string    `bson:"personnel_id" json:"personnelId"`
	BarbershopID string    `bson:"barbershop_id" json:"barbershopId"`
	Date         time.Time `bson:"date" json:"date"`
	EndTime      time.Time `bson:"end_time" json:"endTime"`
	IsMonthly    bool      `bson:"is_monthly" json:"isMonthly"`
	IsAdminBlock bool      `bson:"is_admin_block" json:"isAdminBlock"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Interval returns the half-open window the blocked slot occupies.
func (b *BlockedSlot) Interval() Interval {
	return Interval{Start: b.Date, End: b.EndTime}
}
