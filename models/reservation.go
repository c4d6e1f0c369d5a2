package models

import "time"

// Reservation statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is a client's booking of one or more services with a specific
// personnel at a specific time. Cancellation flips the status; reservations
// are never hard-deleted.
type Reservation struct {
	ID           string    `bson:"id" json:"id"`
	ClientID     string    `bson:"client_id" json:"clientId"`
	PersonnelID  string    `bson:"personnel_id" json:"personnelId"`
	BarbershopID string    `bson:"barbershop_id" json:"barbershopId"`
	ServiceIDs   []string  `bson:"service_ids" json:"serviceIds"`
	Date         time.Time `bson:"date" json:"date"`
	EndTime      time.Time `bson:"end_time" json:"endTime"`
	Status       string    `bson:"status" json:"status"`
	Price        float64   `bson:"price" json:"price"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Interval returns the half-open window the reservation occupies.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.Date, End: r.EndTime}
}

// Occupies reports whether the reservation still holds its slot.
func (r *Reservation) Occupies() bool {
	return r.Status != StatusCancelled
}

// ServiceSummary is the projection of a service embedded in expanded
// reservation responses.
type ServiceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

// PersonSummary is the projection of a user embedded in expanded
// reservation responses.
type PersonSummary struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// ReservationView is the client-facing shape of a reservation with its
// service, personnel and client references expanded.
type ReservationView struct {
	Reservation
	Services  []ServiceSummary `json:"services"`
	Client    *PersonSummary   `json:"client,omitempty"`
	Personnel *PersonSummary   `json:"personnel,omitempty"`
}
