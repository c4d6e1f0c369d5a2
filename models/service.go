package models

import "time"

// Service is a catalog entry owned by a barbershop. Read-only to the
// scheduling core; catalog CRUD lives elsewhere.
type Service struct {
	ID            string    `bson:"id" json:"id"`
	BarbershopID  string    `bson:"barbershop_id" json:"barbershopId"`
	Name          string    `bson:"name" json:"name"`
	Category      string    `bson:"category" json:"category"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Duration      int       `bson:"duration" json:"duration"` // minutes, 0 = unset
	Price         float64   `bson:"price" json:"price"`
	LoyaltyPoints int       `bson:"loyalty_points" json:"loyaltyPoints"`
	PersonnelIDs  []string  `bson:"personnel_ids" json:"personnelIds"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// DurationOrDefault returns the service duration in minutes, falling back
// to DefaultServiceMinutes when none is configured.
func (s *Service) DurationOrDefault() int {
	if s.Duration <= 0 {
		return DefaultServiceMinutes
	}
	return s.Duration
}

// Summary projects the fields embedded in expanded reservation responses.
func (s *Service) Summary() ServiceSummary {
	return ServiceSummary{
		ID:       s.ID,
		Name:     s.Name,
		Duration: s.DurationOrDefault(),
		Price:    s.Price,
	}
}
