package models

import "time"

// User roles.
const (
	RoleClient    = "client"
	RolePersonnel = "personnel"
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
)

// User is the account record shared by clients, personnel, owners and
// admins. The scheduling core reads it for validation and display and only
// ever writes the push token field.
type User struct {
	ID              string    `bson:"id" json:"id"`
	FirstName       string    `bson:"first_name" json:"firstName"`
	LastName        string    `bson:"last_name" json:"lastName"`
	Phone           string    `bson:"phone" json:"phone"`
	Email           string    `bson:"email" json:"email"`
	Role            string    `bson:"role" json:"role"`
	BarbershopID    string    `bson:"barbershop_id,omitempty" json:"barbershopId,omitempty"`
	ProfileImageURL string    `bson:"profile_image_url,omitempty" json:"profileImageUrl,omitempty"`
	PushToken       string    `bson:"push_token,omitempty" json:"-"`
	IsActive        bool      `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Summary projects the fields embedded in expanded reservation responses.
func (u *User) Summary() PersonSummary {
	return PersonSummary{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		ProfileImageURL: u.ProfileImageURL,
	}
}
