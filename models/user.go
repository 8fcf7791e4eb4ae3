package models

import (
	"time"
)

type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Name              string     `json:"name"`
	Email             string     `json:"email" gorm:"unique"`
	Password          string     `json:"password,omitempty"`
	Phone             string     `json:"phone"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	RoleID            uint       `json:"role_id"`
	Role              Role       `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	OwnedBusinesses   []Business `json:"owned_businesses,omitempty" gorm:"foreignKey:OwnerID"`
	Bookings          []Booking  `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user's global role is the admin role. Business
// scoped roles (owner/manager/staff) live on BusinessUser.
func (u *User) IsAdmin() bool {
	return u.Role.Name == "admin"
}
