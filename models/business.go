package models

import (
	"gorm.io/gorm"

	"github.com/meinhoongagan/harmony-booking/availability"
)

type Business struct {
	gorm.Model
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	OwnerID       uint                   `json:"owner_id"`
	Owner         User                   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Address       string                 `json:"address"`
	Phone         string                 `json:"phone"`
	LogoURL       string                 `json:"logo_url"`
	CoverImageURL string                 `json:"cover_image_url"`
	OpenTime      availability.TimeOfDay `json:"open_time" gorm:"type:time"`
	CloseTime     availability.TimeOfDay `json:"close_time" gorm:"type:time"`
	Services      []Service              `json:"services,omitempty" gorm:"foreignKey:BusinessID"`
	Employees     []BusinessUser         `json:"employees,omitempty" gorm:"foreignKey:BusinessID"`
}

// Business scoped employee roles.
const (
	BusinessRoleOwner   = "owner"
	BusinessRoleManager = "manager"
	BusinessRoleStaff   = "staff"
)

// BusinessUser records that a user works at a business. It says nothing
// about availability on any given day; that is EmployeeSchedule's job.
type BusinessUser struct {
	gorm.Model
	BusinessID uint     `json:"business_id"`
	Business   Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	UserID     uint     `json:"user_id"`
	User       User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Role       string   `json:"role" gorm:"type:varchar(20);default:staff"`
}
