package models

import (
	"gorm.io/gorm"
)

// ServiceCategory groups services for catalog browsing (haircuts, massage,
// nails and so on). Categories are platform-wide, not per business.
type ServiceCategory struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Name     string    `json:"name" gorm:"unique;not null"`
	Services []Service `json:"services,omitempty" gorm:"foreignKey:CategoryID"`
}

type Service struct {
	gorm.Model
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Duration    int              `json:"duration"` // minutes, >= 1
	Price       float64          `json:"price"`
	ImageURL    string           `json:"image_url"`
	CategoryID  *uint            `json:"category_id"`
	Category    *ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BusinessID  uint             `json:"business_id"`
	Business    Business         `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
}

type ServiceReview struct {
	gorm.Model
	Rating    float64  `json:"rating" gorm:"type:decimal(2,1);not null"`
	Comment   string   `json:"comment"`
	ServiceID uint     `json:"service_id"`
	Service   Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	UserID    uint     `json:"user_id"`
	User      User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BookingID *uint    `json:"booking_id"` // optional link to a completed booking
}

// BeforeCreate clamps the rating into the 1.0-5.0 band.
func (r *ServiceReview) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1.0 {
		r.Rating = 1.0
	} else if r.Rating > 5.0 {
		r.Rating = 5.0
	}
	return nil
}

// HasExistingReview checks if the user already reviewed this service.
func (r *ServiceReview) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&ServiceReview{}).
		Where("user_id = ? AND service_id = ? AND deleted_at IS NULL", r.UserID, r.ServiceID).
		Count(&count).Error
	return count > 0, err
}
