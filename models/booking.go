package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/meinhoongagan/harmony-booking/availability"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ActiveStatuses are the statuses that block new bookings during conflict
// detection. Completed and cancelled bookings never block.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

type Booking struct {
	gorm.Model
	UserID        uint                   `json:"user_id"`
	User          User                   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessID    uint                   `json:"business_id"`
	Business      Business               `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	BookingDate   time.Time              `json:"booking_date" gorm:"type:date"`
	BookingTime   availability.TimeOfDay `json:"booking_time" gorm:"type:time"`
	Status        BookingStatus          `json:"status" gorm:"type:varchar(20);default:pending"`
	Services      []BookingService       `json:"services,omitempty" gorm:"foreignKey:BookingID"`
	AssignedStaff *BookingAssignedStaff  `json:"assigned_staff,omitempty" gorm:"foreignKey:BookingID"`
	Payment       *Payment               `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// IsActive reports whether the booking still blocks its staff's slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled reports whether the booking may still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// EffectiveDuration is the booking's duration in minutes, derived by summing
// its line items. It is never stored on the booking itself.
func (b *Booking) EffectiveDuration() int {
	total := 0
	for _, bs := range b.Services {
		total += bs.Duration
	}
	return total
}

// UpdateStatus enforces the booking lifecycle: pending may confirm or cancel,
// confirmed may complete or cancel, completed and cancelled are terminal.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}

	b.Status = newStatus
	return tx.Save(b).Error
}

// BookingService is a line item linking a booking to a service. Duration is
// snapshotted from the service at creation time so later service edits do not
// retroactively change past bookings.
type BookingService struct {
	gorm.Model
	BookingID uint    `json:"booking_id"`
	ServiceID uint    `json:"service_id"`
	Service   Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Duration  int     `json:"duration"`
}

// BookingAssignedStaff is the optional 0-or-1 staff assignment for a booking.
// A booking without one is not subject to staff conflict checks.
type BookingAssignedStaff struct {
	gorm.Model
	BookingID uint `json:"booking_id"`
	StaffID   uint `json:"staff_id"`
	Staff     User `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
}
