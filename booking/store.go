package booking

import (
	"context"
	"time"

	"github.com/meinhoongagan/harmony-booking/availability"
)

// Hours are a business's daily operating window.
type Hours struct {
	Open  availability.TimeOfDay
	Close availability.TimeOfDay
}

// NewBooking is everything the store needs to persist an accepted booking:
// the booking row, one line item per service with its duration snapshot, and
// the optional staff assignment.
type NewBooking struct {
	UserID     uint
	BusinessID uint
	Date       time.Time
	Time       availability.TimeOfDay
	Services   []availability.Service
	StaffID    *uint
}

// Store is the booking data access layer. Every method returns plain values
// so the resolver never touches a live persistence handle.
type Store interface {
	// Hours returns the operating window, or ErrBusinessNotFound.
	Hours(ctx context.Context, businessID uint) (Hours, error)

	// ServicesForBusiness returns the requested services that belong to the
	// business. Missing or foreign ids are simply absent from the result.
	ServicesForBusiness(ctx context.Context, serviceIDs []uint, businessID uint) ([]availability.Service, error)

	// StaffWorksAt reports whether the user is an employee of the business.
	StaffWorksAt(ctx context.Context, staffID, businessID uint) (bool, error)

	// ShiftFor returns the staff shift for the date, or nil when the staff
	// member is not scheduled that day.
	ShiftFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Shift, error)

	// LeaveFor returns the staff leave row for the date regardless of its
	// status, or nil when none exists.
	LeaveFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Leave, error)

	// ActiveBookingsFor returns the staff member's pending and confirmed
	// bookings for the business and date, each with its derived duration.
	ActiveBookingsFor(ctx context.Context, staffID, businessID uint, date time.Time) ([]availability.BookingSlot, error)

	// InsertBooking persists the booking, its line items and the staff
	// assignment, returning the new booking id.
	InsertBooking(ctx context.Context, nb NewBooking) (uint, error)

	// AssignStaff sets the booking's staff assignment, replacing any
	// existing one.
	AssignStaff(ctx context.Context, bookingID, staffID uint) error

	// WithSlotLock runs fn against a store view inside a critical section
	// scoped to (staffID, date), closing the race between the conflict scan
	// and the insert. Two concurrent calls for the same staff and date never
	// interleave between fact gathering and persistence. staffID 0 means no
	// staff is involved and no serialization is required.
	WithSlotLock(ctx context.Context, staffID uint, date time.Time, fn func(Store) error) error
}
