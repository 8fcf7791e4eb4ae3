package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/meinhoongagan/harmony-booking/availability"
	"github.com/meinhoongagan/harmony-booking/models"
)

const dateFormat = "2006-01-02"

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Hours(ctx context.Context, businessID uint) (Hours, error) {
	var business models.Business
	err := g.db.WithContext(ctx).First(&business, businessID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Hours{}, ErrBusinessNotFound
	}
	if err != nil {
		return Hours{}, err
	}
	return Hours{Open: business.OpenTime, Close: business.CloseTime}, nil
}

func (g *GormStore) ServicesForBusiness(ctx context.Context, serviceIDs []uint, businessID uint) ([]availability.Service, error) {
	var services []models.Service
	err := g.db.WithContext(ctx).
		Where("id IN ? AND business_id = ?", serviceIDs, businessID).
		Find(&services).Error
	if err != nil {
		return nil, err
	}

	out := make([]availability.Service, 0, len(services))
	for _, s := range services {
		out = append(out, availability.Service{ID: s.ID, BusinessID: s.BusinessID, Duration: s.Duration})
	}
	return out, nil
}

func (g *GormStore) StaffWorksAt(ctx context.Context, staffID, businessID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.BusinessUser{}).
		Where("user_id = ? AND business_id = ?", staffID, businessID).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) ShiftFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Shift, error) {
	var schedule models.EmployeeSchedule
	err := g.db.WithContext(ctx).
		Where("employee_id = ? AND business_id = ? AND work_date = ?",
			staffID, businessID, date.Format(dateFormat)).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &availability.Shift{Start: schedule.StartTime, End: schedule.EndTime}, nil
}

func (g *GormStore) LeaveFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Leave, error) {
	var leave models.EmployeeLeave
	err := g.db.WithContext(ctx).
		Where("employee_id = ? AND business_id = ? AND leave_date = ?",
			staffID, businessID, date.Format(dateFormat)).
		First(&leave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &availability.Leave{Status: string(leave.Status)}, nil
}

func (g *GormStore) ActiveBookingsFor(ctx context.Context, staffID, businessID uint, date time.Time) ([]availability.BookingSlot, error) {
	var bookings []models.Booking
	err := g.db.WithContext(ctx).
		Joins("JOIN booking_assigned_staffs bas ON bas.booking_id = bookings.id AND bas.deleted_at IS NULL").
		Where("bas.staff_id = ? AND bookings.business_id = ? AND bookings.booking_date = ? AND bookings.status IN ?",
			staffID, businessID, date.Format(dateFormat), models.ActiveStatuses).
		Preload("Services").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	slots := make([]availability.BookingSlot, 0, len(bookings))
	for i := range bookings {
		slots = append(slots, availability.BookingSlot{
			ID:       bookings[i].ID,
			Start:    bookings[i].BookingTime,
			Duration: bookings[i].EffectiveDuration(),
		})
	}
	return slots, nil
}

func (g *GormStore) InsertBooking(ctx context.Context, nb NewBooking) (uint, error) {
	b := models.Booking{
		UserID:      nb.UserID,
		BusinessID:  nb.BusinessID,
		BookingDate: nb.Date,
		BookingTime: nb.Time,
		Status:      models.StatusPending,
	}
	if err := g.db.WithContext(ctx).Create(&b).Error; err != nil {
		return 0, err
	}

	lineItems := make([]models.BookingService, 0, len(nb.Services))
	for _, s := range nb.Services {
		lineItems = append(lineItems, models.BookingService{
			BookingID: b.ID,
			ServiceID: s.ID,
			Duration:  s.Duration, // snapshot, survives later service edits
		})
	}
	if err := g.db.WithContext(ctx).Create(&lineItems).Error; err != nil {
		return 0, err
	}

	if nb.StaffID != nil {
		assignment := models.BookingAssignedStaff{BookingID: b.ID, StaffID: *nb.StaffID}
		if err := g.db.WithContext(ctx).Create(&assignment).Error; err != nil {
			return 0, err
		}
	}
	return b.ID, nil
}

func (g *GormStore) AssignStaff(ctx context.Context, bookingID, staffID uint) error {
	err := g.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.BookingAssignedStaff{}).Error
	if err != nil {
		return err
	}
	assignment := models.BookingAssignedStaff{BookingID: bookingID, StaffID: staffID}
	return g.db.WithContext(ctx).Create(&assignment).Error
}

// WithSlotLock serializes concurrent booking attempts for one staff member
// and date with a transaction-scoped Postgres advisory lock. The lock key is
// (staff id, days since epoch); it is released automatically at commit or
// rollback. An exclusion constraint cannot back this up because a booking's
// interval is derived from its line items, not stored.
func (g *GormStore) WithSlotLock(ctx context.Context, staffID uint, date time.Time, fn func(Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if staffID != 0 {
			dayKey := int32(date.Unix() / 86400)
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(staffID), dayKey).Error; err != nil {
				return err
			}
		}
		return fn(&GormStore{db: tx})
	})
}
