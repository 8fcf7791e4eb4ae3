package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/availability"
	"github.com/meinhoongagan/harmony-booking/booking"
	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
	"github.com/meinhoongagan/harmony-booking/utils"
)

// CreateBooking books one or more services at a business, optionally with a
// specific staff member. The slot is checked and reserved atomically by the
// booking package; a rejection comes back with the reason.
func CreateBooking(c *fiber.Ctx) error {
	type BookingInput struct {
		BusinessID  uint   `json:"business_id"`
		BookingDate string `json:"booking_date"` // YYYY-MM-DD
		BookingTime string `json:"booking_time"` // HH:MM
		Services    []uint `json:"services"`
		StaffID     *uint  `json:"staff_id"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	date, err := time.Parse("2006-01-02", input.BookingDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking_date, expected YYYY-MM-DD",
		})
	}

	startTime, err := availability.ParseTimeOfDay(input.BookingTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking_time, expected HH:MM",
		})
	}

	if len(input.Services) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one service is required",
		})
	}

	userID := c.Locals("userID").(uint)

	creator := booking.NewCreator(booking.NewGormStore(db.DB))
	bookingID, err := creator.Create(c.Context(), booking.Request{
		UserID:     userID,
		BusinessID: input.BusinessID,
		Date:       date,
		Time:       startTime,
		ServiceIDs: input.Services,
		StaffID:    input.StaffID,
	})
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":  rej.Reason.Message(),
				"reason": string(rej.Reason),
			})
		}
		if err == booking.ErrBusinessNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business not found",
			})
		}
		if err == booking.ErrStaffNotEmployed {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Selected staff does not work for this business",
			})
		}
		log.Printf("Error creating booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create booking",
		})
	}

	var created models.Booking
	if err := db.DB.Preload("Services.Service").Preload("AssignedStaff").First(&created, bookingID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Booking created but could not be loaded",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAvailableSlots lists the start times that would be accepted for the given
// business, date, services and optional staff member.
func GetAvailableSlots(c *fiber.Ctx) error {
	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	var serviceIDs []uint
	for _, raw := range c.Context().QueryArgs().PeekMulti("services") {
		id, err := strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid service ID",
			})
		}
		serviceIDs = append(serviceIDs, uint(id))
	}
	if len(serviceIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one service is required",
		})
	}

	var staffID *uint
	if raw := c.Query("staff_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid staff ID",
			})
		}
		parsed := uint(id)
		staffID = &parsed
	}

	step := c.QueryInt("step", 15)

	creator := booking.NewCreator(booking.NewGormStore(db.DB))
	slots, err := creator.AvailableSlots(c.Context(), booking.Request{
		BusinessID: uint(businessID),
		Date:       date,
		ServiceIDs: serviceIDs,
		StaffID:    staffID,
	}, step)
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": rej.Reason.Message(),
			})
		}
		if err == booking.ErrBusinessNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business not found",
			})
		}
		log.Printf("Error listing slots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list available slots",
		})
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}

	return c.JSON(fiber.Map{
		"date":  c.Query("date"),
		"slots": out,
	})
}

// GetUserBookings lists the authenticated user's bookings, newest first
func GetUserBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Booking{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count bookings",
		})
	}

	var bookings []models.Booking
	if err := query.
		Preload("Business").
		Preload("Services.Service").
		Preload("AssignedStaff.Staff").
		Order("booking_date DESC, booking_time DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"meta":     utils.NewPaginationMeta(total, page, limit),
	})
}

// GetBooking returns one booking. Only the customer, someone with a role at
// the business, or an admin may view it.
func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var b models.Booking
	if err := db.DB.
		Preload("Business").
		Preload("Services.Service").
		Preload("AssignedStaff.Staff").
		Preload("Payment").
		First(&b, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if b.UserID != userID {
		allowed, err := utils.CheckBusinessPermission(userID, b.BusinessID,
			models.BusinessRoleOwner, models.BusinessRoleManager, models.BusinessRoleStaff)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check permissions",
			})
		}
		if !allowed {
			if isAdmin, _ := utils.CheckAdminRole(userID); !isAdmin {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "You don't have access to this booking",
				})
			}
		}
	}

	return c.JSON(b)
}

// GetBusinessBookings lists a business's bookings for its owner, managers and
// staff, optionally filtered by status and date.
func GetBusinessBookings(c *fiber.Ctx) error {
	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	allowed, err := utils.CheckBusinessPermission(userID, uint(businessID),
		models.BusinessRoleOwner, models.BusinessRoleManager, models.BusinessRoleStaff)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this business's bookings",
		})
	}

	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Booking{}).Where("business_id = ?", businessID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("booking_date = ?", date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count bookings",
		})
	}

	var bookings []models.Booking
	if err := query.
		Preload("User").
		Preload("Services.Service").
		Preload("AssignedStaff.Staff").
		Order("booking_date ASC, booking_time ASC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"meta":     utils.NewPaginationMeta(total, page, limit),
	})
}

// UpdateBookingStatus moves a booking through its lifecycle. Only the business
// side may confirm or complete; confirmation triggers a notification to the
// customer.
func UpdateBookingStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var b models.Booking
	if err := db.DB.Preload("User").Preload("Business").First(&b, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	allowed, err := utils.CheckBusinessPermission(userID, b.BusinessID,
		models.BusinessRoleOwner, models.BusinessRoleManager, models.BusinessRoleStaff)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this booking",
		})
	}

	if err := b.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Status == models.StatusConfirmed {
		if err := utils.SendBookingConfirmation(&b.User, &b, &b.Business); err != nil {
			log.Printf("Failed to send confirmation email for booking %d: %v", b.ID, err)
		}
		if b.User.Phone != "" {
			if err := utils.SendBookingConfirmationSMS(&b.User, &b, &b.Business); err != nil {
				log.Printf("Failed to send confirmation SMS for booking %d: %v", b.ID, err)
			}
		}
	}

	return c.JSON(b)
}

// CancelBooking cancels a booking. The customer may cancel their own booking;
// the business side may cancel any booking at the business.
func CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var b models.Booking
	if err := db.DB.First(&b, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if b.UserID != userID {
		allowed, err := utils.CheckBusinessPermission(userID, b.BusinessID,
			models.BusinessRoleOwner, models.BusinessRoleManager)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check permissions",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to cancel this booking",
			})
		}
	}

	if !b.CanBeCancelled() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Booking can no longer be cancelled",
		})
	}

	if err := b.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel booking",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Booking cancelled successfully",
		"booking": b,
	})
}

// AssignStaffToBooking assigns (or reassigns) staff to an existing booking.
// The new staff member's availability is re-checked against the booking's slot
// before the assignment lands.
func AssignStaffToBooking(c *fiber.Ctx) error {
	type AssignInput struct {
		StaffID uint `json:"staff_id"`
	}

	input := new(AssignInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var b models.Booking
	if err := db.DB.Preload("Services").First(&b, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	allowed, err := utils.CheckBusinessPermission(userID, b.BusinessID,
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to assign staff",
		})
	}

	if !b.IsActive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Staff can only be assigned to active bookings",
		})
	}

	services := make([]availability.Service, 0, len(b.Services))
	for _, bs := range b.Services {
		services = append(services, availability.Service{
			ID:         bs.ServiceID,
			BusinessID: b.BusinessID,
			Duration:   bs.Duration,
		})
	}

	creator := booking.NewCreator(booking.NewGormStore(db.DB))
	err = creator.Reassign(c.Context(), booking.ReassignRequest{
		BookingID:  b.ID,
		BusinessID: b.BusinessID,
		Date:       b.BookingDate,
		Time:       b.BookingTime,
		Services:   services,
		StaffID:    input.StaffID,
	})
	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":  rej.Reason.Message(),
				"reason": string(rej.Reason),
			})
		}
		if err == booking.ErrStaffNotEmployed {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Selected staff does not work for this business",
			})
		}
		log.Printf("Error assigning staff to booking %d: %v", b.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign staff",
		})
	}

	if err := db.DB.Preload("AssignedStaff.Staff").First(&b, b.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Staff assigned but booking could not be loaded",
		})
	}

	return c.JSON(b)
}
