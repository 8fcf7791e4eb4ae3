package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
	"github.com/meinhoongagan/harmony-booking/utils"
)

// CreatePayment opens a payment for a booking. When no amount is given it
// defaults to the sum of the booked services' current prices.
func CreatePayment(c *fiber.Ctx) error {
	type PaymentInput struct {
		BookingID uint     `json:"booking_id"`
		Amount    *float64 `json:"amount"`
		Method    string   `json:"method"`
	}

	input := new(PaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID := c.Locals("userID").(uint)

	var b models.Booking
	if err := db.DB.Preload("Services.Service").First(&b, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if b.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only pay for your own bookings",
		})
	}

	if !b.IsActive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payments can only be made for active bookings",
		})
	}

	var existing models.Payment
	if db.DB.Where("booking_id = ? AND status != ?", b.ID, models.PaymentFailed).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A payment already exists for this booking",
		})
	}

	amount := 0.0
	if input.Amount != nil {
		amount = *input.Amount
	} else {
		for _, bs := range b.Services {
			amount += bs.Service.Price
		}
	}
	if amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment amount must be positive",
		})
	}

	method := input.Method
	if method == "" {
		method = "card"
	}

	payment := models.Payment{
		BookingID: b.ID,
		UserID:    userID,
		Amount:    amount,
		Method:    method,
		Status:    models.PaymentPending,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ProcessPayment settles a pending payment, issues the invoice and confirms
// the booking. There is no real gateway behind this; settlement always
// succeeds. Invoice email failures are logged, never surfaced.
func ProcessPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var payment models.Payment
	if err := db.DB.Preload("Booking").Preload("User").First(&payment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	if payment.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only process your own payments",
		})
	}

	if payment.Status != models.PaymentPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment is not pending",
		})
	}

	payment.Status = models.PaymentPaid
	if err := db.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update payment",
		})
	}

	invoice := models.Invoice{
		PaymentID:     payment.ID,
		InvoiceNumber: utils.GenerateInvoiceNumber(),
	}
	if err := db.DB.Create(&invoice).Error; err != nil {
		log.Printf("Failed to create invoice for payment %d: %v", payment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Payment processed but invoice creation failed",
		})
	}

	// A paid pending booking is confirmed automatically.
	if payment.Booking.Status == models.StatusPending {
		if err := payment.Booking.UpdateStatus(db.DB, models.StatusConfirmed); err != nil {
			log.Printf("Failed to confirm booking %d after payment: %v", payment.BookingID, err)
		}
	}

	if err := utils.SendInvoice(&payment.User, &payment, &invoice); err != nil {
		log.Printf("Failed to email invoice %s: %v", invoice.InvoiceNumber, err)
	}

	payment.Invoice = &invoice
	return c.JSON(payment)
}

// GetPayment returns one payment with its invoice.
func GetPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var payment models.Payment
	if err := db.DB.Preload("Booking").Preload("Invoice").First(&payment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	if payment.UserID != userID {
		allowed, err := utils.CheckBusinessPermission(userID, payment.Booking.BusinessID,
			models.BusinessRoleOwner, models.BusinessRoleManager)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check permissions",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have access to this payment",
			})
		}
	}

	return c.JSON(payment)
}

// GetUserPayments lists the authenticated user's payments.
func GetUserPayments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count payments",
		})
	}

	var payments []models.Payment
	if err := query.Preload("Invoice").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch payments",
		})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"meta":     utils.NewPaginationMeta(total, page, limit),
	})
}

// GetBusinessPayments lists payments taken at a business. Owner or manager only.
func GetBusinessPayments(c *fiber.Ctx) error {
	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	allowed, err := utils.CheckBusinessPermission(userID, uint(businessID),
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this business's payments",
		})
	}

	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Payment{}).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.business_id = ?", businessID)
	if status := c.Query("status"); status != "" {
		query = query.Where("payments.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count payments",
		})
	}

	var payments []models.Payment
	if err := query.Preload("Booking").Preload("Invoice").
		Order("payments.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch payments",
		})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"meta":     utils.NewPaginationMeta(total, page, limit),
	})
}
