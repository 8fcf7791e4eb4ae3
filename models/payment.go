package models

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	gorm.Model
	BookingID uint          `json:"booking_id"`
	Booking   Booking       `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	UserID    uint          `json:"user_id"`
	User      User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Amount    float64       `json:"amount"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(20);default:pending"`
	Invoice   *Invoice      `json:"invoice,omitempty" gorm:"foreignKey:PaymentID"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}

type Invoice struct {
	gorm.Model
	PaymentID     uint   `json:"payment_id"`
	InvoiceNumber string `json:"invoice_number" gorm:"unique"`
	InvoiceURL    string `json:"invoice_url"`
}
