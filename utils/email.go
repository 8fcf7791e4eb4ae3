package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"

	"github.com/meinhoongagan/harmony-booking/models"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendBookingConfirmation emails the customer their booking details.
func SendBookingConfirmation(user *models.User, booking *models.Booking, business *models.Business) error {
	subject := fmt.Sprintf("Booking Confirmation - %s", business.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking at <strong>%s</strong> has been received.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, please contact us as soon as possible.</p>
		<p>Thank you for choosing Harmony!</p>
	`, user.Name, business.Name,
		booking.BookingDate.Format("2006-01-02"),
		booking.BookingTime.String(),
		booking.Status,
		business.Address)

	return SendEmail(user.Email, subject, body)
}

// SendBookingReminder emails the customer ahead of their booking.
func SendBookingReminder(user *models.User, booking *models.Booking, business *models.Business) error {
	subject := fmt.Sprintf("Reminder: Upcoming Booking - %s", business.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming booking at <strong>%s</strong> scheduled in one hour.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>Please arrive on time. We look forward to seeing you!</p>
		<p>Best regards,</p>
		<p>The Harmony Team</p>
	`, user.Name, business.Name,
		booking.BookingDate.Format("2006-01-02"),
		booking.BookingTime.String(),
		business.Address)

	return SendEmail(user.Email, subject, body)
}

// SendInvoice emails the customer their paid invoice.
func SendInvoice(user *models.User, payment *models.Payment, invoice *models.Invoice) error {
	subject := fmt.Sprintf("Your Invoice %s", invoice.InvoiceNumber)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your payment of <strong>%.2f</strong>.</p>
		<ul>
			<li><strong>Invoice Number:</strong> %s</li>
			<li><strong>Invoice:</strong> <a href="%s">%s</a></li>
		</ul>
		<p>Best regards,</p>
		<p>The Harmony Team</p>
	`, user.Name, payment.Amount, invoice.InvoiceNumber, invoice.InvoiceURL, invoice.InvoiceURL)

	return SendEmail(user.Email, subject, body)
}

// SendPasswordResetCode emails the user their reset code.
func SendPasswordResetCode(user *models.User, code string) error {
	subject := "Your Password Reset Code"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your password reset code is <strong>%s</strong>. It expires in 5 minutes.</p>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, user.Name, code)

	return SendEmail(user.Email, subject, body)
}
