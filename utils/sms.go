package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/meinhoongagan/harmony-booking/models"
)

var smsClient = &http.Client{Timeout: 10 * time.Second}

// SendSMS sends a text through the Twilio Messages REST endpoint.
func SendSMS(to, body string) error {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if accountSID == "" || authToken == "" {
		return fmt.Errorf("twilio credentials not configured")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(accountSID, authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := smsClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}
	return nil
}

// SendBookingConfirmationSMS texts the customer their booking confirmation.
func SendBookingConfirmationSMS(user *models.User, booking *models.Booking, business *models.Business) error {
	if user.Phone == "" {
		return fmt.Errorf("user has no phone number")
	}
	body := fmt.Sprintf("Harmony: Your booking at %s has been confirmed. Date: %s Time: %s. Thank you for choosing Harmony!",
		business.Name,
		booking.BookingDate.Format("2006-01-02"),
		booking.BookingTime.String())
	return SendSMS(user.Phone, body)
}
