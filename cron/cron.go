package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
	"github.com/meinhoongagan/harmony-booking/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to check for bookings starting in about an hour
	_, err := c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders finds confirmed bookings starting in roughly an hour
// and emails the customer. The date and start time live in separate columns,
// so the window filter happens after the day's bookings are loaded.
func sendBookingReminders() {
	now := time.Now()
	windowStart := now.Add(55 * time.Minute)
	windowEnd := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := db.DB.Preload("User").Preload("Business").
		Where("status = ? AND booking_date = ?", models.StatusConfirmed, now.Format("2006-01-02")).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sent := 0
	for i := range bookings {
		b := &bookings[i]
		startsAt := midnight.Add(time.Duration(b.BookingTime.Minutes()) * time.Minute)
		if startsAt.Before(windowStart) || startsAt.After(windowEnd) {
			continue
		}

		if err := utils.SendBookingReminder(&b.User, b, &b.Business); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", b.ID, err)
			continue
		}
		sent++
		log.Printf("Sent reminder for booking %d to %s", b.ID, b.User.Email)
	}

	if sent > 0 {
		fmt.Printf("Sent %d booking reminders\n", sent)
	}
}
