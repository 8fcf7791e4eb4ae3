package db

import (
	"fmt"
	"log"

	"github.com/meinhoongagan/harmony-booking/models"
)

func Migrate() {
	if DB == nil {
		Init()
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Business{},
		&models.BusinessUser{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.ServiceReview{},
		&models.Booking{},
		&models.BookingService{},
		&models.BookingAssignedStaff{},
		&models.EmployeeSchedule{},
		&models.EmployeeLeave{},
		&models.Payment{},
		&models.Invoice{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRolesAndPermissions()

	fmt.Println("✅ Migrations applied successfully!")
}

func seedRolesAndPermissions() {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access"},
		{Name: "provider", Description: "Business owner who manages services and bookings"},
		{Name: "client", Description: "Customer who books services"},
	}

	for _, role := range roles {
		var existingRole models.Role
		if DB.Where("name = ?", role.Name).First(&existingRole).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	permissions := []models.Permission{
		// Booking management
		{Name: "create_booking", Description: "Create bookings", Resource: "bookings", Action: "create"},
		{Name: "read_bookings", Description: "View bookings", Resource: "bookings", Action: "read"},
		{Name: "update_booking", Description: "Update bookings", Resource: "bookings", Action: "update"},
		{Name: "delete_booking", Description: "Cancel bookings", Resource: "bookings", Action: "delete"},

		// Business management
		{Name: "create_business", Description: "Create businesses", Resource: "businesses", Action: "create"},
		{Name: "read_businesses", Description: "View businesses", Resource: "businesses", Action: "read"},
		{Name: "update_business", Description: "Update businesses", Resource: "businesses", Action: "update"},
		{Name: "delete_business", Description: "Delete businesses", Resource: "businesses", Action: "delete"},

		// Service management
		{Name: "create_service", Description: "Create services", Resource: "services", Action: "create"},
		{Name: "read_services", Description: "View services", Resource: "services", Action: "read"},
		{Name: "update_service", Description: "Update services", Resource: "services", Action: "update"},
		{Name: "delete_service", Description: "Delete services", Resource: "services", Action: "delete"},

		// Payment management
		{Name: "create_payment", Description: "Create payments", Resource: "payments", Action: "create"},
		{Name: "read_payments", Description: "View payments", Resource: "payments", Action: "read"},

		// Role management
		{Name: "create_role", Description: "Create roles", Resource: "roles", Action: "create"},
		{Name: "read_roles", Description: "View roles", Resource: "roles", Action: "read"},
		{Name: "update_role", Description: "Update roles", Resource: "roles", Action: "update"},
		{Name: "delete_role", Description: "Delete roles", Resource: "roles", Action: "delete"},
	}

	for _, permission := range permissions {
		var existingPermission models.Permission
		if DB.Where("name = ?", permission.Name).First(&existingPermission).RowsAffected == 0 {
			DB.Create(&permission)
		}
	}

	// Admin gets everything
	var adminRole models.Role
	if DB.Where("name = ?", "admin").First(&adminRole).RowsAffected > 0 {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)

		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(&allPermissions)
	}

	// Providers manage their businesses, services and bookings
	var providerRole models.Role
	if DB.Where("name = ?", "provider").First(&providerRole).RowsAffected > 0 {
		var providerPermissions []models.Permission
		DB.Where("resource IN (?)", []string{"businesses", "services", "bookings", "payments"}).
			Where("action IN (?)", []string{"read", "create", "update"}).
			Find(&providerPermissions)

		DB.Model(&providerRole).Association("Permissions").Clear()
		DB.Model(&providerRole).Association("Permissions").Append(&providerPermissions)
	}

	// Clients book and pay
	var clientRole models.Role
	if DB.Where("name = ?", "client").First(&clientRole).RowsAffected > 0 {
		var clientPermissions []models.Permission
		DB.Where("name IN (?)", []string{
			"create_booking",
			"read_bookings",
			"update_booking",
			"delete_booking",
			"read_services",
			"read_businesses",
			"create_payment",
			"read_payments",
		}).Find(&clientPermissions)

		DB.Model(&clientRole).Association("Permissions").Clear()
		DB.Model(&clientRole).Association("Permissions").Append(&clientPermissions)
	}
}
