package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/meinhoongagan/harmony-booking/availability"
	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
	"github.com/meinhoongagan/harmony-booking/utils"
)

// CreateBusiness registers a new business owned by the authenticated user.
func CreateBusiness(c *fiber.Ctx) error {
	type BusinessInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		OpenTime    string `json:"open_time"`  // HH:MM
		CloseTime   string `json:"close_time"` // HH:MM
	}

	input := new(BusinessInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Business name is required",
		})
	}

	openTime, err := availability.ParseTimeOfDay(input.OpenTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid open_time, expected HH:MM",
		})
	}
	closeTime, err := availability.ParseTimeOfDay(input.CloseTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid close_time, expected HH:MM",
		})
	}
	if !openTime.Before(closeTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "open_time must be before close_time",
		})
	}

	userID := c.Locals("userID").(uint)

	business := models.Business{
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		OwnerID:     userID,
		OpenTime:    openTime,
		CloseTime:   closeTime,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&business).Error; err != nil {
			return err
		}
		// The owner is also an employee so they can take bookings themselves.
		membership := models.BusinessUser{
			BusinessID: business.ID,
			UserID:     userID,
			Role:       models.BusinessRoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		log.Printf("Error creating business: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create business",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(business)
}

// GetBusinesses lists businesses with optional name search.
func GetBusinesses(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Business{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count businesses",
		})
	}

	var businesses []models.Business
	if err := query.Offset(offset).Limit(limit).Find(&businesses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch businesses",
		})
	}

	return c.JSON(fiber.Map{
		"businesses": businesses,
		"meta":       utils.NewPaginationMeta(total, page, limit),
	})
}

// GetBusiness returns one business with its services.
func GetBusiness(c *fiber.Ctx) error {
	id := c.Params("id")

	var business models.Business
	if err := db.DB.Preload("Services").First(&business, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	return c.JSON(business)
}

// UpdateBusiness updates business details. Owner or manager only.
func UpdateBusiness(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	allowed, err := utils.CheckBusinessPermission(userID, uint(id),
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this business",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	type UpdateInput struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		OpenTime    *string `json:"open_time"`
		CloseTime   *string `json:"close_time"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.OpenTime != nil {
		openTime, err := availability.ParseTimeOfDay(*input.OpenTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid open_time, expected HH:MM",
			})
		}
		business.OpenTime = openTime
	}
	if input.CloseTime != nil {
		closeTime, err := availability.ParseTimeOfDay(*input.CloseTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid close_time, expected HH:MM",
			})
		}
		business.CloseTime = closeTime
	}
	if !business.OpenTime.Before(business.CloseTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "open_time must be before close_time",
		})
	}

	if err := db.DB.Save(&business).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update business",
		})
	}

	return c.JSON(business)
}

// DeleteBusiness soft-deletes a business. Owner only.
func DeleteBusiness(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	var business models.Business
	if err := db.DB.First(&business, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	if business.OwnerID != userID {
		if isAdmin, _ := utils.CheckAdminRole(userID); !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only the owner can delete a business",
			})
		}
	}

	if err := db.DB.Delete(&business).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete business",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Business deleted successfully",
	})
}

// UploadBusinessImage uploads a logo or cover image to Cloudinary and stores
// the resulting URL. The "kind" form field chooses which.
func UploadBusinessImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	allowed, err := utils.CheckBusinessPermission(userID, uint(id),
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this business",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	kind := c.FormValue("kind", "logo")
	publicID := fmt.Sprintf("business_%d_%s", business.ID, kind)

	url, err := utils.UploadToCloudinary(file, publicID, "businesses")
	if err != nil {
		log.Printf("Cloudinary upload failed for business %d: %v", business.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	switch kind {
	case "cover":
		business.CoverImageURL = url
	default:
		business.LogoURL = url
	}

	if err := db.DB.Save(&business).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image URL",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     url,
	})
}

// GetUserBusinesses lists the businesses owned by the authenticated user.
func GetUserBusinesses(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var businesses []models.Business
	if err := db.DB.Where("owner_id = ?", userID).Find(&businesses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch businesses",
		})
	}

	return c.JSON(businesses)
}

// GetEmployedBusinesses lists the businesses where the user works.
func GetEmployedBusinesses(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var memberships []models.BusinessUser
	if err := db.DB.Preload("Business").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch businesses",
		})
	}

	return c.JSON(memberships)
}

// AddEmployee adds a user to the business's staff. Owner or manager only.
func AddEmployee(c *fiber.Ctx) error {
	type EmployeeInput struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}

	input := new(EmployeeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

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
			"error": "You don't have permission to manage employees",
		})
	}

	var user models.User
	if err := db.DB.First(&user, input.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var existing models.BusinessUser
	if db.DB.Where("business_id = ? AND user_id = ?", businessID, input.UserID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User is already an employee of this business",
		})
	}

	role := input.Role
	if role == "" {
		role = models.BusinessRoleStaff
	}
	if role != models.BusinessRoleManager && role != models.BusinessRoleStaff {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Role must be manager or staff",
		})
	}

	employee := models.BusinessUser{
		BusinessID: uint(businessID),
		UserID:     input.UserID,
		Role:       role,
	}
	if err := db.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add employee",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(employee)
}

// GetEmployees lists the business's staff.
func GetEmployees(c *fiber.Ctx) error {
	businessID := c.Params("id")

	var employees []models.BusinessUser
	if err := db.DB.Preload("User").Where("business_id = ?", businessID).Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch employees",
		})
	}

	for i := range employees {
		employees[i].User.Password = ""
	}

	return c.JSON(employees)
}

// UpdateEmployeeRole changes an employee's business role. Owner only.
func UpdateEmployeeRole(c *fiber.Ctx) error {
	type RoleInput struct {
		Role string `json:"role"`
	}

	input := new(RoleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	employeeID := c.Params("employeeId")
	userID := c.Locals("userID").(uint)

	allowed, err := utils.CheckBusinessPermission(userID, uint(businessID), models.BusinessRoleOwner)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owner can change employee roles",
		})
	}

	if input.Role != models.BusinessRoleManager && input.Role != models.BusinessRoleStaff {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Role must be manager or staff",
		})
	}

	var employee models.BusinessUser
	if db.DB.Where("business_id = ? AND user_id = ?", businessID, employeeID).First(&employee).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	if employee.Role == models.BusinessRoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The owner's role cannot be changed",
		})
	}

	employee.Role = input.Role
	if err := db.DB.Save(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update employee role",
		})
	}

	return c.JSON(employee)
}

// RemoveEmployee removes an employee from the business. Owner or manager only.
func RemoveEmployee(c *fiber.Ctx) error {
	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	employeeID := c.Params("employeeId")
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
			"error": "You don't have permission to manage employees",
		})
	}

	var employee models.BusinessUser
	if db.DB.Where("business_id = ? AND user_id = ?", businessID, employeeID).First(&employee).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	if employee.Role == models.BusinessRoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "The owner cannot be removed",
		})
	}

	if err := db.DB.Delete(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove employee",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Employee removed successfully",
	})
}

// SetEmployeeSchedule creates or replaces an employee's shift for a date.
func SetEmployeeSchedule(c *fiber.Ctx) error {
	type ScheduleInput struct {
		EmployeeID uint   `json:"employee_id"`
		WorkDate   string `json:"work_date"`  // YYYY-MM-DD
		StartTime  string `json:"start_time"` // HH:MM
		EndTime    string `json:"end_time"`   // HH:MM
	}

	input := new(ScheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

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
			"error": "You don't have permission to manage schedules",
		})
	}

	workDate, err := time.Parse("2006-01-02", input.WorkDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid work_date, expected YYYY-MM-DD",
		})
	}
	startTime, err := availability.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid start_time, expected HH:MM",
		})
	}
	endTime, err := availability.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid end_time, expected HH:MM",
		})
	}
	if !startTime.Before(endTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_time must be before end_time",
		})
	}

	var count int64
	db.DB.Model(&models.BusinessUser{}).
		Where("business_id = ? AND user_id = ?", businessID, input.EmployeeID).
		Count(&count)
	if count == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User is not an employee of this business",
		})
	}

	// One shift per employee per date: update in place when one exists.
	var schedule models.EmployeeSchedule
	result := db.DB.Where("employee_id = ? AND business_id = ? AND work_date = ?",
		input.EmployeeID, businessID, input.WorkDate).First(&schedule)

	schedule.EmployeeID = input.EmployeeID
	schedule.BusinessID = uint(businessID)
	schedule.WorkDate = workDate
	schedule.StartTime = startTime
	schedule.EndTime = endTime

	if result.RowsAffected > 0 {
		err = db.DB.Save(&schedule).Error
	} else {
		err = db.DB.Create(&schedule).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// GetEmployeeSchedule lists an employee's shifts, optionally for one date.
func GetEmployeeSchedule(c *fiber.Ctx) error {
	businessID := c.Params("id")
	employeeID := c.Params("employeeId")

	query := db.DB.Where("business_id = ? AND employee_id = ?", businessID, employeeID)
	if date := c.Query("date"); date != "" {
		query = query.Where("work_date = ?", date)
	}

	var schedules []models.EmployeeSchedule
	if err := query.Order("work_date ASC").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule",
		})
	}

	return c.JSON(schedules)
}

// RequestLeave records a leave request for the authenticated employee.
func RequestLeave(c *fiber.Ctx) error {
	type LeaveInput struct {
		LeaveDate string `json:"leave_date"` // YYYY-MM-DD
		Reason    string `json:"reason"`
	}

	input := new(LeaveInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	userID := c.Locals("userID").(uint)

	var count int64
	db.DB.Model(&models.BusinessUser{}).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Count(&count)
	if count == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not an employee of this business",
		})
	}

	leaveDate, err := time.Parse("2006-01-02", input.LeaveDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid leave_date, expected YYYY-MM-DD",
		})
	}

	var existing models.EmployeeLeave
	if db.DB.Where("employee_id = ? AND business_id = ? AND leave_date = ?",
		userID, businessID, input.LeaveDate).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Leave already requested for this date",
		})
	}

	leave := models.EmployeeLeave{
		EmployeeID: userID,
		BusinessID: uint(businessID),
		LeaveDate:  leaveDate,
		Reason:     input.Reason,
		Status:     models.LeavePending,
	}
	if err := db.DB.Create(&leave).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to request leave",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(leave)
}

// GetLeaves lists leave requests at the business. Owner or manager only.
func GetLeaves(c *fiber.Ctx) error {
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
			"error": "You don't have permission to view leave requests",
		})
	}

	query := db.DB.Preload("Employee").Where("business_id = ?", businessID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var leaves []models.EmployeeLeave
	if err := query.Order("leave_date ASC").Find(&leaves).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leave requests",
		})
	}

	for i := range leaves {
		leaves[i].Employee.Password = ""
	}

	return c.JSON(leaves)
}

// UpdateLeaveStatus approves or rejects a leave request. Owner or manager only.
func UpdateLeaveStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.LeaveStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Status != models.LeaveApproved && input.Status != models.LeaveRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be approved or rejected",
		})
	}

	businessID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid business ID",
		})
	}
	leaveID := c.Params("leaveId")
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
			"error": "You don't have permission to manage leave requests",
		})
	}

	var leave models.EmployeeLeave
	if db.DB.Where("id = ? AND business_id = ?", leaveID, businessID).First(&leave).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Leave request not found",
		})
	}

	leave.Status = input.Status
	if err := db.DB.Save(&leave).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update leave status",
		})
	}

	return c.JSON(leave)
}
