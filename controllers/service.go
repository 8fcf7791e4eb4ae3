package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
	"github.com/meinhoongagan/harmony-booking/utils"
)

// catalogOrder maps a catalog sort key to its ORDER BY clause. Unknown keys
// fall back to newest-first.
func catalogOrder(sort string) string {
	switch sort {
	case "price_low":
		return "price ASC"
	case "price_high":
		return "price DESC"
	case "duration":
		return "duration ASC"
	case "rating":
		return "(SELECT AVG(rating) FROM service_reviews WHERE service_reviews.service_id = services.id AND service_reviews.deleted_at IS NULL) DESC NULLS LAST"
	default:
		return "id DESC"
	}
}

// GetAllServices is the public service catalog: paginated browse across all
// businesses with search, category, price range and sort filters.
func GetAllServices(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := db.DB.Model(&models.Service{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category := c.QueryInt("category"); category > 0 {
		query = query.Where("category_id = ?", category)
	}
	if minPrice := c.QueryFloat("min_price"); minPrice > 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.QueryFloat("max_price"); maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count services",
		})
	}

	var services []models.Service
	if err := query.
		Preload("Category").
		Preload("Business").
		Order(catalogOrder(c.Query("sort", "newest"))).
		Offset(offset).Limit(limit).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	return c.JSON(fiber.Map{
		"services": services,
		"meta":     utils.NewPaginationMeta(total, page, limit),
	})
}

// CreateServiceCategory adds a platform-wide category. Admin only.
func CreateServiceCategory(c *fiber.Ctx) error {
	category := new(models.ServiceCategory)

	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category name is required",
		})
	}

	var existing models.ServiceCategory
	if db.DB.Where("name = ?", category.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Category with this name already exists",
		})
	}

	if err := db.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetServiceCategories lists all categories.
func GetServiceCategories(c *fiber.Ctx) error {
	var categories []models.ServiceCategory
	if err := db.DB.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}
	return c.JSON(categories)
}

// CreateService adds a service to a business. Owner or manager only.
func CreateService(c *fiber.Ctx) error {
	type ServiceInput struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Duration    int     `json:"duration"` // minutes
		Price       float64 `json:"price"`
		CategoryID  *uint   `json:"category_id"`
	}

	input := new(ServiceInput)
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
			"error": "You don't have permission to manage services",
		})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service name is required",
		})
	}
	if input.Duration < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Duration must be at least 1 minute",
		})
	}
	if input.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price cannot be negative",
		})
	}

	if input.CategoryID != nil {
		var category models.ServiceCategory
		if err := db.DB.First(&category, *input.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		BusinessID:  uint(businessID),
	}
	if err := db.DB.Create(&service).Error; err != nil {
		log.Printf("Error creating service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// GetBusinessServices lists a business's services.
func GetBusinessServices(c *fiber.Ctx) error {
	businessID := c.Params("id")

	var services []models.Service
	if err := db.DB.Where("business_id = ?", businessID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	return c.JSON(services)
}

// GetService returns one service.
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Preload("Business").First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.JSON(service)
}

// UpdateService updates a service. Owner or manager only. Bookings made before
// the change keep their original durations.
func UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	allowed, err := utils.CheckBusinessPermission(userID, service.BusinessID,
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage services",
		})
	}

	type UpdateInput struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Duration    *int     `json:"duration"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Duration != nil {
		if *input.Duration < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Duration must be at least 1 minute",
			})
		}
		service.Duration = *input.Duration
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Price cannot be negative",
			})
		}
		service.Price = *input.Price
	}
	if input.CategoryID != nil {
		var category models.ServiceCategory
		if err := db.DB.First(&category, *input.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		service.CategoryID = input.CategoryID
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}

	return c.JSON(service)
}

// DeleteService soft-deletes a service. Owner or manager only.
func DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	allowed, err := utils.CheckBusinessPermission(userID, service.BusinessID,
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage services",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Service deleted successfully",
	})
}

// UploadServiceImage uploads a service image to Cloudinary.
func UploadServiceImage(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	allowed, err := utils.CheckBusinessPermission(userID, service.BusinessID,
		models.BusinessRoleOwner, models.BusinessRoleManager)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check permissions",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to manage services",
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

	url, err := utils.UploadToCloudinary(file, fmt.Sprintf("service_%d", service.ID), "services")
	if err != nil {
		log.Printf("Cloudinary upload failed for service %d: %v", service.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	service.ImageURL = url
	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image URL",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     url,
	})
}

// AddServiceReview lets a customer review a service they booked.
func AddServiceReview(c *fiber.Ctx) error {
	type ReviewInput struct {
		Rating    float64 `json:"rating"`
		Comment   string  `json:"comment"`
		BookingID *uint   `json:"booking_id"`
	}

	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	serviceID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}
	userID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.First(&service, serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	review := models.ServiceReview{
		Rating:    input.Rating,
		Comment:   input.Comment,
		ServiceID: uint(serviceID),
		UserID:    userID,
		BookingID: input.BookingID,
	}

	exists, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this service",
		})
	}

	if input.BookingID != nil {
		var b models.Booking
		if err := db.DB.First(&b, *input.BookingID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Linked booking not found",
			})
		}
		if b.UserID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You can only link your own booking",
			})
		}
		if b.Status != models.StatusCompleted {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only completed bookings can be reviewed",
			})
		}
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetServiceReviews lists a service's reviews with the average rating.
func GetServiceReviews(c *fiber.Ctx) error {
	serviceID := c.Params("id")

	var reviews []models.ServiceReview
	if err := db.DB.Preload("User").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	var average float64
	if len(reviews) > 0 {
		for i := range reviews {
			reviews[i].User.Password = ""
			average += reviews[i].Rating
		}
		average /= float64(len(reviews))
	}

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": average,
		"count":          len(reviews),
	})
}
