package utils

import (
	"github.com/meinhoongagan/harmony-booking/db"
	"github.com/meinhoongagan/harmony-booking/models"
)

// CheckBusinessPermission reports whether the user holds one of the given
// business-scoped roles at the business. With no roles given, any employment
// relationship (owner, manager or staff) qualifies.
func CheckBusinessPermission(userID, businessID uint, roles ...string) (bool, error) {
	query := db.DB.Model(&models.BusinessUser{}).
		Where("user_id = ? AND business_id = ?", userID, businessID)
	if len(roles) > 0 {
		query = query.Where("role IN (?)", roles)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckAdminRole reports whether the user's global role is admin.
func CheckAdminRole(userID uint) (bool, error) {
	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
