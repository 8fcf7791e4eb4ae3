package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/meinhoongagan/harmony-booking/availability"
)

// EmployeeSchedule is a staff member's shift for one business on one calendar
// date. At most one shift per (employee, business, date); absence of a row
// means the employee is not scheduled that day.
type EmployeeSchedule struct {
	gorm.Model
	EmployeeID uint                   `json:"employee_id"`
	Employee   User                   `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	BusinessID uint                   `json:"business_id"`
	WorkDate   time.Time              `json:"work_date" gorm:"type:date;index:idx_schedule_day"`
	StartTime  availability.TimeOfDay `json:"start_time" gorm:"type:time"`
	EndTime    availability.TimeOfDay `json:"end_time" gorm:"type:time"`
}
