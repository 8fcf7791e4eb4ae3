package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// EmployeeLeave is a declared absence for one business on one date.
type EmployeeLeave struct {
	gorm.Model
	EmployeeID uint        `json:"employee_id"`
	Employee   User        `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	BusinessID uint        `json:"business_id"`
	LeaveDate  time.Time   `json:"leave_date" gorm:"type:date;index:idx_leave_day"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status" gorm:"type:varchar(20);default:pending"`
}

func (l *EmployeeLeave) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeavePending
	}
	return nil
}
