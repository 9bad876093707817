package model

import "time"

// Employee is a roster entry. Code is the zero-padded public identifier shown
// on badges; Group decides which shift expectations apply.
type Employee struct {
	EmployeeID int    `gorm:"primaryKey;autoIncrement;column:employee_id" json:"employeeId"`
	Code       string `gorm:"column:code;type:varchar(8);uniqueIndex" json:"code"`
	Name       string `gorm:"column:name;type:varchar(120);not null" json:"name"`
	Group      string `gorm:"column:emp_group;type:varchar(60)" json:"group"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}
