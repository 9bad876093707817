package model

import "time"

// AttendanceEvent is one row of the attendance log. A row is appended when an
// action starts; closing actions (time-out, halfday time-out, break resume)
// update the same row in place. EndTime stays empty while the row represents
// an open session.
type AttendanceEvent struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EmployeeID int        `gorm:"column:employee_id;not null;index:idx_employee_date" json:"employeeId"`
	Name       string     `gorm:"column:name;type:varchar(120)" json:"name"`
	Group      string     `gorm:"column:emp_group;type:varchar(60)" json:"group"`
	Kind       ActionKind `gorm:"column:kind;type:varchar(60)" json:"kind"`
	Date       string     `gorm:"column:date;type:varchar(10);index:idx_employee_date" json:"date"`
	StartTime  string     `gorm:"column:start_time;type:varchar(8)" json:"startTime"`
	EndTime    string     `gorm:"column:end_time;type:varchar(8)" json:"endTime"`
	Elapsed    string     `gorm:"column:elapsed;type:varchar(60)" json:"elapsed"`
	ShiftLabel string     `gorm:"column:shift_label;type:varchar(40)" json:"shiftLabel"`
	Lateness   string     `gorm:"column:lateness;type:varchar(60)" json:"lateness"`
	Status     Status     `gorm:"column:status;type:varchar(30)" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_log"
}

// Open reports whether the row still waits for its closing event.
func (e *AttendanceEvent) Open() bool {
	return e.EndTime == ""
}
