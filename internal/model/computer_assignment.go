package model

import "time"

// ComputerAssignment places one computer in one department for a date range.
// A nil EndDate means the assignment is open-ended.
type ComputerAssignment struct {
	AssignmentID int64      `gorm:"column:assignment_id;primaryKey;autoIncrement" json:"assignment_id"`
	ComputerID   int64      `gorm:"column:computer_id;not null;uniqueIndex" json:"computer_id"`
	DeptID       int64      `gorm:"column:dept_id;not null;index" json:"dept_id"`
	StartDate    time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date"`
	DocNumber    string     `gorm:"column:doc_number;type:varchar(50);not null" json:"doc_number"`
	DocDate      time.Time  `gorm:"column:doc_date;not null" json:"doc_date"`
	DocType      string     `gorm:"column:doc_type;type:varchar(50);not null" json:"doc_type"`

	Computer   *Computer   `gorm:"-:migration;foreignKey:ComputerID;references:ComputerID" json:"-"`
	Department *Department `gorm:"-:migration;foreignKey:DeptID;references:DeptID" json:"-"`
}

func (ComputerAssignment) TableName() string { return "computer_assignments" }
