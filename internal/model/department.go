package model

// Department owns computer assignments
type Department struct {
	DeptID        int64   `gorm:"column:dept_id;primaryKey;autoIncrement" json:"dept_id"`
	DeptCode      string  `gorm:"column:dept_code;type:varchar(20);uniqueIndex;not null" json:"dept_code"`
	DeptName      string  `gorm:"column:dept_name;type:varchar(100);not null" json:"dept_name"`
	DeptShortName *string `gorm:"column:dept_short_name;type:varchar(50)" json:"dept_short_name"`

	Assignments []ComputerAssignment `gorm:"foreignKey:DeptID;references:DeptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Department) TableName() string { return "departments" }
