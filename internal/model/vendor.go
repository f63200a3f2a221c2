package model

type Vendor struct {
	VendorID int64   `gorm:"column:vendor_id;primaryKey;autoIncrement" json:"vendor_id"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	Address  string  `gorm:"type:varchar(255);not null" json:"address"`
	Phone    string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Website  *string `gorm:"type:varchar(255)" json:"website"`

	Licenses []License `gorm:"foreignKey:VendorID;references:VendorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Vendor) TableName() string { return "vendors" }
