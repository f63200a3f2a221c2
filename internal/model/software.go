package model

// SoftwareType groups software titles, e.g. "OS" or "Office"
type SoftwareType struct {
	SWTypeID int64  `gorm:"column:sw_type_id;primaryKey;autoIncrement" json:"sw_type_id"`
	Name     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`

	Software []Software `gorm:"foreignKey:SWTypeID;references:SWTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (SoftwareType) TableName() string { return "software_types" }

// Software is a licensable title identified by a unique code
type Software struct {
	SoftwareID   int64   `gorm:"column:software_id;primaryKey;autoIncrement" json:"software_id"`
	SWTypeID     int64   `gorm:"column:sw_type_id;not null;index" json:"sw_type_id"`
	Code         string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	ShortName    *string `gorm:"column:short_name;type:varchar(50)" json:"short_name"`
	Manufacturer string  `gorm:"type:varchar(100);not null" json:"manufacturer"`

	SoftwareType *SoftwareType `gorm:"-:migration;foreignKey:SWTypeID;references:SWTypeID" json:"-"`
	Licenses     []License     `gorm:"foreignKey:SoftwareID;references:SoftwareID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Software) TableName() string { return "software" }
