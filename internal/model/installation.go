package model

import "time"

// Installation is a historical event: the same license may be installed on the same computer more than once
type Installation struct {
	InstallationID int64     `gorm:"column:installation_id;primaryKey;autoIncrement" json:"installation_id"`
	ComputerID     int64     `gorm:"column:computer_id;not null;index" json:"computer_id"`
	LicenseID      int64     `gorm:"column:license_id;not null;index" json:"license_id"`
	InstallDate    time.Time `gorm:"column:install_date;not null;index" json:"install_date"`

	Computer *Computer `gorm:"-:migration;foreignKey:ComputerID;references:ComputerID" json:"-"`
	License  *License  `gorm:"-:migration;foreignKey:LicenseID;references:LicenseID" json:"-"`
}

func (Installation) TableName() string { return "installations" }
