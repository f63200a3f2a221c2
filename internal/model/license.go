package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// License is a purchase of a software title from a vendor, valid for [StartDate, EndDate]
type License struct {
	LicenseID    int64           `gorm:"column:license_id;primaryKey;autoIncrement" json:"license_id"`
	SoftwareID   int64           `gorm:"column:software_id;not null;index" json:"software_id"`
	VendorID     int64           `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	StartDate    time.Time       `gorm:"column:start_date;not null;index" json:"start_date"`
	EndDate      time.Time       `gorm:"column:end_date;not null;index" json:"end_date"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:decimal(12,2);not null" json:"price_per_unit"`

	Software      *Software      `gorm:"-:migration;foreignKey:SoftwareID;references:SoftwareID" json:"-"`
	Vendor        *Vendor        `gorm:"-:migration;foreignKey:VendorID;references:VendorID" json:"-"`
	Installations []Installation `gorm:"foreignKey:LicenseID;references:LicenseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (License) TableName() string { return "licenses" }
