package model

import "time"

// InstalledSoftwareRow is one flattened row of the installed software report
type InstalledSoftwareRow struct {
	InstallDate      time.Time `json:"install_date"`
	LicenseStartDate time.Time `json:"license_start_date"`
	LicenseEndDate   time.Time `json:"license_end_date"`
	SWName           string    `gorm:"column:sw_name" json:"sw_name"`
	SWCode           string    `gorm:"column:sw_code" json:"sw_code"`
	SWType           string    `gorm:"column:sw_type" json:"sw_type"`
}

// SoftwareLicenseCount is a software title with the number of licenses valid on the report date
type SoftwareLicenseCount struct {
	SoftwareID    int64   `json:"software_id"`
	SWTypeID      int64   `gorm:"column:sw_type_id" json:"sw_type_id"`
	SWTypeName    string  `gorm:"column:sw_type_name" json:"sw_type_name"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	ShortName     *string `json:"short_name"`
	Manufacturer  string  `json:"manufacturer"`
	TotalLicenses int64   `json:"total_licenses"`
}

// DepartmentComputerCount is a department with the number of computers assigned on the report date
type DepartmentComputerCount struct {
	DeptID         int64   `json:"dept_id"`
	DeptCode       string  `json:"dept_code"`
	DeptName       string  `json:"dept_name"`
	DeptShortName  *string `json:"dept_short_name"`
	TotalComputers int64   `json:"total_computers"`
}
