package service

import (
	"time"

	"swmanager/internal/model"

	"github.com/shopspring/decimal"
)

// Request DTOs. Dates are strings in YYYY-MM-DD or RFC 3339 form.

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin manager supervisor"`
	FullName string `json:"full_name" binding:"required,max=100"`
}

// UpdateUserRequest changes only the fields that are set
type UpdateUserRequest struct {
	Username string `json:"username" binding:"omitempty,max=50"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager supervisor"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
}

type CreateSoftwareTypeRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type CreateComputerRequest struct {
	InventoryNumber string `json:"inventory_number" binding:"required,max=50"`
	ComputerType    string `json:"computer_type" binding:"required,oneof=workstation server"`
	PurchaseDate    string `json:"purchase_date" binding:"required"`
	Status          string `json:"status" binding:"omitempty,max=20"`
}

type CreateDepartmentRequest struct {
	DeptCode      string  `json:"dept_code" binding:"required,max=20"`
	DeptName      string  `json:"dept_name" binding:"required,max=100"`
	DeptShortName *string `json:"dept_short_name" binding:"omitempty,max=50"`
}

type CreateComputerAssignmentRequest struct {
	ComputerID int64   `json:"computer_id" binding:"required"`
	DeptID     int64   `json:"dept_id" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    *string `json:"end_date"`
	DocNumber  string  `json:"doc_number" binding:"required,max=50"`
	DocDate    string  `json:"doc_date" binding:"required"`
	DocType    string  `json:"doc_type" binding:"required,max=50"`
}

type CreateSoftwareRequest struct {
	SWTypeID     int64   `json:"sw_type_id" binding:"required"`
	Code         string  `json:"code" binding:"required,max=20"`
	Name         string  `json:"name" binding:"required,max=100"`
	ShortName    *string `json:"short_name" binding:"omitempty,max=50"`
	Manufacturer string  `json:"manufacturer" binding:"required,max=100"`
}

type CreateVendorRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Address string  `json:"address" binding:"required,max=255"`
	Phone   string  `json:"phone" binding:"required,max=20"`
	Website *string `json:"website" binding:"omitempty,max=255"`
}

type CreateLicenseRequest struct {
	SoftwareID   int64           `json:"software_id" binding:"required"`
	VendorID     int64           `json:"vendor_id" binding:"required"`
	StartDate    string          `json:"start_date" binding:"required"`
	EndDate      string          `json:"end_date" binding:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type CreateInstallationRequest struct {
	ComputerID  int64  `json:"computer_id" binding:"required"`
	LicenseID   int64  `json:"license_id" binding:"required"`
	InstallDate string `json:"install_date" binding:"required"`
}

// Response DTOs

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse never carries the password hash
type UserResponse struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	FullName string     `json:"full_name"`
}

type SoftwareTypeResponse struct {
	SWTypeID int64  `json:"sw_type_id"`
	Name     string `json:"name"`
}

type DepartmentResponse struct {
	DeptID        int64   `json:"dept_id"`
	DeptCode      string  `json:"dept_code"`
	DeptName      string  `json:"dept_name"`
	DeptShortName *string `json:"dept_short_name"`
}

type ComputerResponse struct {
	ComputerID      int64               `json:"computer_id"`
	InventoryNumber string              `json:"inventory_number"`
	ComputerType    model.ComputerType  `json:"computer_type"`
	PurchaseDate    time.Time           `json:"purchase_date"`
	Status          string              `json:"status"`
	Department      *DepartmentResponse `json:"department,omitempty"`
}

type ComputerAssignmentResponse struct {
	AssignmentID int64      `json:"assignment_id"`
	ComputerID   int64      `json:"computer_id"`
	DeptID       int64      `json:"dept_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	DocNumber    string     `json:"doc_number"`
	DocDate      time.Time  `json:"doc_date"`
	DocType      string     `json:"doc_type"`
}

type SoftwareResponse struct {
	SoftwareID   int64   `json:"software_id"`
	SWTypeID     int64   `json:"sw_type_id"`
	SWTypeName   string  `json:"sw_type_name"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	ShortName    *string `json:"short_name"`
	Manufacturer string  `json:"manufacturer"`
}

type VendorResponse struct {
	VendorID int64   `json:"vendor_id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Website  *string `json:"website"`
}

type LicenseResponse struct {
	LicenseID    int64           `json:"license_id"`
	SoftwareID   int64           `json:"software_id"`
	SoftwareName string          `json:"software_name"`
	VendorID     int64           `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type InstallationResponse struct {
	InstallationID int64     `json:"installation_id"`
	ComputerID     int64     `json:"computer_id"`
	LicenseID      int64     `json:"license_id"`
	InstallDate    time.Time `json:"install_date"`
}

type AuditLogResponse struct {
	LogID      int64     `json:"log_id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Action     string    `json:"action"`
	ActionTime time.Time `json:"action_time"`
}

func toUserResponse(u *model.User) *UserResponse {
	return &UserResponse{UserID: u.UserID, Username: u.Username, Role: u.Role, FullName: u.FullName}
}

func toSoftwareTypeResponse(t *model.SoftwareType) *SoftwareTypeResponse {
	return &SoftwareTypeResponse{SWTypeID: t.SWTypeID, Name: t.Name}
}

func toDepartmentResponse(d *model.Department) *DepartmentResponse {
	return &DepartmentResponse{DeptID: d.DeptID, DeptCode: d.DeptCode, DeptName: d.DeptName, DeptShortName: d.DeptShortName}
}

func toComputerResponse(c *model.Computer) *ComputerResponse {
	res := &ComputerResponse{
		ComputerID:      c.ComputerID,
		InventoryNumber: c.InventoryNumber,
		ComputerType:    c.ComputerType,
		PurchaseDate:    c.PurchaseDate,
		Status:          c.Status,
	}
	if c.Assignment != nil && c.Assignment.Department != nil {
		res.Department = toDepartmentResponse(c.Assignment.Department)
	}
	return res
}

func toComputerAssignmentResponse(a *model.ComputerAssignment) *ComputerAssignmentResponse {
	return &ComputerAssignmentResponse{
		AssignmentID: a.AssignmentID,
		ComputerID:   a.ComputerID,
		DeptID:       a.DeptID,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		DocNumber:    a.DocNumber,
		DocDate:      a.DocDate,
		DocType:      a.DocType,
	}
}

func toSoftwareResponse(s *model.Software) *SoftwareResponse {
	res := &SoftwareResponse{
		SoftwareID:   s.SoftwareID,
		SWTypeID:     s.SWTypeID,
		Code:         s.Code,
		Name:         s.Name,
		ShortName:    s.ShortName,
		Manufacturer: s.Manufacturer,
	}
	if s.SoftwareType != nil {
		res.SWTypeName = s.SoftwareType.Name
	}
	return res
}

func toVendorResponse(v *model.Vendor) *VendorResponse {
	return &VendorResponse{VendorID: v.VendorID, Name: v.Name, Address: v.Address, Phone: v.Phone, Website: v.Website}
}

func toLicenseResponse(l *model.License) *LicenseResponse {
	res := &LicenseResponse{
		LicenseID:    l.LicenseID,
		SoftwareID:   l.SoftwareID,
		VendorID:     l.VendorID,
		StartDate:    l.StartDate,
		EndDate:      l.EndDate,
		PricePerUnit: l.PricePerUnit,
	}
	if l.Software != nil {
		res.SoftwareName = l.Software.Name
	}
	if l.Vendor != nil {
		res.VendorName = l.Vendor.Name
	}
	return res
}

func toInstallationResponse(i *model.Installation) *InstallationResponse {
	return &InstallationResponse{
		InstallationID: i.InstallationID,
		ComputerID:     i.ComputerID,
		LicenseID:      i.LicenseID,
		InstallDate:    i.InstallDate,
	}
}

func toAuditLogResponse(l *model.AuditLog) AuditLogResponse {
	res := AuditLogResponse{LogID: l.LogID, UserID: l.UserID, Action: l.Action, ActionTime: l.ActionTime}
	if l.User != nil {
		res.Username = l.User.Username
	}
	return res
}
