package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"swmanager/internal/apperror"
	"swmanager/internal/model"
	"swmanager/internal/repository"
)

// ManagerService manages the hardware and software inventory
type ManagerService interface {
	CreateComputer(ctx context.Context, actorID int64, req CreateComputerRequest) (*ComputerResponse, error)
	ListComputers(ctx context.Context, actorID int64, page, limit int) ([]ComputerResponse, int64, error)
	DeleteComputer(ctx context.Context, actorID, computerID int64) error
	GetComputerSoftware(ctx context.Context, actorID, computerID int64) ([]SoftwareResponse, error)

	CreateDepartment(ctx context.Context, actorID int64, req CreateDepartmentRequest) (*DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, actorID, deptID int64) error
	CreateComputerAssignment(ctx context.Context, actorID int64, req CreateComputerAssignmentRequest) (*ComputerAssignmentResponse, error)

	CreateSoftware(ctx context.Context, actorID int64, req CreateSoftwareRequest) (*SoftwareResponse, error)
	ListSoftware(ctx context.Context, actorID int64, page, limit int) ([]SoftwareResponse, int64, error)
	DeleteSoftware(ctx context.Context, actorID, softwareID int64) error

	CreateVendor(ctx context.Context, actorID int64, req CreateVendorRequest) (*VendorResponse, error)
	DeleteVendor(ctx context.Context, actorID, vendorID int64) error

	CreateLicense(ctx context.Context, actorID int64, req CreateLicenseRequest) (*LicenseResponse, error)
	ListLicenses(ctx context.Context, actorID int64, page, limit int) ([]LicenseResponse, int64, error)
	DeleteLicense(ctx context.Context, actorID, licenseID int64) error

	CreateInstallation(ctx context.Context, actorID int64, req CreateInstallationRequest) (*InstallationResponse, error)
}

// ManagerRepositories groups the repositories the manager surface writes to
type ManagerRepositories struct {
	Computers     repository.ComputerRepository
	Departments   repository.DepartmentRepository
	Assignments   repository.ComputerAssignmentRepository
	SoftwareTypes repository.SoftwareTypeRepository
	Software      repository.SoftwareRepository
	Vendors       repository.VendorRepository
	Licenses      repository.LicenseRepository
	Installations repository.InstallationRepository
	AuditLogs     repository.AuditLogRepository
}

type managerService struct {
	uow   *unitOfWork
	repos ManagerRepositories
}

func NewManagerService(txManager repository.TransactionManager, repos ManagerRepositories, feed AuditFeed) ManagerService {
	return &managerService{
		uow:   newUnitOfWork(txManager, repos.AuditLogs, feed),
		repos: repos,
	}
}

func (s *managerService) CreateComputer(ctx context.Context, actorID int64, req CreateComputerRequest) (*ComputerResponse, error) {
	purchased, err := ParseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.ComputerStatusActive
	}

	computer := model.Computer{
		InventoryNumber: req.InventoryNumber,
		ComputerType:    model.ComputerType(req.ComputerType),
		PurchaseDate:    purchased,
		Status:          status,
	}
	err = s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if err := s.repos.Computers.Create(txCtx, &computer); err != nil {
			return "", err
		}
		return "Computer created: " + computer.InventoryNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return toComputerResponse(&computer), nil
}

func (s *managerService) ListComputers(ctx context.Context, actorID int64, page, limit int) ([]ComputerResponse, int64, error) {
	var res []ComputerResponse
	var total int64
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		computers, count, err := s.repos.Computers.List(txCtx, page, limit)
		if err != nil {
			return "", err
		}
		total = count
		res = make([]ComputerResponse, 0, len(computers))
		for i := range computers {
			res = append(res, *toComputerResponse(&computers[i]))
		}
		return "Computers listed", nil
	})
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

// DeleteComputer cascades to the computer's assignment and installations
func (s *managerService) DeleteComputer(ctx context.Context, actorID, computerID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		computer, err := s.repos.Computers.GetByID(txCtx, computerID)
		if err != nil {
			return "", lookupError("Computer", computerID, err)
		}
		if err := s.repos.Computers.Delete(txCtx, computerID); err != nil {
			return "", err
		}
		return "Computer deleted: " + computer.InventoryNumber, nil
	})
}

// GetComputerSoftware returns the distinct software installed on a computer, ordered by code
func (s *managerService) GetComputerSoftware(ctx context.Context, actorID, computerID int64) ([]SoftwareResponse, error) {
	var res []SoftwareResponse
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		computer, err := s.repos.Computers.GetWithInstallations(txCtx, computerID)
		if err != nil {
			return "", lookupError("Computer", computerID, err)
		}

		seen := make(map[int64]bool)
		res = make([]SoftwareResponse, 0, len(computer.Installations))
		for _, inst := range computer.Installations {
			if inst.License == nil || inst.License.Software == nil {
				continue
			}
			sw := inst.License.Software
			if seen[sw.SoftwareID] {
				continue
			}
			seen[sw.SoftwareID] = true
			res = append(res, *toSoftwareResponse(sw))
		}
		sort.Slice(res, func(i, j int) bool { return res[i].Code < res[j].Code })
		return "Computer software retrieved: " + computer.InventoryNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *managerService) CreateDepartment(ctx context.Context, actorID int64, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	dept := model.Department{DeptCode: req.DeptCode, DeptName: req.DeptName, DeptShortName: req.DeptShortName}
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if err := s.repos.Departments.Create(txCtx, &dept); err != nil {
			return "", err
		}
		return "Department created: " + dept.DeptCode, nil
	})
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(&dept), nil
}

// DeleteDepartment cascades to the department's computer assignments
func (s *managerService) DeleteDepartment(ctx context.Context, actorID, deptID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		dept, err := s.repos.Departments.GetByID(txCtx, deptID)
		if err != nil {
			return "", lookupError("Department", deptID, err)
		}
		if err := s.repos.Departments.Delete(txCtx, deptID); err != nil {
			return "", err
		}
		return "Department deleted: " + dept.DeptCode, nil
	})
}

func (s *managerService) CreateComputerAssignment(ctx context.Context, actorID int64, req CreateComputerAssignmentRequest) (*ComputerAssignmentResponse, error) {
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end != nil {
		if err := checkWindow(start, *end, "Computer assignment"); err != nil {
			return nil, err
		}
	}
	docDate, err := ParseDate(req.DocDate)
	if err != nil {
		return nil, err
	}

	assignment := model.ComputerAssignment{
		ComputerID: req.ComputerID,
		DeptID:     req.DeptID,
		StartDate:  start,
		EndDate:    end,
		DocNumber:  req.DocNumber,
		DocDate:    docDate,
		DocType:    req.DocType,
	}
	err = s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if _, err := s.repos.Computers.GetByID(txCtx, req.ComputerID); err != nil {
			return "", lookupError("Computer", req.ComputerID, err)
		}
		if _, err := s.repos.Departments.GetByID(txCtx, req.DeptID); err != nil {
			return "", lookupError("Department", req.DeptID, err)
		}
		existing, err := s.repos.Assignments.GetByComputerID(txCtx, req.ComputerID)
		switch {
		case err == nil && existing.Department != nil:
			return "", apperror.Conflict("Computer already assigned to department: "+existing.Department.DeptCode, nil)
		case err == nil:
			return "", apperror.Conflict("Computer assignment already exists", nil)
		case !errors.Is(err, repository.ErrNotFound):
			return "", err
		}
		if err := s.repos.Assignments.Create(txCtx, &assignment); err != nil {
			return "", err
		}
		return "Computer assignment created: " + assignment.DocNumber, nil
	})
	if err != nil {
		return nil, err
	}
	return toComputerAssignmentResponse(&assignment), nil
}

func (s *managerService) CreateSoftware(ctx context.Context, actorID int64, req CreateSoftwareRequest) (*SoftwareResponse, error) {
	software := model.Software{
		SWTypeID:     req.SWTypeID,
		Code:         req.Code,
		Name:         req.Name,
		ShortName:    req.ShortName,
		Manufacturer: req.Manufacturer,
	}
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		swType, err := s.repos.SoftwareTypes.GetByID(txCtx, req.SWTypeID)
		if err != nil {
			return "", lookupError("Software Type", req.SWTypeID, err)
		}
		if err := s.repos.Software.Create(txCtx, &software); err != nil {
			return "", err
		}
		software.SoftwareType = swType
		return "Software created: " + software.Name, nil
	})
	if err != nil {
		return nil, err
	}
	return toSoftwareResponse(&software), nil
}

func (s *managerService) ListSoftware(ctx context.Context, actorID int64, page, limit int) ([]SoftwareResponse, int64, error) {
	var res []SoftwareResponse
	var total int64
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		software, count, err := s.repos.Software.List(txCtx, page, limit)
		if err != nil {
			return "", err
		}
		total = count
		res = make([]SoftwareResponse, 0, len(software))
		for i := range software {
			res = append(res, *toSoftwareResponse(&software[i]))
		}
		return "Software listed", nil
	})
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

// DeleteSoftware cascades to the software's licenses and their installations
func (s *managerService) DeleteSoftware(ctx context.Context, actorID, softwareID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		software, err := s.repos.Software.GetByID(txCtx, softwareID)
		if err != nil {
			return "", lookupError("Software", softwareID, err)
		}
		if err := s.repos.Software.Delete(txCtx, softwareID); err != nil {
			return "", err
		}
		return "Software deleted: " + software.Name, nil
	})
}

func (s *managerService) CreateVendor(ctx context.Context, actorID int64, req CreateVendorRequest) (*VendorResponse, error) {
	vendor := model.Vendor{Name: req.Name, Address: req.Address, Phone: req.Phone, Website: req.Website}
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if err := s.repos.Vendors.Create(txCtx, &vendor); err != nil {
			return "", err
		}
		return "Vendor created: " + vendor.Name, nil
	})
	if err != nil {
		return nil, err
	}
	return toVendorResponse(&vendor), nil
}

// DeleteVendor cascades to the vendor's licenses and their installations
func (s *managerService) DeleteVendor(ctx context.Context, actorID, vendorID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		vendor, err := s.repos.Vendors.GetByID(txCtx, vendorID)
		if err != nil {
			return "", lookupError("Vendor", vendorID, err)
		}
		if err := s.repos.Vendors.Delete(txCtx, vendorID); err != nil {
			return "", err
		}
		return "Vendor deleted: " + vendor.Name, nil
	})
}

func (s *managerService) CreateLicense(ctx context.Context, actorID int64, req CreateLicenseRequest) (*LicenseResponse, error) {
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(start, end, "License"); err != nil {
		return nil, err
	}
	if req.PricePerUnit.IsNegative() {
		return nil, apperror.InvalidInput("License: price per unit must not be negative")
	}

	license := model.License{
		SoftwareID:   req.SoftwareID,
		VendorID:     req.VendorID,
		StartDate:    start,
		EndDate:      end,
		PricePerUnit: req.PricePerUnit,
	}
	err = s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		software, err := s.repos.Software.GetByID(txCtx, req.SoftwareID)
		if err != nil {
			return "", lookupError("Software", req.SoftwareID, err)
		}
		vendor, err := s.repos.Vendors.GetByID(txCtx, req.VendorID)
		if err != nil {
			return "", lookupError("Vendor", req.VendorID, err)
		}
		if err := s.repos.Licenses.Create(txCtx, &license); err != nil {
			return "", err
		}
		license.Software = software
		license.Vendor = vendor
		return fmt.Sprintf("License created: %s by %s", software.Name, vendor.Name), nil
	})
	if err != nil {
		return nil, err
	}
	return toLicenseResponse(&license), nil
}

func (s *managerService) ListLicenses(ctx context.Context, actorID int64, page, limit int) ([]LicenseResponse, int64, error) {
	var res []LicenseResponse
	var total int64
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		licenses, count, err := s.repos.Licenses.List(txCtx, page, limit)
		if err != nil {
			return "", err
		}
		total = count
		res = make([]LicenseResponse, 0, len(licenses))
		for i := range licenses {
			res = append(res, *toLicenseResponse(&licenses[i]))
		}
		return "Licenses listed", nil
	})
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

// DeleteLicense cascades to the license's installations
func (s *managerService) DeleteLicense(ctx context.Context, actorID, licenseID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if _, err := s.repos.Licenses.GetByID(txCtx, licenseID); err != nil {
			return "", lookupError("License", licenseID, err)
		}
		if err := s.repos.Licenses.Delete(txCtx, licenseID); err != nil {
			return "", err
		}
		return fmt.Sprintf("License deleted: %d", licenseID), nil
	})
}

func (s *managerService) CreateInstallation(ctx context.Context, actorID int64, req CreateInstallationRequest) (*InstallationResponse, error) {
	installed, err := ParseDate(req.InstallDate)
	if err != nil {
		return nil, err
	}

	installation := model.Installation{ComputerID: req.ComputerID, LicenseID: req.LicenseID, InstallDate: installed}
	err = s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		computer, err := s.repos.Computers.GetByID(txCtx, req.ComputerID)
		if err != nil {
			return "", lookupError("Computer", req.ComputerID, err)
		}
		license, err := s.repos.Licenses.GetByID(txCtx, req.LicenseID)
		if err != nil {
			return "", lookupError("License", req.LicenseID, err)
		}
		if err := s.repos.Installations.Create(txCtx, &installation); err != nil {
			return "", err
		}
		name := ""
		if license.Software != nil {
			name = license.Software.Name
		}
		return fmt.Sprintf("Installation created: %s on %s", name, computer.InventoryNumber), nil
	})
	if err != nil {
		return nil, err
	}
	return toInstallationResponse(&installation), nil
}
