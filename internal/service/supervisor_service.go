package service

import (
	"context"
	"time"

	"swmanager/internal/repository"
)

// SupervisorService answers read-only questions about departments and license renewals
type SupervisorService interface {
	GetDepartmentInstalledSoftware(ctx context.Context, actorID, deptID int64) ([]SoftwareResponse, error)
	GetDepartmentAssignedComputers(ctx context.Context, actorID, deptID int64) ([]ComputerResponse, error)
	GetExpiringLicenses(ctx context.Context, actorID int64, from, to time.Time) ([]LicenseResponse, error)
}

type supervisorService struct {
	uow         *unitOfWork
	deptRepo    repository.DepartmentRepository
	licenseRepo repository.LicenseRepository
}

func NewSupervisorService(
	txManager repository.TransactionManager,
	deptRepo repository.DepartmentRepository,
	licenseRepo repository.LicenseRepository,
	auditRepo repository.AuditLogRepository,
	feed AuditFeed,
) SupervisorService {
	return &supervisorService{
		uow:         newUnitOfWork(txManager, auditRepo, feed),
		deptRepo:    deptRepo,
		licenseRepo: licenseRepo,
	}
}

func (s *supervisorService) GetDepartmentInstalledSoftware(ctx context.Context, actorID, deptID int64) ([]SoftwareResponse, error) {
	var res []SoftwareResponse
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		dept, err := s.deptRepo.GetByID(txCtx, deptID)
		if err != nil {
			return "", lookupError("Department", deptID, err)
		}
		software, err := s.deptRepo.ListInstalledSoftware(txCtx, deptID)
		if err != nil {
			return "", err
		}
		res = make([]SoftwareResponse, 0, len(software))
		for i := range software {
			res = append(res, *toSoftwareResponse(&software[i]))
		}
		return "Department installed software retrieved: " + dept.DeptName, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *supervisorService) GetDepartmentAssignedComputers(ctx context.Context, actorID, deptID int64) ([]ComputerResponse, error) {
	var res []ComputerResponse
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		dept, err := s.deptRepo.GetByID(txCtx, deptID)
		if err != nil {
			return "", lookupError("Department", deptID, err)
		}
		computers, err := s.deptRepo.ListAssignedComputers(txCtx, deptID)
		if err != nil {
			return "", err
		}
		res = make([]ComputerResponse, 0, len(computers))
		for i := range computers {
			res = append(res, *toComputerResponse(&computers[i]))
		}
		return "Department assigned computers retrieved: " + dept.DeptName, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetExpiringLicenses returns licenses ending in [from, to], earliest end date first
func (s *supervisorService) GetExpiringLicenses(ctx context.Context, actorID int64, from, to time.Time) ([]LicenseResponse, error) {
	if err := checkWindow(from, to, "Expiring licenses"); err != nil {
		return nil, err
	}

	var res []LicenseResponse
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		licenses, err := s.licenseRepo.FindExpiring(txCtx, from, to)
		if err != nil {
			return "", err
		}
		res = make([]LicenseResponse, 0, len(licenses))
		for i := range licenses {
			res = append(res, *toLicenseResponse(&licenses[i]))
		}
		return "Expiring licenses retrieved", nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
