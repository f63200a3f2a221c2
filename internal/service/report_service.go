package service

import (
	"context"
	"time"

	"swmanager/internal/model"
	"swmanager/internal/repository"
)

// ReportService produces the point-in-time inventory reports. Generating a report is audited.
type ReportService interface {
	InstalledSoftware(ctx context.Context, actorID int64, asOf time.Time) ([]model.InstalledSoftwareRow, error)
	LicensedSoftwareCount(ctx context.Context, actorID int64, asOf time.Time) ([]model.SoftwareLicenseCount, error)
	DepartmentComputerCount(ctx context.Context, actorID int64, asOf time.Time) ([]model.DepartmentComputerCount, error)
}

type reportService struct {
	uow        *unitOfWork
	reportRepo repository.ReportRepository
}

func NewReportService(txManager repository.TransactionManager, reportRepo repository.ReportRepository, auditRepo repository.AuditLogRepository, feed AuditFeed) ReportService {
	return &reportService{
		uow:        newUnitOfWork(txManager, auditRepo, feed),
		reportRepo: reportRepo,
	}
}

// InstalledSoftware lists installations made on or before asOf, ordered by software code and license start
func (s *reportService) InstalledSoftware(ctx context.Context, actorID int64, asOf time.Time) ([]model.InstalledSoftwareRow, error) {
	var rows []model.InstalledSoftwareRow
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		var err error
		rows, err = s.reportRepo.InstalledSoftware(txCtx, asOf)
		if err != nil {
			return "", err
		}
		return "Installed software report generated", nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LicensedSoftwareCount counts, per software, the licenses whose window contains asOf
func (s *reportService) LicensedSoftwareCount(ctx context.Context, actorID int64, asOf time.Time) ([]model.SoftwareLicenseCount, error) {
	var rows []model.SoftwareLicenseCount
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		var err error
		rows, err = s.reportRepo.SoftwareLicenseCounts(txCtx, asOf)
		if err != nil {
			return "", err
		}
		return "Software licenses count report generated", nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DepartmentComputerCount counts, per department, the assignments active at asOf.
// Open-ended assignments are active from their start date onward.
func (s *reportService) DepartmentComputerCount(ctx context.Context, actorID int64, asOf time.Time) ([]model.DepartmentComputerCount, error) {
	var rows []model.DepartmentComputerCount
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		var err error
		rows, err = s.reportRepo.DepartmentComputerCounts(txCtx, asOf)
		if err != nil {
			return "", err
		}
		return "Department assigned computers report generated", nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
