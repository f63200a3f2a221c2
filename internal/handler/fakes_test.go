package handler

import (
	"context"
	"time"

	"swmanager/internal/model"
	"swmanager/internal/service"
)

type fakeLoginService struct {
	login func(ctx context.Context, req service.LoginRequest) (*service.TokenResponse, error)
}

func (f *fakeLoginService) Login(ctx context.Context, req service.LoginRequest) (*service.TokenResponse, error) {
	return f.login(ctx, req)
}

type fakeAdminService struct {
	service.AdminService
	createUser   func(actorID int64, req service.CreateUserRequest) (*service.UserResponse, error)
	listUsers    func(actorID int64, page, limit int) ([]service.UserResponse, int64, error)
	deleteUser   func(actorID, userID int64) error
	getAuditLogs func(page, limit int) ([]service.AuditLogResponse, int64, error)
}

func (f *fakeAdminService) CreateUser(_ context.Context, actorID int64, req service.CreateUserRequest) (*service.UserResponse, error) {
	return f.createUser(actorID, req)
}

func (f *fakeAdminService) ListUsers(_ context.Context, actorID int64, page, limit int) ([]service.UserResponse, int64, error) {
	return f.listUsers(actorID, page, limit)
}

func (f *fakeAdminService) DeleteUser(_ context.Context, actorID, userID int64) error {
	return f.deleteUser(actorID, userID)
}

func (f *fakeAdminService) GetAuditLogs(_ context.Context, page, limit int) ([]service.AuditLogResponse, int64, error) {
	return f.getAuditLogs(page, limit)
}

type fakeManagerService struct {
	service.ManagerService
	createComputer func(actorID int64, req service.CreateComputerRequest) (*service.ComputerResponse, error)
	deleteComputer func(actorID, id int64) error
	deleteLicense  func(actorID, id int64) error
}

func (f *fakeManagerService) CreateComputer(_ context.Context, actorID int64, req service.CreateComputerRequest) (*service.ComputerResponse, error) {
	return f.createComputer(actorID, req)
}

func (f *fakeManagerService) DeleteComputer(_ context.Context, actorID, id int64) error {
	return f.deleteComputer(actorID, id)
}

func (f *fakeManagerService) DeleteLicense(_ context.Context, actorID, id int64) error {
	return f.deleteLicense(actorID, id)
}

type fakeReportService struct {
	service.ReportService
	installedSoftware func(actorID int64, asOf time.Time) ([]model.InstalledSoftwareRow, error)
}

func (f *fakeReportService) InstalledSoftware(_ context.Context, actorID int64, asOf time.Time) ([]model.InstalledSoftwareRow, error) {
	return f.installedSoftware(actorID, asOf)
}

type fakeSupervisorService struct {
	service.SupervisorService
	expiring func(actorID int64, from, to time.Time) ([]service.LicenseResponse, error)
}

func (f *fakeSupervisorService) GetExpiringLicenses(_ context.Context, actorID int64, from, to time.Time) ([]service.LicenseResponse, error) {
	return f.expiring(actorID, from, to)
}
