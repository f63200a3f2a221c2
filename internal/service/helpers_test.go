package service_test

import (
	"context"
	"sync"
	"testing"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/model"
	"swmanager/internal/repository"
	"swmanager/internal/service"
	"swmanager/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []interface{}
}

func (f *recordingFeed) Publish(event interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *recordingFeed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type testEnv struct {
	db         *gorm.DB
	ctx        context.Context
	actor      model.User
	feed       *recordingFeed
	admin      service.AdminService
	manager    service.ManagerService
	reports    service.ReportService
	supervisor service.SupervisorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)

	actor := model.User{Username: "boss", Password: "x", Role: model.RoleAdmin, FullName: "The Boss"}
	require.NoError(t, db.Create(&actor).Error)

	txManager := repository.NewTransactionManager()
	auditRepo := repository.NewAuditLogRepository()
	feed := &recordingFeed{}

	return &testEnv{
		db:    db,
		ctx:   testutil.Scoped(db),
		actor: actor,
		feed:  feed,
		admin: service.NewAdminService(txManager, repository.NewUserRepository(), repository.NewSoftwareTypeRepository(),
			auditRepo, auth.SHA256Hasher{}, feed),
		manager: service.NewManagerService(txManager, service.ManagerRepositories{
			Computers:     repository.NewComputerRepository(),
			Departments:   repository.NewDepartmentRepository(),
			Assignments:   repository.NewComputerAssignmentRepository(),
			SoftwareTypes: repository.NewSoftwareTypeRepository(),
			Software:      repository.NewSoftwareRepository(),
			Vendors:       repository.NewVendorRepository(),
			Licenses:      repository.NewLicenseRepository(),
			Installations: repository.NewInstallationRepository(),
			AuditLogs:     auditRepo,
		}, feed),
		reports:    service.NewReportService(txManager, repository.NewReportRepository(), auditRepo, feed),
		supervisor: service.NewSupervisorService(txManager, repository.NewDepartmentRepository(), repository.NewLicenseRepository(), auditRepo, feed),
	}
}

func (e *testEnv) auditCount(t *testing.T) int64 {
	return testutil.Count(t, e.db, "audit_logs")
}

func (e *testEnv) lastAudit(t *testing.T) model.AuditLog {
	t.Helper()
	var entry model.AuditLog
	require.NoError(t, e.db.Order("log_id desc").First(&entry).Error)
	return entry
}

func (e *testEnv) softwareType(t *testing.T, name string) *service.SoftwareTypeResponse {
	t.Helper()
	res, err := e.admin.CreateSoftwareType(e.ctx, e.actor.UserID, service.CreateSoftwareTypeRequest{Name: name})
	require.NoError(t, err)
	return res
}

func (e *testEnv) software(t *testing.T, typeID int64, code string) *service.SoftwareResponse {
	t.Helper()
	res, err := e.manager.CreateSoftware(e.ctx, e.actor.UserID, service.CreateSoftwareRequest{
		SWTypeID: typeID, Code: code, Name: code + " name", Manufacturer: "ACME",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) vendor(t *testing.T, phone string) *service.VendorResponse {
	t.Helper()
	res, err := e.manager.CreateVendor(e.ctx, e.actor.UserID, service.CreateVendorRequest{
		Name: "Vendor " + phone, Address: "1 Main St", Phone: phone,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) license(t *testing.T, softwareID, vendorID int64, start, end string) *service.LicenseResponse {
	t.Helper()
	res, err := e.manager.CreateLicense(e.ctx, e.actor.UserID, service.CreateLicenseRequest{
		SoftwareID: softwareID, VendorID: vendorID, StartDate: start, EndDate: end,
		PricePerUnit: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) computer(t *testing.T, inventory string) *service.ComputerResponse {
	t.Helper()
	res, err := e.manager.CreateComputer(e.ctx, e.actor.UserID, service.CreateComputerRequest{
		InventoryNumber: inventory, ComputerType: "workstation", PurchaseDate: "2023-01-15",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) department(t *testing.T, code string) *service.DepartmentResponse {
	t.Helper()
	res, err := e.manager.CreateDepartment(e.ctx, e.actor.UserID, service.CreateDepartmentRequest{
		DeptCode: code, DeptName: "Department " + code,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) assign(t *testing.T, computerID, deptID int64, start string, end *string) *service.ComputerAssignmentResponse {
	t.Helper()
	res, err := e.manager.CreateComputerAssignment(e.ctx, e.actor.UserID, service.CreateComputerAssignmentRequest{
		ComputerID: computerID, DeptID: deptID, StartDate: start, EndDate: end,
		DocNumber: "DOC-" + start, DocDate: start, DocType: "order",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) install(t *testing.T, computerID, licenseID int64, date string) *service.InstallationResponse {
	t.Helper()
	res, err := e.manager.CreateInstallation(e.ctx, e.actor.UserID, service.CreateInstallationRequest{
		ComputerID: computerID, LicenseID: licenseID, InstallDate: date,
	})
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }

// messageOf returns the client-facing message of an application error
func messageOf(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected an application error, got %v", err)
	return appErr.Message
}
