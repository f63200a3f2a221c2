package service_test

import (
	"testing"

	"swmanager/internal/apperror"
	"swmanager/internal/model"
	"swmanager/internal/service"
	"swmanager/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateWritesExactlyOneAudit(t *testing.T) {
	env := newTestEnv(t)
	before := env.auditCount(t)

	res, err := env.manager.CreateComputer(env.ctx, env.actor.UserID, service.CreateComputerRequest{
		InventoryNumber: "INV-001", ComputerType: "server", PurchaseDate: "2023-05-01",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ComputerID)
	assert.Equal(t, model.ComputerStatusActive, res.Status)

	assert.Equal(t, before+1, env.auditCount(t))
	entry := env.lastAudit(t)
	assert.Equal(t, env.actor.UserID, entry.UserID)
	assert.Equal(t, "Computer created: INV-001", entry.Action)
	assert.False(t, entry.ActionTime.IsZero())
	assert.Equal(t, 1, env.feed.count())
}

func TestManager_MissingReferenceRollsBack(t *testing.T) {
	env := newTestEnv(t)
	swType := env.softwareType(t, "OS")
	sw := env.software(t, swType.SWTypeID, "WIN11")
	auditBefore := env.auditCount(t)

	t.Run("license without vendor", func(t *testing.T) {
		_, err := env.manager.CreateLicense(env.ctx, env.actor.UserID, service.CreateLicenseRequest{
			SoftwareID: sw.SoftwareID, VendorID: 999, StartDate: "2024-01-01", EndDate: "2025-01-01",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.EqualError(t, err, "Vendor with ID:999 not found")
	})

	t.Run("software without type", func(t *testing.T) {
		_, err := env.manager.CreateSoftware(env.ctx, env.actor.UserID, service.CreateSoftwareRequest{
			SWTypeID: 42, Code: "X", Name: "X", Manufacturer: "Y",
		})
		assert.EqualError(t, err, "Software Type with ID:42 not found")
	})

	t.Run("installation without computer", func(t *testing.T) {
		_, err := env.manager.CreateInstallation(env.ctx, env.actor.UserID, service.CreateInstallationRequest{
			ComputerID: 5, LicenseID: 1, InstallDate: "2024-01-01",
		})
		assert.EqualError(t, err, "Computer with ID:5 not found")
	})

	t.Run("assignment without department", func(t *testing.T) {
		c := env.computer(t, "INV-X")
		auditBefore = env.auditCount(t)
		_, err := env.manager.CreateComputerAssignment(env.ctx, env.actor.UserID, service.CreateComputerAssignmentRequest{
			ComputerID: c.ComputerID, DeptID: 77, StartDate: "2024-01-01", DocNumber: "D1", DocDate: "2024-01-01", DocType: "order",
		})
		assert.EqualError(t, err, "Department with ID:77 not found")
	})

	assert.Zero(t, testutil.Count(t, env.db, "licenses"))
	assert.Zero(t, testutil.Count(t, env.db, "installations"))
	assert.Zero(t, testutil.Count(t, env.db, "computer_assignments"))
	assert.Equal(t, int64(1), testutil.Count(t, env.db, "software"))
	assert.Equal(t, auditBefore, env.auditCount(t))
}

func TestManager_AuditFailureRollsBackMutation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.manager.CreateComputer(env.ctx, 9999, service.CreateComputerRequest{
		InventoryNumber: "INV-GHOST", ComputerType: "workstation", PurchaseDate: "2024-01-01",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	assert.Zero(t, testutil.Count(t, env.db, "computers"))
	assert.Zero(t, env.auditCount(t))
	assert.Zero(t, env.feed.count())
}

func TestManager_UniquenessConflicts(t *testing.T) {
	env := newTestEnv(t)
	swType := env.softwareType(t, "OS")
	env.software(t, swType.SWTypeID, "WIN11")
	c := env.computer(t, "INV-1")
	d1 := env.department(t, "IT")
	d2 := env.department(t, "HR")
	env.assign(t, c.ComputerID, d1.DeptID, "2024-01-01", nil)

	t.Run("inventory number", func(t *testing.T) {
		_, err := env.manager.CreateComputer(env.ctx, env.actor.UserID, service.CreateComputerRequest{
			InventoryNumber: "INV-1", ComputerType: "server", PurchaseDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("software code", func(t *testing.T) {
		_, err := env.manager.CreateSoftware(env.ctx, env.actor.UserID, service.CreateSoftwareRequest{
			SWTypeID: swType.SWTypeID, Code: "WIN11", Name: "Other", Manufacturer: "M",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("second assignment for a computer", func(t *testing.T) {
		_, err := env.manager.CreateComputerAssignment(env.ctx, env.actor.UserID, service.CreateComputerAssignmentRequest{
			ComputerID: c.ComputerID, DeptID: d2.DeptID, StartDate: "2024-02-01", DocNumber: "D2", DocDate: "2024-02-01", DocType: "order",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Equal(t, "Computer already assigned to department: IT", messageOf(t, err))
	})

	t.Run("vendor phone", func(t *testing.T) {
		env.vendor(t, "555-0100")
		_, err := env.manager.CreateVendor(env.ctx, env.actor.UserID, service.CreateVendorRequest{
			Name: "Dup", Address: "x", Phone: "555-0100",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	assert.Equal(t, int64(1), testutil.Count(t, env.db, "computer_assignments"))
}

func TestManager_DateValidation(t *testing.T) {
	env := newTestEnv(t)
	c := env.computer(t, "INV-1")
	d := env.department(t, "IT")

	_, err := env.manager.CreateComputerAssignment(env.ctx, env.actor.UserID, service.CreateComputerAssignmentRequest{
		ComputerID: c.ComputerID, DeptID: d.DeptID, StartDate: "2024-05-01", EndDate: strPtr("2024-04-01"),
		DocNumber: "D", DocDate: "2024-05-01", DocType: "order",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = env.manager.CreateComputer(env.ctx, env.actor.UserID, service.CreateComputerRequest{
		InventoryNumber: "INV-2", ComputerType: "server", PurchaseDate: "01/02/2024",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = env.manager.CreateLicense(env.ctx, env.actor.UserID, service.CreateLicenseRequest{
		SoftwareID: 1, VendorID: 1, StartDate: "2024-01-01", EndDate: "2024-01-02",
		PricePerUnit: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestManager_CreateLicenseResponse(t *testing.T) {
	env := newTestEnv(t)
	swType := env.softwareType(t, "Office")
	sw := env.software(t, swType.SWTypeID, "O365")
	v := env.vendor(t, "555-0101")

	lic := env.license(t, sw.SoftwareID, v.VendorID, "2024-01-01", "2025-01-01")

	assert.Equal(t, "O365 name", lic.SoftwareName)
	assert.Equal(t, "Vendor 555-0101", lic.VendorName)
	assert.True(t, decimal.RequireFromString("10").Equal(lic.PricePerUnit))
	assert.Equal(t, "License created: O365 name by Vendor 555-0101", env.lastAudit(t).Action)
	assert.Equal(t, "Office", sw.SWTypeName)
}

func TestManager_CascadeDeletes(t *testing.T) {
	env := newTestEnv(t)

	build := func(t *testing.T, suffix string) (typeID, swID, vendorID, licID, compID, deptID int64) {
		st := env.softwareType(t, "Type-"+suffix)
		sw := env.software(t, st.SWTypeID, "SW-"+suffix)
		v := env.vendor(t, "PH-"+suffix)
		lic := env.license(t, sw.SoftwareID, v.VendorID, "2024-01-01", "2024-12-31")
		c := env.computer(t, "INV-"+suffix)
		d := env.department(t, "D-"+suffix)
		env.assign(t, c.ComputerID, d.DeptID, "2024-01-01", nil)
		env.install(t, c.ComputerID, lic.LicenseID, "2024-02-01")
		env.install(t, c.ComputerID, lic.LicenseID, "2024-03-01")
		return st.SWTypeID, sw.SoftwareID, v.VendorID, lic.LicenseID, c.ComputerID, d.DeptID
	}

	t.Run("software type removes software, licenses and installations", func(t *testing.T) {
		typeID, _, _, _, _, _ := build(t, "a")
		require.NoError(t, env.admin.DeleteSoftwareType(env.ctx, env.actor.UserID, typeID))

		assert.Zero(t, testutil.Count(t, env.db, "software"))
		assert.Zero(t, testutil.Count(t, env.db, "licenses"))
		assert.Zero(t, testutil.Count(t, env.db, "installations"))
		assert.Equal(t, int64(1), testutil.Count(t, env.db, "vendors"))
		assert.Equal(t, "Software type deleted: Type-a", env.lastAudit(t).Action)
	})

	t.Run("computer removes assignment and installations", func(t *testing.T) {
		_, _, _, _, compID, _ := build(t, "b")
		require.NoError(t, env.manager.DeleteComputer(env.ctx, env.actor.UserID, compID))

		var n int64
		env.db.Model(&model.ComputerAssignment{}).Where("computer_id = ?", compID).Count(&n)
		assert.Zero(t, n)
		env.db.Model(&model.Installation{}).Where("computer_id = ?", compID).Count(&n)
		assert.Zero(t, n)
		assert.Equal(t, int64(1), testutil.Count(t, env.db, "licenses"))
		assert.Equal(t, "Computer deleted: INV-b", env.lastAudit(t).Action)
	})

	t.Run("vendor removes licenses and installations", func(t *testing.T) {
		_, _, vendorID, _, _, _ := build(t, "c")
		require.NoError(t, env.manager.DeleteVendor(env.ctx, env.actor.UserID, vendorID))

		var n int64
		env.db.Model(&model.License{}).Where("vendor_id = ?", vendorID).Count(&n)
		assert.Zero(t, n)
		env.db.Model(&model.Installation{}).
			Joins("JOIN computers ON computers.computer_id = installations.computer_id").
			Where("computers.inventory_number = ?", "INV-c").Count(&n)
		assert.Zero(t, n)
	})

	t.Run("department removes its assignments only", func(t *testing.T) {
		_, _, _, _, compID, deptID := build(t, "d")
		require.NoError(t, env.manager.DeleteDepartment(env.ctx, env.actor.UserID, deptID))

		var n int64
		env.db.Model(&model.ComputerAssignment{}).Where("dept_id = ?", deptID).Count(&n)
		assert.Zero(t, n)
		env.db.Model(&model.Computer{}).Where("computer_id = ?", compID).Count(&n)
		assert.Equal(t, int64(1), n)
	})

	t.Run("software and license", func(t *testing.T) {
		_, swID, _, licID, _, _ := build(t, "e")
		require.NoError(t, env.manager.DeleteLicense(env.ctx, env.actor.UserID, licID))
		var n int64
		env.db.Model(&model.Installation{}).Where("license_id = ?", licID).Count(&n)
		assert.Zero(t, n)

		require.NoError(t, env.manager.DeleteSoftware(env.ctx, env.actor.UserID, swID))
		env.db.Model(&model.Software{}).Where("software_id = ?", swID).Count(&n)
		assert.Zero(t, n)
	})

	t.Run("missing entity", func(t *testing.T) {
		err := env.manager.DeleteComputer(env.ctx, env.actor.UserID, 4242)
		assert.EqualError(t, err, "Computer with ID:4242 not found")
	})
}

func TestManager_GetComputerSoftware(t *testing.T) {
	env := newTestEnv(t)
	st := env.softwareType(t, "OS")
	win := env.software(t, st.SWTypeID, "WIN11")
	office := env.software(t, st.SWTypeID, "AOFFICE")
	v := env.vendor(t, "1")
	l1 := env.license(t, win.SoftwareID, v.VendorID, "2024-01-01", "2025-01-01")
	l2 := env.license(t, win.SoftwareID, v.VendorID, "2024-06-01", "2025-06-01")
	l3 := env.license(t, office.SoftwareID, v.VendorID, "2024-01-01", "2025-01-01")
	c := env.computer(t, "INV-1")
	env.install(t, c.ComputerID, l1.LicenseID, "2024-02-01")
	env.install(t, c.ComputerID, l2.LicenseID, "2024-07-01")
	env.install(t, c.ComputerID, l3.LicenseID, "2024-03-01")

	res, err := env.manager.GetComputerSoftware(env.ctx, env.actor.UserID, c.ComputerID)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "AOFFICE", res[0].Code)
	assert.Equal(t, "WIN11", res[1].Code)
	assert.Equal(t, "OS", res[1].SWTypeName)
	assert.Equal(t, "Computer software retrieved: INV-1", env.lastAudit(t).Action)

	_, err = env.manager.GetComputerSoftware(env.ctx, env.actor.UserID, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestManager_ListComputersWithDepartment(t *testing.T) {
	env := newTestEnv(t)
	c1 := env.computer(t, "INV-2")
	env.computer(t, "INV-1")
	d := env.department(t, "IT")
	env.assign(t, c1.ComputerID, d.DeptID, "2024-01-01", nil)

	res, total, err := env.manager.ListComputers(env.ctx, env.actor.UserID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, res, 2)
	assert.Equal(t, "INV-1", res[0].InventoryNumber)
	assert.Nil(t, res[0].Department)
	require.NotNil(t, res[1].Department)
	assert.Equal(t, "IT", res[1].Department.DeptCode)
}
