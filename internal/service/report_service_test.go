package service_test

import (
	"testing"
	"time"

	"swmanager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := service.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestReports_InstalledSoftwareScenario(t *testing.T) {
	env := newTestEnv(t)
	osType := env.softwareType(t, "OS")
	win := env.software(t, osType.SWTypeID, "WIN11")
	v := env.vendor(t, "555-0199")
	lic := env.license(t, win.SoftwareID, v.VendorID, "2024-01-01", "2024-12-31")
	c := env.computer(t, "INV-100")
	env.install(t, c.ComputerID, lic.LicenseID, "2024-03-01")

	rows, err := env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, "2024-04-01"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "WIN11", rows[0].SWCode)
	assert.Equal(t, "OS", rows[0].SWType)
	assert.Equal(t, "WIN11 name", rows[0].SWName)
	assert.Equal(t, "2024-03-01", rows[0].InstallDate.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-01-01", rows[0].LicenseStartDate.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", rows[0].LicenseEndDate.UTC().Format("2006-01-02"))
	assert.Equal(t, "Installed software report generated", env.lastAudit(t).Action)

	rows, err = env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, "2024-02-01"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, "2024-03-01"))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "an installation on the report date is included")
}

func TestReports_InstalledSoftwareOrdering(t *testing.T) {
	env := newTestEnv(t)
	st := env.softwareType(t, "Apps")
	b := env.software(t, st.SWTypeID, "B-APP")
	a := env.software(t, st.SWTypeID, "A-APP")
	v := env.vendor(t, "1")
	bLate := env.license(t, b.SoftwareID, v.VendorID, "2024-06-01", "2025-06-01")
	bEarly := env.license(t, b.SoftwareID, v.VendorID, "2024-01-01", "2025-01-01")
	aLic := env.license(t, a.SoftwareID, v.VendorID, "2024-03-01", "2025-03-01")
	c := env.computer(t, "INV-1")
	env.install(t, c.ComputerID, bLate.LicenseID, "2024-06-02")
	env.install(t, c.ComputerID, bEarly.LicenseID, "2024-01-02")
	env.install(t, c.ComputerID, aLic.LicenseID, "2024-03-02")

	rows, err := env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, "2024-12-31"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A-APP", rows[0].SWCode)
	assert.Equal(t, "B-APP", rows[1].SWCode)
	assert.Equal(t, "2024-01-01", rows[1].LicenseStartDate.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-06-01", rows[2].LicenseStartDate.UTC().Format("2006-01-02"))
}

func TestReports_LicensedSoftwareCount(t *testing.T) {
	env := newTestEnv(t)
	st := env.softwareType(t, "OS")
	win := env.software(t, st.SWTypeID, "WIN11")
	linux := env.software(t, st.SWTypeID, "DEBIAN")
	env.software(t, st.SWTypeID, "UNUSED")
	v := env.vendor(t, "1")
	env.license(t, win.SoftwareID, v.VendorID, "2024-01-01", "2024-12-31")
	env.license(t, win.SoftwareID, v.VendorID, "2024-06-01", "2024-06-30")
	env.license(t, win.SoftwareID, v.VendorID, "2023-01-01", "2023-12-31")
	env.license(t, linux.SoftwareID, v.VendorID, "2024-06-15", "2025-06-15")

	counts, err := env.reports.LicensedSoftwareCount(env.ctx, env.actor.UserID, day(t, "2024-06-15"))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "DEBIAN", counts[0].Code)
	assert.Equal(t, int64(1), counts[0].TotalLicenses)
	assert.Equal(t, "WIN11", counts[1].Code)
	assert.Equal(t, int64(2), counts[1].TotalLicenses)
	assert.Equal(t, "OS", counts[1].SWTypeName)
	assert.Equal(t, "Software licenses count report generated", env.lastAudit(t).Action)

	counts, err = env.reports.LicensedSoftwareCount(env.ctx, env.actor.UserID, day(t, "2030-01-01"))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestReports_DepartmentComputerCount(t *testing.T) {
	env := newTestEnv(t)
	it := env.department(t, "IT")
	hr := env.department(t, "HR")
	ops := env.department(t, "OPS")
	env.department(t, "EMPTY")

	// IT: one open-ended, one closed window covering the date, one already ended
	env.assign(t, env.computer(t, "INV-1").ComputerID, it.DeptID, "2024-01-01", nil)
	env.assign(t, env.computer(t, "INV-2").ComputerID, it.DeptID, "2024-01-01", strPtr("2024-12-31"))
	env.assign(t, env.computer(t, "INV-3").ComputerID, it.DeptID, "2024-01-01", strPtr("2024-03-01"))
	// HR: one computer, window ends exactly on the date
	env.assign(t, env.computer(t, "INV-4").ComputerID, hr.DeptID, "2024-02-01", strPtr("2024-06-15"))
	// OPS: assignment starts after the date
	env.assign(t, env.computer(t, "INV-5").ComputerID, ops.DeptID, "2024-07-01", nil)

	counts, err := env.reports.DepartmentComputerCount(env.ctx, env.actor.UserID, day(t, "2024-06-15"))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "HR", counts[0].DeptCode)
	assert.Equal(t, int64(1), counts[0].TotalComputers)
	assert.Equal(t, "IT", counts[1].DeptCode)
	assert.Equal(t, int64(2), counts[1].TotalComputers)
	assert.Equal(t, "Department assigned computers report generated", env.lastAudit(t).Action)
}

func TestReports_DateCoversWholeDay(t *testing.T) {
	env := newTestEnv(t)
	osType := env.softwareType(t, "OS")
	win := env.software(t, osType.SWTypeID, "WIN11")
	v := env.vendor(t, "555-0199")
	lic := env.license(t, win.SoftwareID, v.VendorID, "2024-01-01", "2024-06-15T08:00:00Z")
	c := env.computer(t, "INV-100")
	d := env.department(t, "IT")
	env.install(t, c.ComputerID, lic.LicenseID, "2024-06-15T10:30:00Z")
	env.assign(t, c.ComputerID, d.DeptID, "2024-06-15T16:00:00Z", strPtr("2024-06-20T09:00:00Z"))

	for _, date := range []string{"2024-06-15", "2024-06-15T00:00:00Z"} {
		rows, err := env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, date))
		require.NoError(t, err)
		assert.Len(t, rows, 1, "install later on %s", date)

		counts, err := env.reports.DepartmentComputerCount(env.ctx, env.actor.UserID, day(t, date))
		require.NoError(t, err)
		assert.Len(t, counts, 1, "assignment starting later on %s", date)
	}

	rows, err := env.reports.InstalledSoftware(env.ctx, env.actor.UserID, day(t, "2024-06-14T23:59:59Z"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	licenses, err := env.reports.LicensedSoftwareCount(env.ctx, env.actor.UserID, day(t, "2024-06-15T20:00:00Z"))
	require.NoError(t, err)
	require.Len(t, licenses, 1, "a license ending in the morning is still valid that evening")
	assert.Equal(t, int64(1), licenses[0].TotalLicenses)

	counts, err := env.reports.DepartmentComputerCount(env.ctx, env.actor.UserID, day(t, "2024-06-20T23:00:00Z"))
	require.NoError(t, err)
	assert.Len(t, counts, 1)

	counts, err = env.reports.DepartmentComputerCount(env.ctx, env.actor.UserID, day(t, "2024-06-21"))
	require.NoError(t, err)
	assert.Empty(t, counts)
}
