package repository

import (
	"context"
	"time"

	"swmanager/internal/model"
)

const entityReport = "Report"

// dayBounds returns midnight UTC of t's calendar day and midnight of the next day.
// Report dates cover the whole day, whatever time of day was stored or asked for.
func dayBounds(t time.Time) (start, next time.Time) {
	y, m, d := t.UTC().Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ReportRepository runs the temporal aggregate queries. Each report is a single statement.
type ReportRepository interface {
	InstalledSoftware(ctx context.Context, asOf time.Time) ([]model.InstalledSoftwareRow, error)
	SoftwareLicenseCounts(ctx context.Context, asOf time.Time) ([]model.SoftwareLicenseCount, error)
	DepartmentComputerCounts(ctx context.Context, asOf time.Time) ([]model.DepartmentComputerCount, error)
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) InstalledSoftware(ctx context.Context, asOf time.Time) ([]model.InstalledSoftwareRow, error) {
	_, next := dayBounds(asOf)
	rows := make([]model.InstalledSoftwareRow, 0)
	if err := GetDB(ctx).Table("installations").
		Select("installations.install_date AS install_date, licenses.start_date AS license_start_date, licenses.end_date AS license_end_date, " +
			"software.name AS sw_name, software.code AS sw_code, software_types.name AS sw_type").
		Joins("JOIN licenses ON licenses.license_id = installations.license_id").
		Joins("JOIN software ON software.software_id = licenses.software_id").
		Joins("JOIN software_types ON software_types.sw_type_id = software.sw_type_id").
		Where("installations.install_date < ?", next).
		Order("software.code, licenses.start_date, installations.installation_id").
		Scan(&rows).Error; err != nil {
		return nil, translateReadError(entityReport, err)
	}
	return rows, nil
}

func (r *reportRepository) SoftwareLicenseCounts(ctx context.Context, asOf time.Time) ([]model.SoftwareLicenseCount, error) {
	day, next := dayBounds(asOf)
	rows := make([]model.SoftwareLicenseCount, 0)
	if err := GetDB(ctx).Table("software").
		Select("software.software_id, software.sw_type_id, software_types.name AS sw_type_name, software.code, software.name, " +
			"software.short_name, software.manufacturer, COUNT(licenses.license_id) AS total_licenses").
		Joins("JOIN licenses ON licenses.software_id = software.software_id").
		Joins("JOIN software_types ON software_types.sw_type_id = software.sw_type_id").
		Where("licenses.start_date < ? AND licenses.end_date >= ?", next, day).
		Group("software.software_id, software.sw_type_id, software_types.name, software.code, software.name, software.short_name, software.manufacturer").
		Order("software.code, MIN(licenses.start_date)").
		Scan(&rows).Error; err != nil {
		return nil, translateReadError(entityReport, err)
	}
	return rows, nil
}

func (r *reportRepository) DepartmentComputerCounts(ctx context.Context, asOf time.Time) ([]model.DepartmentComputerCount, error) {
	day, next := dayBounds(asOf)
	rows := make([]model.DepartmentComputerCount, 0)
	if err := GetDB(ctx).Table("departments").
		Select("departments.dept_id, departments.dept_code, departments.dept_name, departments.dept_short_name, " +
			"COUNT(computer_assignments.assignment_id) AS total_computers").
		Joins("JOIN computer_assignments ON computer_assignments.dept_id = departments.dept_id").
		Where("computer_assignments.start_date < ? AND (computer_assignments.end_date IS NULL OR computer_assignments.end_date >= ?)", next, day).
		Group("departments.dept_id, departments.dept_code, departments.dept_name, departments.dept_short_name").
		Order("departments.dept_code").
		Scan(&rows).Error; err != nil {
		return nil, translateReadError(entityReport, err)
	}
	return rows, nil
}
