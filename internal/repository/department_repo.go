package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityDepartment = "Department"

type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id int64) (*model.Department, error)
	Delete(ctx context.Context, id int64) error
	ListAssignedComputers(ctx context.Context, deptID int64) ([]model.Computer, error)
	ListInstalledSoftware(ctx context.Context, deptID int64) ([]model.Software, error)
}

type departmentRepository struct{}

func NewDepartmentRepository() DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return translateWriteError(entityDepartment, GetDB(ctx).Create(dept).Error)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx).First(&dept, "dept_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityDepartment, err)
	}
	return &dept, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entityDepartment, GetDB(ctx).Where("dept_id = ?", id).Delete(&model.Department{}).Error)
}

// ListAssignedComputers returns every computer whose assignment record points at the department
func (r *departmentRepository) ListAssignedComputers(ctx context.Context, deptID int64) ([]model.Computer, error) {
	var computers []model.Computer
	if err := GetDB(ctx).
		Joins("JOIN computer_assignments ON computer_assignments.computer_id = computers.computer_id").
		Where("computer_assignments.dept_id = ?", deptID).
		Order("computers.inventory_number").
		Find(&computers).Error; err != nil {
		return nil, translateReadError(entityDepartment, err)
	}
	return computers, nil
}

// ListInstalledSoftware returns the distinct software installed on the department's computers
func (r *departmentRepository) ListInstalledSoftware(ctx context.Context, deptID int64) ([]model.Software, error) {
	var software []model.Software
	sub := GetDB(ctx).Table("installations").
		Select("DISTINCT licenses.software_id").
		Joins("JOIN licenses ON licenses.license_id = installations.license_id").
		Joins("JOIN computer_assignments ON computer_assignments.computer_id = installations.computer_id").
		Where("computer_assignments.dept_id = ?", deptID)

	if err := GetDB(ctx).Preload("SoftwareType").
		Where("software_id IN (?)", sub).
		Order("code").
		Find(&software).Error; err != nil {
		return nil, translateReadError(entityDepartment, err)
	}
	return software, nil
}
