package repository

import (
	"context"

	"swmanager/internal/model"

	"gorm.io/gorm"
)

const entityComputer = "Computer"

type ComputerRepository interface {
	Create(ctx context.Context, computer *model.Computer) error
	GetByID(ctx context.Context, id int64) (*model.Computer, error)
	GetWithInstallations(ctx context.Context, id int64) (*model.Computer, error)
	List(ctx context.Context, page, limit int) ([]model.Computer, int64, error)
	Delete(ctx context.Context, id int64) error
}

type computerRepository struct{}

func NewComputerRepository() ComputerRepository {
	return &computerRepository{}
}

func (r *computerRepository) Create(ctx context.Context, computer *model.Computer) error {
	return translateWriteError(entityComputer, GetDB(ctx).Create(computer).Error)
}

func (r *computerRepository) GetByID(ctx context.Context, id int64) (*model.Computer, error) {
	var computer model.Computer
	if err := GetDB(ctx).First(&computer, "computer_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityComputer, err)
	}
	return &computer, nil
}

// GetWithInstallations loads the computer together with installations -> license -> software -> type
func (r *computerRepository) GetWithInstallations(ctx context.Context, id int64) (*model.Computer, error) {
	var computer model.Computer
	if err := GetDB(ctx).
		Preload("Installations", func(db *gorm.DB) *gorm.DB { return db.Order("install_date, installation_id") }).
		Preload("Installations.License").
		Preload("Installations.License.Software").
		Preload("Installations.License.Software.SoftwareType").
		First(&computer, "computer_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityComputer, err)
	}
	return &computer, nil
}

// List returns computers with their current assignment and department
func (r *computerRepository) List(ctx context.Context, page, limit int) ([]model.Computer, int64, error) {
	var computers []model.Computer
	var total int64

	db := GetDB(ctx)
	if err := db.Model(&model.Computer{}).Count(&total).Error; err != nil {
		return nil, 0, translateReadError(entityComputer, err)
	}

	offset := (page - 1) * limit
	if err := db.Preload("Assignment.Department").
		Order("inventory_number").
		Offset(offset).Limit(limit).
		Find(&computers).Error; err != nil {
		return nil, 0, translateReadError(entityComputer, err)
	}
	return computers, total, nil
}

func (r *computerRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entityComputer, GetDB(ctx).Where("computer_id = ?", id).Delete(&model.Computer{}).Error)
}
