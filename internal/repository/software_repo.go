package repository

import (
	"context"

	"swmanager/internal/model"
)

const entitySoftware = "Software"

type SoftwareRepository interface {
	Create(ctx context.Context, software *model.Software) error
	GetByID(ctx context.Context, id int64) (*model.Software, error)
	List(ctx context.Context, page, limit int) ([]model.Software, int64, error)
	Delete(ctx context.Context, id int64) error
}

type softwareRepository struct{}

func NewSoftwareRepository() SoftwareRepository {
	return &softwareRepository{}
}

func (r *softwareRepository) Create(ctx context.Context, software *model.Software) error {
	return translateWriteError(entitySoftware, GetDB(ctx).Create(software).Error)
}

// GetByID loads the software with its type
func (r *softwareRepository) GetByID(ctx context.Context, id int64) (*model.Software, error) {
	var software model.Software
	if err := GetDB(ctx).Preload("SoftwareType").First(&software, "software_id = ?", id).Error; err != nil {
		return nil, translateReadError(entitySoftware, err)
	}
	return &software, nil
}

func (r *softwareRepository) List(ctx context.Context, page, limit int) ([]model.Software, int64, error) {
	var software []model.Software
	var total int64

	db := GetDB(ctx)
	if err := db.Model(&model.Software{}).Count(&total).Error; err != nil {
		return nil, 0, translateReadError(entitySoftware, err)
	}

	offset := (page - 1) * limit
	if err := db.Preload("SoftwareType").Order("code").Offset(offset).Limit(limit).Find(&software).Error; err != nil {
		return nil, 0, translateReadError(entitySoftware, err)
	}
	return software, total, nil
}

func (r *softwareRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entitySoftware, GetDB(ctx).Where("software_id = ?", id).Delete(&model.Software{}).Error)
}
