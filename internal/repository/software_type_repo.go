package repository

import (
	"context"

	"swmanager/internal/model"
)

const entitySoftwareType = "Software type"

type SoftwareTypeRepository interface {
	Create(ctx context.Context, swType *model.SoftwareType) error
	GetByID(ctx context.Context, id int64) (*model.SoftwareType, error)
	Delete(ctx context.Context, id int64) error
}

type softwareTypeRepository struct{}

func NewSoftwareTypeRepository() SoftwareTypeRepository {
	return &softwareTypeRepository{}
}

func (r *softwareTypeRepository) Create(ctx context.Context, swType *model.SoftwareType) error {
	return translateWriteError(entitySoftwareType, GetDB(ctx).Create(swType).Error)
}

func (r *softwareTypeRepository) GetByID(ctx context.Context, id int64) (*model.SoftwareType, error) {
	var swType model.SoftwareType
	if err := GetDB(ctx).First(&swType, "sw_type_id = ?", id).Error; err != nil {
		return nil, translateReadError(entitySoftwareType, err)
	}
	return &swType, nil
}

func (r *softwareTypeRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entitySoftwareType, GetDB(ctx).Where("sw_type_id = ?", id).Delete(&model.SoftwareType{}).Error)
}
