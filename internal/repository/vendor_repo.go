package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityVendor = "Vendor"

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id int64) (*model.Vendor, error)
	Delete(ctx context.Context, id int64) error
}

type vendorRepository struct{}

func NewVendorRepository() VendorRepository {
	return &vendorRepository{}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return translateWriteError(entityVendor, GetDB(ctx).Create(vendor).Error)
}

func (r *vendorRepository) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx).First(&vendor, "vendor_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityVendor, err)
	}
	return &vendor, nil
}

func (r *vendorRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entityVendor, GetDB(ctx).Where("vendor_id = ?", id).Delete(&model.Vendor{}).Error)
}
