package repository

import (
	"context"
	"time"

	"swmanager/internal/model"
)

const entityLicense = "License"

type LicenseRepository interface {
	Create(ctx context.Context, license *model.License) error
	GetByID(ctx context.Context, id int64) (*model.License, error)
	List(ctx context.Context, page, limit int) ([]model.License, int64, error)
	Delete(ctx context.Context, id int64) error
	FindExpiring(ctx context.Context, from, to time.Time) ([]model.License, error)
}

type licenseRepository struct{}

func NewLicenseRepository() LicenseRepository {
	return &licenseRepository{}
}

func (r *licenseRepository) Create(ctx context.Context, license *model.License) error {
	return translateWriteError(entityLicense, GetDB(ctx).Create(license).Error)
}

// GetByID loads the license with its software and vendor
func (r *licenseRepository) GetByID(ctx context.Context, id int64) (*model.License, error) {
	var license model.License
	if err := GetDB(ctx).
		Preload("Software").
		Preload("Vendor").
		First(&license, "license_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityLicense, err)
	}
	return &license, nil
}

func (r *licenseRepository) List(ctx context.Context, page, limit int) ([]model.License, int64, error) {
	var licenses []model.License
	var total int64

	db := GetDB(ctx)
	if err := db.Model(&model.License{}).Count(&total).Error; err != nil {
		return nil, 0, translateReadError(entityLicense, err)
	}

	offset := (page - 1) * limit
	if err := db.Preload("Software").Preload("Vendor").
		Order("license_id").
		Offset(offset).Limit(limit).
		Find(&licenses).Error; err != nil {
		return nil, 0, translateReadError(entityLicense, err)
	}
	return licenses, total, nil
}

func (r *licenseRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entityLicense, GetDB(ctx).Where("license_id = ?", id).Delete(&model.License{}).Error)
}

// FindExpiring returns licenses whose end date falls on a day in [from, to], earliest first
func (r *licenseRepository) FindExpiring(ctx context.Context, from, to time.Time) ([]model.License, error) {
	start, _ := dayBounds(from)
	_, end := dayBounds(to)
	var licenses []model.License
	if err := GetDB(ctx).
		Preload("Software").
		Preload("Vendor").
		Where("end_date >= ? AND end_date < ?", start, end).
		Order("end_date ASC, license_id ASC").
		Find(&licenses).Error; err != nil {
		return nil, translateReadError(entityLicense, err)
	}
	return licenses, nil
}
