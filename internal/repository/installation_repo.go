package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityInstallation = "Installation"

type InstallationRepository interface {
	Create(ctx context.Context, installation *model.Installation) error
}

type installationRepository struct{}

func NewInstallationRepository() InstallationRepository {
	return &installationRepository{}
}

func (r *installationRepository) Create(ctx context.Context, installation *model.Installation) error {
	return translateWriteError(entityInstallation, GetDB(ctx).Create(installation).Error)
}
