package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityComputerAssignment = "Computer assignment"

type ComputerAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.ComputerAssignment) error
	GetByComputerID(ctx context.Context, computerID int64) (*model.ComputerAssignment, error)
}

type computerAssignmentRepository struct{}

func NewComputerAssignmentRepository() ComputerAssignmentRepository {
	return &computerAssignmentRepository{}
}

func (r *computerAssignmentRepository) Create(ctx context.Context, assignment *model.ComputerAssignment) error {
	return translateWriteError(entityComputerAssignment, GetDB(ctx).Create(assignment).Error)
}

func (r *computerAssignmentRepository) GetByComputerID(ctx context.Context, computerID int64) (*model.ComputerAssignment, error) {
	var assignment model.ComputerAssignment
	if err := GetDB(ctx).Preload("Department").First(&assignment, "computer_id = ?", computerID).Error; err != nil {
		return nil, translateReadError(entityComputerAssignment, err)
	}
	return &assignment, nil
}
