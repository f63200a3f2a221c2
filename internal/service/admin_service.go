package service

import (
	"context"
	"fmt"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/model"
	"swmanager/internal/repository"
)

// AdminService manages users, software types and the audit trail
type AdminService interface {
	CreateUser(ctx context.Context, actorID int64, req CreateUserRequest) (*UserResponse, error)
	UpdateUser(ctx context.Context, actorID, userID int64, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
	ListUsers(ctx context.Context, actorID int64, page, limit int) ([]UserResponse, int64, error)
	CreateSoftwareType(ctx context.Context, actorID int64, req CreateSoftwareTypeRequest) (*SoftwareTypeResponse, error)
	DeleteSoftwareType(ctx context.Context, actorID, swTypeID int64) error
	GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type adminService struct {
	uow       *unitOfWork
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	typeRepo  repository.SoftwareTypeRepository
	auditRepo repository.AuditLogRepository
	hasher    auth.PasswordHasher
}

func NewAdminService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	typeRepo repository.SoftwareTypeRepository,
	auditRepo repository.AuditLogRepository,
	hasher auth.PasswordHasher,
	feed AuditFeed,
) AdminService {
	return &adminService{
		uow:       newUnitOfWork(txManager, auditRepo, feed),
		txManager: txManager,
		userRepo:  userRepo,
		typeRepo:  typeRepo,
		auditRepo: auditRepo,
		hasher:    hasher,
	}
}

func (s *adminService) CreateUser(ctx context.Context, actorID int64, req CreateUserRequest) (*UserResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, apperror.InvalidInput("Invalid role: " + req.Role)
	}
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{Username: req.Username, Password: hashed, Role: role, FullName: req.FullName}
	err = s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if err := s.userRepo.Create(txCtx, &user); err != nil {
			return "", err
		}
		return "User created: " + user.Username, nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(&user), nil
}

func (s *adminService) UpdateUser(ctx context.Context, actorID, userID int64, req UpdateUserRequest) (*UserResponse, error) {
	var user *model.User
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		found, err := s.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return "", lookupError("User", userID, err)
		}
		user = found

		if req.Username != "" {
			user.Username = req.Username
		}
		if req.FullName != "" {
			user.FullName = req.FullName
		}
		if req.Role != "" {
			role := model.Role(req.Role)
			if !role.Valid() {
				return "", apperror.InvalidInput("Invalid role: " + req.Role)
			}
			user.Role = role
		}
		if req.Password != "" {
			hashed, err := s.hasher.Hash(req.Password)
			if err != nil {
				return "", err
			}
			user.Password = hashed
		}

		if err := s.userRepo.Update(txCtx, user); err != nil {
			return "", err
		}
		return "User updated: " + user.Username, nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser removes the user and, through the cascade, their audit trail
func (s *adminService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return apperror.Conflict("Cannot delete the current user", nil)
	}
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		user, err := s.userRepo.GetByID(txCtx, userID)
		if err != nil {
			return "", lookupError("User", userID, err)
		}
		if err := s.userRepo.Delete(txCtx, userID); err != nil {
			return "", err
		}
		return "User deleted: " + user.Username, nil
	})
}

func (s *adminService) ListUsers(ctx context.Context, actorID int64, page, limit int) ([]UserResponse, int64, error) {
	var res []UserResponse
	var total int64
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		users, count, err := s.userRepo.List(txCtx, page, limit)
		if err != nil {
			return "", err
		}
		total = count
		res = make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, *toUserResponse(&users[i]))
		}
		return "Users listed", nil
	})
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (s *adminService) CreateSoftwareType(ctx context.Context, actorID int64, req CreateSoftwareTypeRequest) (*SoftwareTypeResponse, error) {
	swType := model.SoftwareType{Name: req.Name}
	err := s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		if err := s.typeRepo.Create(txCtx, &swType); err != nil {
			return "", err
		}
		return "Software type created: " + swType.Name, nil
	})
	if err != nil {
		return nil, err
	}
	return toSoftwareTypeResponse(&swType), nil
}

// DeleteSoftwareType cascades to the type's software, their licenses and installations
func (s *adminService) DeleteSoftwareType(ctx context.Context, actorID, swTypeID int64) error {
	return s.uow.run(ctx, actorID, func(txCtx context.Context) (string, error) {
		swType, err := s.typeRepo.GetByID(txCtx, swTypeID)
		if err != nil {
			return "", lookupError("Software Type", swTypeID, err)
		}
		if err := s.typeRepo.Delete(txCtx, swTypeID); err != nil {
			return "", err
		}
		return "Software type deleted: " + swType.Name, nil
	})
}

// GetAuditLogs reads the trail without adding to it
func (s *adminService) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	var res []AuditLogResponse
	var total int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		logs, count, err := s.auditRepo.List(txCtx, page, limit)
		if err != nil {
			return err
		}
		total = count
		res = make([]AuditLogResponse, 0, len(logs))
		for i := range logs {
			res = append(res, toAuditLogResponse(&logs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return res, total, nil
}
