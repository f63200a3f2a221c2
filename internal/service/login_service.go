package service

import (
	"context"
	"errors"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/model"
	"swmanager/internal/repository"

	"go.uber.org/zap"
)

const msgBadCredentials = "Incorrect username or password"

// LoginService authenticates users against the root scope
type LoginService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

type loginService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    auth.PasswordHasher
	tokens    *auth.TokenService
}

func NewLoginService(txManager repository.TransactionManager, userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService) LoginService {
	return &loginService{txManager: txManager, userRepo: userRepo, hasher: hasher, tokens: tokens}
}

// Login returns a signed token for valid credentials. Unknown users and wrong passwords
// fail with the same Forbidden error.
func (s *loginService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var user *model.User
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.userRepo.GetByUsername(txCtx, req.Username)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Forbidden(msgBadCredentials)
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		zap.L().Info("login rejected", zap.String("username", req.Username))
		return nil, apperror.Forbidden(msgBadCredentials)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}
