package service

import (
	"context"
	"errors"

	"swmanager/internal/apperror"
	"swmanager/internal/model"
	"swmanager/internal/repository"
)

// AuditFeed receives audit entries after their transaction has committed
type AuditFeed interface {
	Publish(event interface{})
}

// unitOfWork runs an operation and its audit entry in one transaction
type unitOfWork struct {
	txManager repository.TransactionManager
	auditRepo repository.AuditLogRepository
	feed      AuditFeed
}

func newUnitOfWork(txManager repository.TransactionManager, auditRepo repository.AuditLogRepository, feed AuditFeed) *unitOfWork {
	return &unitOfWork{txManager: txManager, auditRepo: auditRepo, feed: feed}
}

// run executes fn, then records the action description it returns on behalf of actorID.
// Nothing commits unless both succeed.
func (u *unitOfWork) run(ctx context.Context, actorID int64, fn func(txCtx context.Context) (string, error)) error {
	var entry model.AuditLog
	err := u.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		action, err := fn(txCtx)
		if err != nil {
			return err
		}

		entry = model.AuditLog{UserID: actorID, Action: action}
		if err := u.auditRepo.Log(txCtx, &entry); err != nil {
			return apperror.Conflict("Failed to write audit log", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if u.feed != nil {
		u.feed.Publish(toAuditLogResponse(&entry))
	}
	return nil
}

// lookupError names the missing entity when a lookup by ID found nothing
func lookupError(entity string, id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(entity, id)
	}
	return err
}
