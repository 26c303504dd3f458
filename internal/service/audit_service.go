package service

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const auditWriteTimeout = 3 * time.Second

// AuditService records who did what. Callers log a returned error and carry on.
type AuditService interface {
	Record(ctx context.Context, actorID *uuid.UUID, action string, detail string, metadata entity.JSON) error
}

type auditService struct {
	transactor repository.Transactor
	log        *logrus.Logger
	auditRepo  repository.AuditLogRepository
}

func NewAuditService(transactor repository.Transactor, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		transactor: transactor,
		log:        log,
		auditRepo:  auditRepo,
	}
}

// Record writes outside the caller's transaction and survives request cancellation
func (s *auditService) Record(ctx context.Context, actorID *uuid.UUID, action string, detail string, metadata entity.JSON) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Detail:   detail,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(s.transactor.DB(writeCtx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		return err
	}

	return nil
}
