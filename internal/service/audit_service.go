package service

import (
	"context"

	"patient-records-api/internal/domain/entity"
	"patient-records-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue interface{}) error
	LogEvent(ctx context.Context, db *gorm.DB, userID *uint, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, newValue interface{}) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	}
	return s.write(db, userID, action, metadata)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}
	return s.write(db, userID, action, metadata)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, db *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue interface{}) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	}
	return s.write(db, userID, action, metadata)
}

// LogEvent logs an action that is not a CRUD mutation (login, logout)
func (s *auditService) LogEvent(ctx context.Context, db *gorm.DB, userID *uint, action string, metadata entity.JSON) error {
	return s.write(db, userID, action, metadata)
}

func (s *auditService) write(db *gorm.DB, userID *uint, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
