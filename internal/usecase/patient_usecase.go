package usecase

import (
	"context"
	"errors"
	"strconv"

	"patient-records-api/internal/converter"
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
	"patient-records-api/internal/domain/repository"
	"patient-records-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	ListPatients(ctx context.Context) ([]dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, userID uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uint) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, userID uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Ownership is taken from the authenticated caller, never from the body
	patient := &entity.Patient{
		Age:     *req.Age,
		Gender:  req.Gender,
		Address: req.Address,
		PhoneNo: req.PhoneNo,
		UserID:  userID,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Audit rows go outside the mutation's transaction; a failed audit
	// write is logged and never surfaces to the caller.
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionPatientCreate, "patient", strconv.FormatUint(uint64(patient.ID), 10), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	// Update touches the four data fields only; user_id stays as assigned
	patient.Age = *req.Age
	patient.Gender = req.Gender
	patient.Address = req.Address
	patient.PhoneNo = req.PhoneNo

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	actorID, _ := actorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), actorID, entity.AuditActionPatientUpdate, "patient", strconv.FormatUint(uint64(id), 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Fetch before delete so the audit row carries the old value
	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	oldValue := converter.PatientToResponse(patient)

	affectedRows, err := u.patientRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrPatientNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	actorID, _ := actorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), actorID, entity.AuditActionPatientDelete, "patient", strconv.FormatUint(uint64(id), 10), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
