package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/helpers"
	"github.com/yigit/registrar/internal/pkg/tracing"
	"github.com/yigit/registrar/internal/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
)

// RegistrationService records a signed-in student's registration for an offering
type RegistrationService struct {
	offeringRepo     OfferingRepository
	studentRepo      StudentRepository
	registrationRepo RegistrationRepository
	clock            Clock
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	offeringRepo OfferingRepository,
	studentRepo StudentRepository,
	registrationRepo RegistrationRepository,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		offeringRepo:     offeringRepo,
		studentRepo:      studentRepo,
		registrationRepo: registrationRepo,
		clock:            helpers.NowUTC,
		logger:           logger,
	}
}

// WithClock replaces the time source used for registration dates
func (s *RegistrationService) WithClock(clock Clock) *RegistrationService {
	s.clock = clock
	return s
}

// Register enrolls the student whose email matches the signed-in account in
// the offering. The offering is checked before the student and nothing is
// written when either is missing.
func (s *RegistrationService) Register(ctx context.Context, email string, offeringID int64, note string) (*models.Registration, error) {
	ctx, span := tracer.Start(ctx, "RegistrationService.Register")
	defer span.End()
	span.SetAttributes(attribute.Int64(tracing.AttrOfferingID, offeringID))

	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if utf8.RuneCountInString(note) > validation.NoteMaxLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("note must be at most %d characters", validation.NoteMaxLength))
	}

	offering, err := s.offeringRepo.GetOffering(ctx, offeringID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	student, err := s.studentRepo.GetStudentByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			s.logger.Warn().Str("email", email).Int64("offeringID", offeringID).Msg("No student record for signed-in account")
			return nil, apperrors.ErrIdentityMismatch
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	reg := &models.Registration{
		StudentID:        student.ID,
		ClassOfferingID:  offering.Offering.ID,
		IsWaitlist:       false,
		Note:             note,
		RegistrationDate: s.clock().UTC(),
	}

	if err := s.registrationRepo.CreateRegistration(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrIdentityMismatch
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	s.logger.Info().
		Int64("registrationID", reg.ID).
		Int64("studentID", student.ID).
		Str("class", offering.CatalogClass.Number).
		Str("quarter", offering.Quarter.String()).
		Msg("Student registered")

	reg.Student = student
	return reg, nil
}
