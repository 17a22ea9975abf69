package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// RegistrationFilter narrows ListRegistrations. Zero-valued fields are ignored.
type RegistrationFilter struct {
	OfferingID   int64
	ClassNumber  string
	Year         int
	Season       models.Season
	WaitlistOnly bool
}

// RegistrationRepository handles registration rows
type RegistrationRepository struct {
	db DBTX
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db DBTX) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

func createRegistrationQuery(reg *models.Registration) (string, []interface{}, error) {
	return psql.Insert("registrations").
		Columns("student_id", "class_offering_id", "is_waitlist", "waitlist_pos", "note", "registration_date").
		Values(reg.StudentID, reg.ClassOfferingID, reg.IsWaitlist, reg.WaitlistPos, reg.Note, reg.RegistrationDate).
		Suffix("RETURNING id").
		ToSql()
}

// CreateRegistration inserts one registration row and sets its ID.
// A vanished offering or student surfaces as a not-found error.
func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	sql, args, err := createRegistrationQuery(reg)
	if err != nil {
		logger.Error().Err(err).Msg("Error building create registration SQL")
		return fmt.Errorf("failed to build create registration query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&reg.ID); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err, "registrations_class_offering_id_fkey"):
			return apperrors.ErrOfferingNotFound
		case dberrors.IsForeignKeyViolation(err, "registrations_student_id_fkey"):
			return ErrStudentNotFound
		}
		logger.Error().Err(err).
			Int64("studentID", reg.StudentID).
			Int64("offeringID", reg.ClassOfferingID).
			Msg("Error executing create registration query")
		return fmt.Errorf("error creating registration: %w", err)
	}

	logger.Info().
		Int64("registrationID", reg.ID).
		Int64("studentID", reg.StudentID).
		Int64("offeringID", reg.ClassOfferingID).
		Msg("Registration created successfully")
	return nil
}

func listRegistrationsQuery(filter RegistrationFilter) (string, []interface{}, error) {
	q := psql.Select(
		"r.id", "r.student_id", "r.class_offering_id", "r.is_waitlist", "r.waitlist_pos", "r.note", "r.registration_date",
		"s.id", "s.email", "s.first_name", "s.last_name", "s.suid",
	).
		From("registrations r").
		Join("students s ON s.id = r.student_id").
		Join("class_offerings o ON o.id = r.class_offering_id").
		Join("catalog_classes c ON c.id = o.catalog_class_id").
		Join("quarters q ON q.id = o.quarter_id")

	if filter.OfferingID > 0 {
		q = q.Where(squirrel.Eq{"r.class_offering_id": filter.OfferingID})
	}
	if filter.ClassNumber != "" {
		q = q.Where(squirrel.Eq{"c.number": filter.ClassNumber})
	}
	if filter.Year > 0 {
		q = q.Where(squirrel.Eq{"q.year": filter.Year})
	}
	if filter.Season != "" {
		q = q.Where(squirrel.Eq{"q.season": string(filter.Season)})
	}
	if filter.WaitlistOnly {
		q = q.Where(squirrel.Eq{"r.is_waitlist": true})
	}

	return q.OrderBy("r.registration_date", "r.id").ToSql()
}

// ListRegistrations returns registrations with their students, oldest first
func (r *RegistrationRepository) ListRegistrations(ctx context.Context, filter RegistrationFilter) ([]*models.Registration, error) {
	sql, args, err := listRegistrationsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing registrations")
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		reg := &models.Registration{Student: &models.Student{}}
		if err := rows.Scan(
			&reg.ID, &reg.StudentID, &reg.ClassOfferingID, &reg.IsWaitlist, &reg.WaitlistPos, &reg.Note, &reg.RegistrationDate,
			&reg.Student.ID, &reg.Student.Email, &reg.Student.FirstName, &reg.Student.LastName, &reg.Student.SUID,
		); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		reg.RegistrationDate = reg.RegistrationDate.UTC()
		registrations = append(registrations, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	return registrations, nil
}
