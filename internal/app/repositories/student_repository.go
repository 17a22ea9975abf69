package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// ErrStudentNotFound is returned when no student has the requested email
var ErrStudentNotFound = apperrors.NewResourceNotFoundError("student not found")

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func getStudentByEmailQuery(email string) (string, []interface{}, error) {
	return psql.Select("id", "email", "first_name", "last_name", "suid").
		From("students").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		OrderBy("id").
		Limit(1).
		ToSql()
}

// GetStudentByEmail retrieves the student whose email matches, ignoring case
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	sql, args, err := getStudentByEmailQuery(email)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by email SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.Email, &student.FirstName, &student.LastName, &student.SUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Str("email", email).Msg("Student not found by email")
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// CreateStudent inserts a student and sets its ID
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := psql.Insert("students").
		Columns("email", "first_name", "last_name", "suid").
		Values(student.Email, student.FirstName, student.LastName, student.SUID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", student.ID).Str("email", student.Email).Msg("Student created successfully")
	return nil
}
