package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// CatalogRepository handles catalog classes, quarters, instructors and the
// creation of offerings. These rows are loaded administratively.
type CatalogRepository struct {
	db DBTX
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// GetCatalogClassByNumber retrieves a catalog class by its number, e.g. "CSE 183"
func (r *CatalogRepository) GetCatalogClassByNumber(ctx context.Context, number string) (*models.CatalogClass, error) {
	sql, args, err := psql.Select("id", "number", "name", "description").
		From("catalog_classes").
		Where(squirrel.Eq{"number": number}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get catalog class query: %w", err)
	}

	var class models.CatalogClass
	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.Number, &class.Name, &class.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCatalogClassNotFound
		}
		logger.Error().Err(err).Str("number", number).Msg("Error scanning catalog class row")
		return nil, fmt.Errorf("error retrieving catalog class: %w", err)
	}

	return &class, nil
}

// UpsertCatalogClass inserts the class or refreshes the name and description of
// the existing class with the same number. The class ID is set on return.
func (r *CatalogRepository) UpsertCatalogClass(ctx context.Context, class *models.CatalogClass) error {
	sql, args, err := psql.Insert("catalog_classes").
		Columns("number", "name", "description").
		Values(class.Number, class.Name, class.Description).
		Suffix("ON CONFLICT ON CONSTRAINT catalog_classes_number_key DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert catalog class query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&class.ID); err != nil {
		logger.Error().Err(err).Str("number", class.Number).Msg("Error upserting catalog class")
		return fmt.Errorf("error upserting catalog class: %w", err)
	}
	return nil
}

// UpsertQuarter inserts the quarter unless one with the same year and season exists.
// The quarter ID is set on return in both cases.
func (r *CatalogRepository) UpsertQuarter(ctx context.Context, quarter *models.Quarter) error {
	sql, args, err := psql.Insert("quarters").
		Columns("year", "season").
		Values(quarter.Year, string(quarter.Season)).
		Suffix("ON CONFLICT ON CONSTRAINT quarters_year_season_key DO UPDATE SET season = EXCLUDED.season RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert quarter query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&quarter.ID); err != nil {
		logger.Error().Err(err).Str("quarter", quarter.String()).Msg("Error upserting quarter")
		return fmt.Errorf("error upserting quarter: %w", err)
	}
	return nil
}

// DeleteQuarter removes a quarter; its offerings (and their registrations) go with it.
func (r *CatalogRepository) DeleteQuarter(ctx context.Context, quarterID int64) error {
	sql, args, err := psql.Delete("quarters").Where(squirrel.Eq{"id": quarterID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete quarter query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quarterID", quarterID).Msg("Error deleting quarter")
		return fmt.Errorf("error deleting quarter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuarterNotFound
	}

	logger.Info().Int64("quarterID", quarterID).Msg("Quarter deleted")
	return nil
}

// CreateInstructor inserts an instructor and sets its ID
func (r *CatalogRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	sql, args, err := psql.Insert("instructors").
		Columns("email", "first_name", "last_name").
		Values(instructor.Email, instructor.FirstName, instructor.LastName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create instructor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&instructor.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return apperrors.NewCustomError(apperrors.ErrConflict, "an instructor with this email already exists")
		}
		logger.Error().Err(err).Str("email", instructor.Email).Msg("Error creating instructor")
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// GetInstructorByEmail retrieves an instructor by email
func (r *CatalogRepository) GetInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	sql, args, err := psql.Select("id", "email", "first_name", "last_name").
		From("instructors").
		Where(squirrel.Eq{"email": email}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	var instructor models.Instructor
	err = r.db.QueryRow(ctx, sql, args...).Scan(&instructor.ID, &instructor.Email, &instructor.FirstName, &instructor.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("instructor not found")
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return &instructor, nil
}

// CreateOffering inserts a class offering and sets its ID
func (r *CatalogRepository) CreateOffering(ctx context.Context, offering *models.ClassOffering) error {
	sql, args, err := psql.Insert("class_offerings").
		Columns("catalog_class_id", "quarter_id", "number", "taught_by", "active").
		Values(offering.CatalogClassID, offering.QuarterID, offering.Number, offering.TaughtBy, offering.Active).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create offering query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&offering.ID); err != nil {
		logger.Error().Err(err).
			Int64("catalogClassID", offering.CatalogClassID).
			Int64("quarterID", offering.QuarterID).
			Msg("Error creating class offering")
		return fmt.Errorf("error creating class offering: %w", err)
	}
	return nil
}
