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

// offeringColumns is the projection shared by every offering query; the
// order must match scanOfferingDetails.
var offeringColumns = []string{
	"o.id", "o.catalog_class_id", "o.quarter_id", "o.number", "o.taught_by", "o.active",
	"c.id", "c.number", "c.name", "c.description",
	"q.id", "q.year", "q.season",
}

// OfferingRepository reads class offerings joined with their catalog class and quarter
type OfferingRepository struct {
	db DBTX
}

// NewOfferingRepository creates a new OfferingRepository
func NewOfferingRepository(db DBTX) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

func offeringSelect() squirrel.SelectBuilder {
	return psql.Select(offeringColumns...).
		From("class_offerings o").
		Join("catalog_classes c ON c.id = o.catalog_class_id").
		Join("quarters q ON q.id = o.quarter_id")
}

func listOfferingsQuery(year int, season models.Season) (string, []interface{}, error) {
	return offeringSelect().
		Where(squirrel.Eq{"q.year": year}).
		Where(squirrel.Eq{"q.season": string(season)}).
		OrderBy("c.number", "o.number", "o.id").
		ToSql()
}

func getOfferingQuery(offeringID int64) (string, []interface{}, error) {
	return offeringSelect().
		Where(squirrel.Eq{"o.id": offeringID}).
		Limit(1).
		ToSql()
}

func listOfferingsForClassQuery(number string, year int, season models.Season) (string, []interface{}, error) {
	return offeringSelect().
		Where(squirrel.Eq{"c.number": number}).
		Where(squirrel.Eq{"q.year": year}).
		Where(squirrel.Eq{"q.season": string(season)}).
		OrderBy("o.number", "o.id").
		ToSql()
}

func scanOfferingDetails(row pgx.Row) (*models.OfferingDetails, error) {
	var d models.OfferingDetails
	var season string
	err := row.Scan(
		&d.Offering.ID, &d.Offering.CatalogClassID, &d.Offering.QuarterID,
		&d.Offering.Number, &d.Offering.TaughtBy, &d.Offering.Active,
		&d.CatalogClass.ID, &d.CatalogClass.Number, &d.CatalogClass.Name, &d.CatalogClass.Description,
		&d.Quarter.ID, &d.Quarter.Year, &season,
	)
	if err != nil {
		return nil, err
	}
	d.Quarter.Season = models.Season(season)
	return &d, nil
}

func (r *OfferingRepository) queryOfferings(ctx context.Context, sql string, args []interface{}) ([]*models.OfferingDetails, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := make([]*models.OfferingDetails, 0)
	for rows.Next() {
		d, err := scanOfferingDetails(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offerings, nil
}

// ListOfferings returns the offerings of the quarter identified by year and season.
// An unknown quarter yields an empty slice.
func (r *OfferingRepository) ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error) {
	sql, args, err := listOfferingsQuery(year, season)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list offerings SQL")
		return nil, fmt.Errorf("failed to build list offerings query: %w", err)
	}

	offerings, err := r.queryOfferings(ctx, sql, args)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Str("season", string(season)).Msg("Error listing offerings")
		return nil, fmt.Errorf("error listing offerings: %w", err)
	}

	return offerings, nil
}

// GetOffering returns one offering with its catalog class and quarter
func (r *OfferingRepository) GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error) {
	sql, args, err := getOfferingQuery(offeringID)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get offering SQL")
		return nil, fmt.Errorf("failed to build get offering query: %w", err)
	}

	d, err := scanOfferingDetails(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		logger.Error().Err(err).Int64("offeringID", offeringID).Msg("Error scanning offering row")
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}

	return d, nil
}

// ListOfferingsForClass returns the offerings of one catalog class in a quarter
func (r *OfferingRepository) ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) ([]*models.OfferingDetails, error) {
	sql, args, err := listOfferingsForClassQuery(number, year, season)
	if err != nil {
		return nil, fmt.Errorf("failed to build list class offerings query: %w", err)
	}

	offerings, err := r.queryOfferings(ctx, sql, args)
	if err != nil {
		logger.Error().Err(err).Str("number", number).Int("year", year).Str("season", string(season)).Msg("Error listing class offerings")
		return nil, fmt.Errorf("error listing class offerings: %w", err)
	}

	return offerings, nil
}
