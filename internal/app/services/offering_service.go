package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = tracing.Tracer("github.com/yigit/registrar/internal/app/services")

// OfferingService answers catalog and offering queries
type OfferingService struct {
	offeringRepo     OfferingRepository
	catalogRepo      CatalogRepository
	registrationRepo RegistrationRepository
	current          models.Quarter
	logger           zerolog.Logger
}

// NewOfferingService creates a new OfferingService. current is the quarter
// shown when a request does not name one.
func NewOfferingService(
	offeringRepo OfferingRepository,
	catalogRepo CatalogRepository,
	registrationRepo RegistrationRepository,
	current models.Quarter,
	logger zerolog.Logger,
) *OfferingService {
	return &OfferingService{
		offeringRepo:     offeringRepo,
		catalogRepo:      catalogRepo,
		registrationRepo: registrationRepo,
		current:          current,
		logger:           logger,
	}
}

// CurrentQuarter returns the configured default quarter
func (s *OfferingService) CurrentQuarter() models.Quarter {
	return s.current
}

// ResolveQuarter fills a missing year or season from the current quarter.
// An unknown season is a validation error.
func (s *OfferingService) ResolveQuarter(year int, season string) (models.Quarter, error) {
	q := s.current
	if year != 0 {
		if year < 0 {
			return models.Quarter{}, apperrors.NewValidationError("year must be positive")
		}
		q.Year = year
	}
	if season != "" {
		parsed, ok := models.ParseSeason(season)
		if !ok {
			return models.Quarter{}, apperrors.NewValidationError(fmt.Sprintf("unknown season %q", season))
		}
		q.Season = parsed
	}
	return q, nil
}

// ListOfferings returns the offerings of one quarter
func (s *OfferingService) ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error) {
	ctx, span := tracer.Start(ctx, "OfferingService.ListOfferings")
	defer span.End()
	span.SetAttributes(
		attribute.Int(tracing.AttrQuarterYear, year),
		attribute.String(tracing.AttrQuarterSeason, string(season)),
	)

	offerings, err := s.offeringRepo.ListOfferings(ctx, year, season)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(offerings)))
	s.logger.Debug().Int("year", year).Str("season", string(season)).Int("count", len(offerings)).Msg("Offerings listed")
	return offerings, nil
}

// GetOffering returns one offering or apperrors.ErrOfferingNotFound
func (s *OfferingService) GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error) {
	ctx, span := tracer.Start(ctx, "OfferingService.GetOffering")
	defer span.End()
	span.SetAttributes(attribute.Int64(tracing.AttrOfferingID, offeringID))

	if offeringID <= 0 {
		return nil, apperrors.ErrOfferingNotFound
	}

	offering, err := s.offeringRepo.GetOffering(ctx, offeringID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return offering, nil
}

// GetCatalogClass returns a catalog class by number
func (s *OfferingService) GetCatalogClass(ctx context.Context, number string) (*models.CatalogClass, error) {
	ctx, span := tracer.Start(ctx, "OfferingService.GetCatalogClass")
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrClassNumber, number))

	class, err := s.catalogRepo.GetCatalogClassByNumber(ctx, number)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return class, nil
}

// ListOfferingsForClass returns the offerings of one catalog class in a quarter.
// The class must exist.
func (s *OfferingService) ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) (*models.CatalogClass, []*models.OfferingDetails, error) {
	class, err := s.GetCatalogClass(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	ctx, span := tracer.Start(ctx, "OfferingService.ListOfferingsForClass")
	defer span.End()

	offerings, err := s.offeringRepo.ListOfferingsForClass(ctx, class.Number, year, season)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, nil, err
	}
	return class, offerings, nil
}

// ListRegistrations returns the registrations of an existing offering,
// optionally only its waitlist
func (s *OfferingService) ListRegistrations(ctx context.Context, offeringID int64, waitlistOnly bool) ([]*models.Registration, error) {
	if _, err := s.GetOffering(ctx, offeringID); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "OfferingService.ListRegistrations")
	defer span.End()
	span.SetAttributes(attribute.Int64(tracing.AttrOfferingID, offeringID), attribute.Bool("waitlist_only", waitlistOnly))

	regs, err := s.registrationRepo.ListRegistrations(ctx, repositories.RegistrationFilter{
		OfferingID:   offeringID,
		WaitlistOnly: waitlistOnly,
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return regs, nil
}
