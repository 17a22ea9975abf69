package controllers

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
)

// OfferingService is what the controllers need from services.OfferingService
type OfferingService interface {
	CurrentQuarter() models.Quarter
	ResolveQuarter(year int, season string) (models.Quarter, error)
	ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error)
	GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error)
	ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) (*models.CatalogClass, []*models.OfferingDetails, error)
	ListRegistrations(ctx context.Context, offeringID int64, waitlistOnly bool) ([]*models.Registration, error)
}

// RegistrationService records registrations
type RegistrationService interface {
	Register(ctx context.Context, email string, offeringID int64, note string) (*models.Registration, error)
}

// AuthService verifies credentials
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
}

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}
