package services

import (
	"context"
	"time"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
)

// OfferingRepository reads joined class offerings
type OfferingRepository interface {
	ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error)
	GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error)
	ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) ([]*models.OfferingDetails, error)
}

// CatalogRepository reads catalog classes
type CatalogRepository interface {
	GetCatalogClassByNumber(ctx context.Context, number string) (*models.CatalogClass, error)
}

// StudentRepository resolves students by email
type StudentRepository interface {
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
}

// RegistrationRepository stores and lists registrations
type RegistrationRepository interface {
	CreateRegistration(ctx context.Context, reg *models.Registration) error
	ListRegistrations(ctx context.Context, filter repositories.RegistrationFilter) ([]*models.Registration, error)
}

// UserRepository reads login accounts
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, int64, error)
}

// Clock returns the current time
type Clock func() time.Time
