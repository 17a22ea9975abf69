package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
)

type mockOfferingRepo struct{ mock.Mock }

func (m *mockOfferingRepo) ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error) {
	args := m.Called(ctx, year, season)
	offerings, _ := args.Get(0).([]*models.OfferingDetails)
	return offerings, args.Error(1)
}

func (m *mockOfferingRepo) GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error) {
	args := m.Called(ctx, offeringID)
	offering, _ := args.Get(0).(*models.OfferingDetails)
	return offering, args.Error(1)
}

func (m *mockOfferingRepo) ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) ([]*models.OfferingDetails, error) {
	args := m.Called(ctx, number, year, season)
	offerings, _ := args.Get(0).([]*models.OfferingDetails)
	return offerings, args.Error(1)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetCatalogClassByNumber(ctx context.Context, number string) (*models.CatalogClass, error) {
	args := m.Called(ctx, number)
	class, _ := args.Get(0).(*models.CatalogClass)
	return class, args.Error(1)
}

type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	args := m.Called(ctx, email)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

type mockRegistrationRepo struct{ mock.Mock }

func (m *mockRegistrationRepo) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	args := m.Called(ctx, reg)
	if args.Error(0) == nil {
		reg.ID = 1
	}
	return args.Error(0)
}

func (m *mockRegistrationRepo) ListRegistrations(ctx context.Context, filter repositories.RegistrationFilter) ([]*models.Registration, error) {
	args := m.Called(ctx, filter)
	regs, _ := args.Get(0).([]*models.Registration)
	return regs, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) GenerateToken(user *models.User) (string, int64, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func cse183Spring() *models.OfferingDetails {
	return &models.OfferingDetails{
		Offering:     models.ClassOffering{ID: 7, CatalogClassID: 1, QuarterID: 2, Number: 1, Active: true},
		CatalogClass: models.CatalogClass{ID: 1, Number: "CSE 183", Name: "Web Applications"},
		Quarter:      models.Quarter{ID: 2, Year: 2021, Season: models.SeasonSpring},
	}
}
