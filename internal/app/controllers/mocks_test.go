package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/views"
	"github.com/yigit/registrar/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockOfferingService struct{ mock.Mock }

func (m *mockOfferingService) CurrentQuarter() models.Quarter {
	return models.Quarter{Year: 2021, Season: models.SeasonSpring}
}

func (m *mockOfferingService) ResolveQuarter(year int, season string) (models.Quarter, error) {
	args := m.Called(year, season)
	return args.Get(0).(models.Quarter), args.Error(1)
}

func (m *mockOfferingService) ListOfferings(ctx context.Context, year int, season models.Season) ([]*models.OfferingDetails, error) {
	args := m.Called(ctx, year, season)
	offerings, _ := args.Get(0).([]*models.OfferingDetails)
	return offerings, args.Error(1)
}

func (m *mockOfferingService) GetOffering(ctx context.Context, offeringID int64) (*models.OfferingDetails, error) {
	args := m.Called(ctx, offeringID)
	offering, _ := args.Get(0).(*models.OfferingDetails)
	return offering, args.Error(1)
}

func (m *mockOfferingService) ListOfferingsForClass(ctx context.Context, number string, year int, season models.Season) (*models.CatalogClass, []*models.OfferingDetails, error) {
	args := m.Called(ctx, number, year, season)
	class, _ := args.Get(0).(*models.CatalogClass)
	offerings, _ := args.Get(1).([]*models.OfferingDetails)
	return class, offerings, args.Error(2)
}

func (m *mockOfferingService) ListRegistrations(ctx context.Context, offeringID int64, waitlistOnly bool) ([]*models.Registration, error) {
	args := m.Called(ctx, offeringID, waitlistOnly)
	regs, _ := args.Get(0).([]*models.Registration)
	return regs, args.Error(1)
}

type mockRegistrationService struct{ mock.Mock }

func (m *mockRegistrationService) Register(ctx context.Context, email string, offeringID int64, note string) (*models.Registration, error) {
	args := m.Called(ctx, email, offeringID, note)
	reg, _ := args.Get(0).(*models.Registration)
	return reg, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// signedInAs stands in for the session middleware
func signedInAs(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyEmail, email)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	tmpl, err := views.Templates()
	if err != nil {
		panic(err)
	}
	r.SetHTMLTemplate(tmpl)
	r.NoRoute(NotFound)
	return r
}

func cse183() *models.OfferingDetails {
	return &models.OfferingDetails{
		Offering:     models.ClassOffering{ID: 7, CatalogClassID: 1, QuarterID: 2, Number: 1, Active: true},
		CatalogClass: models.CatalogClass{ID: 1, Number: "CSE 183", Name: "Web Applications", Description: "Build web apps."},
		Quarter:      models.Quarter{ID: 2, Year: 2021, Season: models.SeasonSpring},
	}
}

