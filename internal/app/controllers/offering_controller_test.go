package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newAPIRouter(offerings *mockOfferingService, registrations *mockRegistrationService) *gin.Engine {
	r := gin.New()
	oc := NewOfferingController(offerings, registrations)
	api := r.Group("/api/v1", signedInAs("ada@ucsc.edu"))
	api.GET("/offerings", oc.ListOfferings)
	api.GET("/offerings/:id", oc.GetOffering)
	api.GET("/offerings/:id/registrations", oc.ListRegistrations)
	api.POST("/offerings/:id/registrations", oc.CreateRegistration)
	api.GET("/catalog/:number", oc.GetCatalogClass)
	return r
}

func serveJSON(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestAPI_ListOfferings(t *testing.T) {
	offerings := &mockOfferingService{}
	offerings.On("ResolveQuarter", 2021, "Spring").Return(models.Quarter{Year: 2021, Season: models.SeasonSpring}, nil)
	offerings.On("ListOfferings", mock.Anything, 2021, models.SeasonSpring).Return([]*models.OfferingDetails{cse183()}, nil)
	r := newAPIRouter(offerings, &mockRegistrationService{})

	w, env := serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/offerings?year=2021&season=Spring", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data []struct {
		ID           int64 `json:"id"`
		CatalogClass struct {
			Number string `json:"number"`
		} `json:"catalogClass"`
		Quarter struct {
			Label string `json:"label"`
		} `json:"quarter"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, int64(7), data[0].ID)
	assert.Equal(t, "CSE 183", data[0].CatalogClass.Number)
	assert.Equal(t, "Spring 2021", data[0].Quarter.Label)
}

func TestAPI_ListOfferings_EmptyIsArray(t *testing.T) {
	offerings := &mockOfferingService{}
	offerings.On("ResolveQuarter", 2021, "Winter").Return(models.Quarter{Year: 2021, Season: models.SeasonWinter}, nil)
	offerings.On("ListOfferings", mock.Anything, 2021, models.SeasonWinter).Return([]*models.OfferingDetails{}, nil)
	r := newAPIRouter(offerings, &mockRegistrationService{})

	_, env := serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/offerings?year=2021&season=Winter", nil))
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestAPI_GetOffering_NotFound(t *testing.T) {
	offerings := &mockOfferingService{}
	offerings.On("GetOffering", mock.Anything, int64(99)).Return(nil, apperrors.ErrOfferingNotFound)
	r := newAPIRouter(offerings, &mockRegistrationService{})

	w, env := serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/offerings/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RES_001", env.Error.Code)

	w, _ = serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/offerings/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ListRegistrations_Waitlist(t *testing.T) {
	offerings := &mockOfferingService{}
	offerings.On("ListRegistrations", mock.Anything, int64(7), true).Return([]*models.Registration{
		{ID: 3, ClassOfferingID: 7, IsWaitlist: true, RegistrationDate: time.Date(2021, 3, 29, 0, 0, 0, 0, time.UTC)},
	}, nil)
	r := newAPIRouter(offerings, &mockRegistrationService{})

	w, env := serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/offerings/7/registrations?waitlist=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"isWaitlist":true`)
}

func TestAPI_CreateRegistration(t *testing.T) {
	at := time.Date(2021, 3, 29, 17, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		registrations := &mockRegistrationService{}
		registrations.On("Register", mock.Anything, "ada@ucsc.edu", int64(7), "hello").
			Return(&models.Registration{ID: 11, ClassOfferingID: 7, Note: "hello", RegistrationDate: at}, nil)
		r := newAPIRouter(&mockOfferingService{}, registrations)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/offerings/7/registrations", strings.NewReader(`{"note":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		w, env := serveJSON(t, r, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), `"isWaitlist":false`)
		assert.Contains(t, string(env.Data), `"registrationDate":"2021-03-29T17:00:00Z"`)
	})

	t.Run("identity mismatch", func(t *testing.T) {
		registrations := &mockRegistrationService{}
		registrations.On("Register", mock.Anything, "ada@ucsc.edu", int64(7), "").Return(nil, apperrors.ErrIdentityMismatch)
		r := newAPIRouter(&mockOfferingService{}, registrations)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/offerings/7/registrations", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w, env := serveJSON(t, r, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ACC_002", env.Error.Code)
	})

	t.Run("note too long", func(t *testing.T) {
		registrations := &mockRegistrationService{}
		r := newAPIRouter(&mockOfferingService{}, registrations)

		body := `{"note":"` + strings.Repeat("x", 2001) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/offerings/7/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w, env := serveJSON(t, r, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VAL_001", env.Error.Code)
		registrations.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAPI_GetCatalogClass(t *testing.T) {
	offerings := &mockOfferingService{}
	spring := models.Quarter{Year: 2021, Season: models.SeasonSpring}
	offerings.On("ResolveQuarter", 0, "").Return(spring, nil)
	offerings.On("ListOfferingsForClass", mock.Anything, "CSE 183", 2021, models.SeasonSpring).
		Return(&cse183().CatalogClass, []*models.OfferingDetails{cse183()}, nil)
	offerings.On("ListOfferingsForClass", mock.Anything, "CSE 999", 2021, models.SeasonSpring).
		Return(nil, nil, apperrors.ErrCatalogClassNotFound)
	r := newAPIRouter(offerings, &mockRegistrationService{})

	w, env := serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/CSE%20183", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"name":"Web Applications"`)

	w, _ = serveJSON(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/CSE%20999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
	} {
		r := gin.New()
		r.GET("/health", NewHealthController(stubPinger{err: tc.err}).Health)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, tc.status, w.Code)
	}
}
