package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/views"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// PageController serves the HTML pages
type PageController struct {
	offeringService     OfferingService
	registrationService RegistrationService
	logger              zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(offeringService OfferingService, registrationService RegistrationService, logger zerolog.Logger) *PageController {
	return &PageController{
		offeringService:     offeringService,
		registrationService: registrationService,
		logger:              logger,
	}
}

func newPage(ctx *gin.Context, title string) views.Page {
	email, _ := middleware.CurrentEmail(ctx)
	return views.Page{Title: title, Email: email}
}

// Index renders the landing page of a signed-in user
func (c *PageController) Index(ctx *gin.Context) {
	page := newPage(ctx, "Home")
	page.Quarter = c.offeringService.CurrentQuarter()
	ctx.HTML(http.StatusOK, views.Index, page)
}

// Offerings lists the offerings of the configured quarter, or of the quarter
// named by the year and season query parameters
func (c *PageController) Offerings(ctx *gin.Context) {
	var query dto.OfferingsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		renderError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "year must be a number"))
		return
	}
	if err := validation.Validator().Struct(query); err != nil {
		renderError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "unknown quarter"))
		return
	}

	quarter, err := c.offeringService.ResolveQuarter(query.Year, query.Season)
	if err != nil {
		renderError(ctx, err)
		return
	}

	offerings, err := c.offeringService.ListOfferings(ctx.Request.Context(), quarter.Year, quarter.Season)
	if err != nil {
		renderError(ctx, err)
		return
	}

	page := newPage(ctx, "Offerings")
	page.Quarter = quarter
	page.Offerings = offerings
	ctx.HTML(http.StatusOK, views.Offerings, page)
}

// parseOfferingID reads the offering id route parameter. Anything that is not
// a positive integer names no offering.
func parseOfferingID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrOfferingNotFound
	}
	return id, nil
}

// RegisterForm shows the registration form of one offering
func (c *PageController) RegisterForm(ctx *gin.Context) {
	offeringID, err := parseOfferingID(ctx, "offering_id")
	if err != nil {
		renderError(ctx, err)
		return
	}

	c.renderRegisterForm(ctx, http.StatusOK, offeringID, "", "")
}

func (c *PageController) renderRegisterForm(ctx *gin.Context, status int, offeringID int64, note, formError string) {
	offering, err := c.offeringService.GetOffering(ctx.Request.Context(), offeringID)
	if err != nil {
		renderError(ctx, err)
		return
	}

	page := newPage(ctx, "Register for "+offering.CatalogClass.Number)
	page.Offering = offering
	page.Note = note
	page.NoteMaxLength = validation.NoteMaxLength
	page.FormError = formError
	ctx.HTML(status, views.Register, page)
}

// RegisterSubmit records the registration and redirects to the index page
func (c *PageController) RegisterSubmit(ctx *gin.Context) {
	offeringID, err := parseOfferingID(ctx, "offering_id")
	if err != nil {
		renderError(ctx, err)
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderRegisterForm(ctx, http.StatusBadRequest, offeringID, "", "The form could not be read.")
		return
	}
	if err := validation.Validator().Struct(req); err != nil {
		detail := dto.HandleValidationError(err)
		c.renderRegisterForm(ctx, http.StatusBadRequest, offeringID, req.Note, formErrorMessage(detail))
		return
	}

	email, _ := middleware.CurrentEmail(ctx)
	if _, err := c.registrationService.Register(ctx.Request.Context(), email, offeringID, req.Note); err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			c.renderRegisterForm(ctx, http.StatusBadRequest, offeringID, req.Note, err.Error())
			return
		}
		renderError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/index")
}

func formErrorMessage(detail *dto.ErrorDetail) string {
	if fields, ok := detail.Details.(map[string]string); ok {
		if msg, ok := fields[detail.Field]; ok {
			return msg
		}
	}
	return detail.Message
}

// renderError renders the error page matching err. Authentication failures
// go back to the login page instead.
func renderError(ctx *gin.Context, err error) {
	status := middleware.ErrorStatus(err)
	if status == http.StatusUnauthorized {
		ctx.Redirect(http.StatusFound, middleware.LoginPath+"?next="+url.QueryEscape(ctx.Request.URL.RequestURI()))
		ctx.Abort()
		return
	}

	page := newPage(ctx, "Error")
	page.Status = status

	switch {
	case errors.Is(err, apperrors.ErrOfferingNotFound):
		page.Heading = "Offering not found"
		page.Message = "That class offering does not exist. It may have been removed from the catalog."
	case errors.Is(err, apperrors.ErrIdentityMismatch):
		page.Heading = "No student record"
		page.Message = "Your account is not linked to a student record, so you cannot register for classes. Ask the registrar's office to add you as a student under " + page.Email + "."
	case status == http.StatusNotFound:
		page.Heading = "Not found"
		page.Message = err.Error()
	case status == http.StatusForbidden:
		page.Heading = "Not allowed"
		page.Message = "You do not have access to this page."
	case status == http.StatusBadRequest:
		page.Heading = "Bad request"
		page.Message = err.Error()
	default:
		logger.Ctx(ctx.Request.Context()).Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("Page handler failed")
		page.Heading = "Something went wrong"
		page.Message = "The request could not be completed. Please try again later."
	}

	ctx.HTML(status, views.Error, page)
	ctx.Abort()
}

// NotFound renders the error page for unknown routes
func NotFound(ctx *gin.Context) {
	renderError(ctx, apperrors.NewResourceNotFoundError("The page you requested does not exist."))
}
