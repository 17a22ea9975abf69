package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// OfferingController serves the JSON catalog and registration API
type OfferingController struct {
	offeringService     OfferingService
	registrationService RegistrationService
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService OfferingService, registrationService RegistrationService) *OfferingController {
	return &OfferingController{
		offeringService:     offeringService,
		registrationService: registrationService,
	}
}

func bindQuarterQuery(ctx *gin.Context) (dto.OfferingsQuery, bool) {
	var query dto.OfferingsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return query, false
	}
	if err := validation.Validator().Struct(query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return query, false
	}
	return query, true
}

// ListOfferings lists the offerings of a quarter
// @Summary List offerings
// @Description Lists the class offerings of a quarter. Without parameters the configured quarter is used.
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param year query int false "Quarter year" example(2021)
// @Param season query string false "Quarter season" Enums(Winter, Spring, Summer, Fall)
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferingResponse} "Offerings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid quarter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /offerings [get]
func (c *OfferingController) ListOfferings(ctx *gin.Context) {
	query, ok := bindQuarterQuery(ctx)
	if !ok {
		return
	}

	quarter, err := c.offeringService.ResolveQuarter(query.Year, query.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	offerings, err := c.offeringService.ListOfferings(ctx.Request.Context(), quarter.Year, quarter.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOfferingResponses(offerings), "Offerings retrieved successfully"))
}

// GetOffering returns one offering
// @Summary Get offering by ID
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse} "Offering retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	offeringID, err := parseOfferingID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	offering, err := c.offeringService.GetOffering(ctx.Request.Context(), offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOfferingResponse(offering), "Offering retrieved successfully"))
}

// ListRegistrations lists the registrations of an offering
// @Summary List registrations of an offering
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param waitlist query bool false "Only waitlisted registrations"
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationResponse} "Registrations retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id}/registrations [get]
func (c *OfferingController) ListRegistrations(ctx *gin.Context) {
	offeringID, err := parseOfferingID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var query dto.RegistrationsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	regs, err := c.offeringService.ListRegistrations(ctx.Request.Context(), offeringID, query.Waitlist)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewRegistrationResponses(regs), "Registrations retrieved successfully"))
}

// CreateRegistration registers the signed-in student for an offering
// @Summary Register for an offering
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param request body dto.RegisterRequest true "Registration note"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid note"
// @Failure 403 {object} dto.ErrorResponse "No student record for this account"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id}/registrations [post]
func (c *OfferingController) CreateRegistration(ctx *gin.Context) {
	offeringID, err := parseOfferingID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}
	if err := validation.Validator().Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	email, ok := middleware.CurrentEmail(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	reg, err := c.registrationService.Register(ctx.Request.Context(), email, offeringID, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewRegistrationResponse(reg), "Registered successfully"))
}

// GetCatalogClass returns a catalog class with its offerings in a quarter
// @Summary Get catalog class
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param number path string true "Class number" example(CSE 183)
// @Param year query int false "Quarter year"
// @Param season query string false "Quarter season"
// @Success 200 {object} dto.APIResponse{data=dto.CatalogClassOfferingsResponse} "Catalog class retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Catalog class not found"
// @Router /catalog/{number} [get]
func (c *OfferingController) GetCatalogClass(ctx *gin.Context) {
	query, ok := bindQuarterQuery(ctx)
	if !ok {
		return
	}

	quarter, err := c.offeringService.ResolveQuarter(query.Year, query.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, offerings, err := c.offeringService.ListOfferingsForClass(ctx.Request.Context(), ctx.Param("number"), quarter.Year, quarter.Season)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CatalogClassOfferingsResponse{
		CatalogClass: dto.NewCatalogClassResponse(class),
		Offerings:    dto.NewOfferingResponses(offerings),
	}, "Catalog class retrieved successfully"))
}
