package dto

import "github.com/yigit/registrar/internal/app/models"

// OfferingsQuery selects the quarter whose offerings are listed.
// Both fields are optional; missing values fall back to the configured quarter.
type OfferingsQuery struct {
	Year   int    `form:"year" validate:"omitempty,min=1"`
	Season string `form:"season" validate:"omitempty,season"`
}

// CatalogClassResponse represents a catalog class
type CatalogClassResponse struct {
	ID          int64  `json:"id" example:"1"`
	Number      string `json:"number" example:"CSE 183"`
	Name        string `json:"name" example:"Web Applications"`
	Description string `json:"description,omitempty"`
}

// QuarterResponse represents a quarter
type QuarterResponse struct {
	ID     int64  `json:"id" example:"1"`
	Year   int    `json:"year" example:"2021"`
	Season string `json:"season" example:"Spring"`
	Label  string `json:"label" example:"Spring 2021"`
}

// OfferingResponse represents a class offering with its catalog class and quarter
type OfferingResponse struct {
	ID           int64                `json:"id" example:"7"`
	Number       int                  `json:"number" example:"1"`
	Active       bool                 `json:"active" example:"true"`
	TaughtBy     *int64               `json:"taughtBy,omitempty"`
	CatalogClass CatalogClassResponse `json:"catalogClass"`
	Quarter      QuarterResponse      `json:"quarter"`
}

// CatalogClassOfferingsResponse is a catalog class with its offerings in one quarter
type CatalogClassOfferingsResponse struct {
	CatalogClass CatalogClassResponse `json:"catalogClass"`
	Offerings    []OfferingResponse   `json:"offerings"`
}

// NewCatalogClassResponse converts a catalog class
func NewCatalogClassResponse(c *models.CatalogClass) CatalogClassResponse {
	return CatalogClassResponse{
		ID:          c.ID,
		Number:      c.Number,
		Name:        c.Name,
		Description: c.Description,
	}
}

// NewOfferingResponse converts joined offering details
func NewOfferingResponse(d *models.OfferingDetails) OfferingResponse {
	return OfferingResponse{
		ID:           d.Offering.ID,
		Number:       d.Offering.Number,
		Active:       d.Offering.Active,
		TaughtBy:     d.Offering.TaughtBy,
		CatalogClass: NewCatalogClassResponse(&d.CatalogClass),
		Quarter: QuarterResponse{
			ID:     d.Quarter.ID,
			Year:   d.Quarter.Year,
			Season: string(d.Quarter.Season),
			Label:  d.Quarter.String(),
		},
	}
}

// NewOfferingResponses converts a list, never returning nil
func NewOfferingResponses(details []*models.OfferingDetails) []OfferingResponse {
	out := make([]OfferingResponse, 0, len(details))
	for _, d := range details {
		out = append(out, NewOfferingResponse(d))
	}
	return out
}
