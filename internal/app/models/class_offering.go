package models

// ClassOffering is a catalog class taught in a given quarter.
// Deleting the quarter removes its offerings.
type ClassOffering struct {
	ID             int64  `json:"id" db:"id"`
	CatalogClassID int64  `json:"catalogClassId" db:"catalog_class_id"`
	QuarterID      int64  `json:"quarterId" db:"quarter_id"`
	Number         int    `json:"number" db:"number"`
	TaughtBy       *int64 `json:"taughtBy,omitempty" db:"taught_by"`
	Active         bool   `json:"active" db:"active"`
}

// OfferingDetails is an offering joined with its catalog class and quarter
type OfferingDetails struct {
	Offering     ClassOffering `json:"offering"`
	CatalogClass CatalogClass  `json:"catalogClass"`
	Quarter      Quarter       `json:"quarter"`
}
