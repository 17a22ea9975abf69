package models

// CatalogClass is a course definition independent of when it is taught, e.g. "CSE 183".
type CatalogClass struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	Number      string `json:"number" db:"number" example:"CSE 183"`
	Name        string `json:"name" db:"name" example:"Web Applications"`
	Description string `json:"description" db:"description"`
}
