package models

import "fmt"

// Quarter is an academic term identified by year and season
type Quarter struct {
	ID     int64  `json:"id" db:"id"`
	Year   int    `json:"year" db:"year" example:"2021"`
	Season Season `json:"season" db:"season" example:"Spring"`
}

// String renders the quarter as "Spring 2021"
func (q Quarter) String() string {
	return fmt.Sprintf("%s %d", q.Season, q.Year)
}
