package models

// Student is matched to a signed-in account by email
type Student struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	SUID      string `json:"suid" db:"suid"`
}
