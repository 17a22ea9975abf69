package models

import "time"

// Registration is a student's enrollment or waitlist entry for an offering
type Registration struct {
	ID               int64     `json:"id" db:"id"`
	StudentID        int64     `json:"studentId" db:"student_id"`
	ClassOfferingID  int64     `json:"classOfferingId" db:"class_offering_id"`
	IsWaitlist       bool      `json:"isWaitlist" db:"is_waitlist"`
	WaitlistPos      *int      `json:"waitlistPos,omitempty" db:"waitlist_pos"`
	Note             string    `json:"note" db:"note"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}
