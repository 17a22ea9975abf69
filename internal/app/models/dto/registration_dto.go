package dto

import (
	"time"

	"github.com/yigit/registrar/internal/app/models"
)

// RegisterRequest is the body of a registration, posted as a form or as JSON
type RegisterRequest struct {
	Note string `json:"note" form:"note" validate:"max=2000"`
}

// RegistrationsQuery filters the registrations of an offering
type RegistrationsQuery struct {
	Waitlist bool `form:"waitlist"`
}

// StudentResponse represents a student
type StudentResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	SUID      string `json:"suid,omitempty"`
}

// RegistrationResponse represents one registration row
type RegistrationResponse struct {
	ID               int64            `json:"id"`
	OfferingID       int64            `json:"offeringId"`
	IsWaitlist       bool             `json:"isWaitlist"`
	WaitlistPos      *int             `json:"waitlistPos,omitempty"`
	Note             string           `json:"note"`
	RegistrationDate time.Time        `json:"registrationDate"`
	Student          *StudentResponse `json:"student,omitempty"`
}

// NewRegistrationResponse converts a registration
func NewRegistrationResponse(r *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:               r.ID,
		OfferingID:       r.ClassOfferingID,
		IsWaitlist:       r.IsWaitlist,
		WaitlistPos:      r.WaitlistPos,
		Note:             r.Note,
		RegistrationDate: r.RegistrationDate.UTC(),
	}
	if r.Student != nil {
		resp.Student = &StudentResponse{
			ID:        r.Student.ID,
			Email:     r.Student.Email,
			FirstName: r.Student.FirstName,
			LastName:  r.Student.LastName,
			SUID:      r.Student.SUID,
		}
	}
	return resp
}

// NewRegistrationResponses converts a list, never returning nil
func NewRegistrationResponses(regs []*models.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, NewRegistrationResponse(r))
	}
	return out
}
