package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/registrar/internal/app/models"
)

// NoteMaxLength bounds the free-text note attached to a registration
const NoteMaxLength = 2000

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the application's custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("season", validateSeason)
	})
	return validate
}

// validateSeason accepts any of the known academic seasons, case-insensitively
func validateSeason(fl validator.FieldLevel) bool {
	_, ok := models.ParseSeason(fl.Field().String())
	return ok
}

// NormalizeEmail lower-cases and trims an email address before lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
