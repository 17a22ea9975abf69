package views

import (
	"embed"
	"html/template"

	"github.com/yigit/registrar/internal/app/models"
)

//go:embed templates/*.html
var files embed.FS

// Template names rendered by the page controllers
const (
	Index     = "index"
	Offerings = "offerings"
	Register  = "register"
	Login     = "login"
	Error     = "error"
)

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// Page is the data every template renders from. Each page reads the fields
// it needs.
type Page struct {
	Title string
	// Email of the signed-in account, empty on the login page
	Email string

	Quarter   models.Quarter
	Offerings []*models.OfferingDetails
	Offering  *models.OfferingDetails

	Note          string
	NoteMaxLength int
	FormError     string

	Next       string
	LoginEmail string

	Status  int
	Heading string
	Message string
}
