package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
)

func TestTemplates_DefinesEveryPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{Index, Offerings, Register, Login, Error, "header", "footer"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_EscapesUserInput(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, Error, Page{
		Title:   "Error",
		Status:  404,
		Heading: "Not found",
		Message: "<script>alert(1)</script>",
	}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestTemplates_RegisterForm(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, Register, Page{
		Title: "Register",
		Email: "ada@ucsc.edu",
		Offering: &models.OfferingDetails{
			Offering:     models.ClassOffering{ID: 7, Number: 1},
			CatalogClass: models.CatalogClass{Number: "CSE 183", Name: "Web Applications"},
			Quarter:      models.Quarter{Year: 2021, Season: models.SeasonSpring},
		},
		NoteMaxLength: 2000,
	}))

	out := buf.String()
	assert.Contains(t, out, `action="/register/7"`)
	assert.Contains(t, out, "Spring 2021")
	assert.Contains(t, out, `name="note"`)
	assert.Contains(t, out, `href="/offerings"`)
}
