package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "catalog_classes_number_key"})

	assert.True(t, IsDuplicateConstraintError(err, "catalog_classes_number_key"))
	assert.True(t, IsDuplicateConstraintError(err, ""))
	assert.False(t, IsDuplicateConstraintError(err, "quarters_year_season_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "registrations_class_offering_id_fkey"}

	assert.True(t, IsForeignKeyViolation(err, "registrations_class_offering_id_fkey"))
	assert.True(t, IsForeignKeyViolation(err, ""))
	assert.False(t, IsForeignKeyViolation(err, "registrations_student_id_fkey"))
	assert.False(t, IsDuplicateConstraintError(err, ""))
}
