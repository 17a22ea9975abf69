package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
)

func TestListOfferingsQuery(t *testing.T) {
	sql, args, err := listOfferingsQuery(2021, models.SeasonSpring)
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM class_offerings o")
	assert.Contains(t, sql, "JOIN catalog_classes c ON c.id = o.catalog_class_id")
	assert.Contains(t, sql, "JOIN quarters q ON q.id = o.quarter_id")
	assert.Contains(t, sql, "WHERE q.year = $1 AND q.season = $2")
	assert.Contains(t, sql, "ORDER BY c.number, o.number, o.id")
	assert.Equal(t, []interface{}{2021, "Spring"}, args)
}

func TestGetOfferingQuery(t *testing.T) {
	sql, args, err := getOfferingQuery(42)
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE o.id = $1")
	assert.Contains(t, sql, "LIMIT 1")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestOfferingProjectionMatchesScanner(t *testing.T) {
	// scanOfferingDetails scans thirteen destinations in this order
	assert.Len(t, offeringColumns, 13)
	assert.Equal(t, "o.id", offeringColumns[0])
	assert.Equal(t, "c.id", offeringColumns[6])
	assert.Equal(t, "q.season", offeringColumns[12])
}

func TestListOfferingsForClassQuery(t *testing.T) {
	sql, args, err := listOfferingsForClassQuery("CSE 183", 2021, models.SeasonSpring)
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE c.number = $1 AND q.year = $2 AND q.season = $3")
	assert.Equal(t, []interface{}{"CSE 183", 2021, "Spring"}, args)
}

func TestGetStudentByEmailQuery(t *testing.T) {
	sql, args, err := getStudentByEmailQuery("Ada@UCSC.edu")
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE lower(email) = lower($1)")
	assert.Equal(t, []interface{}{"Ada@UCSC.edu"}, args)
}

func TestCreateRegistrationQuery(t *testing.T) {
	at := time.Date(2021, 3, 29, 17, 0, 0, 0, time.UTC)
	reg := &models.Registration{StudentID: 3, ClassOfferingID: 9, Note: "please", RegistrationDate: at}

	sql, args, err := createRegistrationQuery(reg)
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO registrations (student_id,class_offering_id,is_waitlist,waitlist_pos,note,registration_date)")
	assert.Contains(t, sql, "RETURNING id")
	require.Len(t, args, 6)
	assert.Equal(t, int64(3), args[0])
	assert.Equal(t, int64(9), args[1])
	assert.Equal(t, false, args[2])
	assert.Nil(t, args[3])
	assert.Equal(t, "please", args[4])
	assert.Equal(t, at, args[5])
}

func TestListRegistrationsQuery(t *testing.T) {
	t.Run("waitlist for a class in a quarter", func(t *testing.T) {
		sql, args, err := listRegistrationsQuery(RegistrationFilter{
			ClassNumber:  "CSE 183",
			Year:         2021,
			Season:       models.SeasonSpring,
			WaitlistOnly: true,
		})
		require.NoError(t, err)

		assert.Contains(t, sql, "JOIN students s ON s.id = r.student_id")
		assert.Contains(t, sql, "c.number = $1 AND q.year = $2 AND q.season = $3 AND r.is_waitlist = $4")
		assert.Equal(t, []interface{}{"CSE 183", 2021, "Spring", true}, args)
	})

	t.Run("single offering", func(t *testing.T) {
		sql, args, err := listRegistrationsQuery(RegistrationFilter{OfferingID: 5})
		require.NoError(t, err)

		assert.Contains(t, sql, "WHERE r.class_offering_id = $1")
		assert.NotContains(t, sql, "is_waitlist =")
		assert.Equal(t, []interface{}{int64(5)}, args)
	})
}
