package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func validData(t *testing.T) *SalesmanData {
	t.Helper()
	data, err := NewSalesmanData(
		"John", "Doe",
		[]string{"Ing."}, []string{"PhD."},
		"12345", "john.doe@example.com",
		strPtr("+421123456789"), "m", strPtr("single"),
	)
	require.NoError(t, err)
	return data
}

func TestNewSalesmanData(t *testing.T) {
	data := validData(t)

	assert.Equal(t, "John", data.FirstName)
	assert.Equal(t, "Doe", data.LastName)
	assert.Equal(t, []string{"Ing."}, data.TitlesBefore)
	assert.Equal(t, []string{"PhD."}, data.TitlesAfter)
	assert.Equal(t, "12345", data.ProsightID)
	assert.Equal(t, "m", data.Gender)
	require.NotNil(t, data.MaritalStatus)
	assert.Equal(t, "single", *data.MaritalStatus)
}

func TestNewSalesmanDataValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(args *dataArgs)
		message string
	}{
		{"first name too short", func(a *dataArgs) { a.firstName = "J" }, "First name must be between 2 and 50 characters"},
		{"first name too long", func(a *dataArgs) { a.firstName = longString(51) }, "First name must be between 2 and 50 characters"},
		{"last name too short", func(a *dataArgs) { a.lastName = "D" }, "Last name must be between 2 and 50 characters"},
		{"prosight id too short", func(a *dataArgs) { a.prosightID = "1234" }, "Prosight ID must be exactly 5 characters"},
		{"prosight id too long", func(a *dataArgs) { a.prosightID = "123456" }, "Prosight ID must be exactly 5 characters"},
		{"invalid email", func(a *dataArgs) { a.email = "not-an-email" }, "Invalid email format"},
		{"invalid gender", func(a *dataArgs) { a.gender = "x" }, "Invalid gender code"},
		{"invalid marital status", func(a *dataArgs) { a.maritalStatus = strPtr("engaged") }, "Invalid marital status code"},
		{"invalid title before", func(a *dataArgs) { a.titlesBefore = []string{"Ing.", "Nope."} }, "Invalid title before code: Nope."},
		{"invalid title after", func(a *dataArgs) { a.titlesAfter = []string{"XYZ"} }, "Invalid title after code: XYZ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := newValidArgs()
			tc.mutate(args)

			_, err := args.build()
			require.Error(t, err)

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.message, invalid.Message)
		})
	}
}

func TestNewSalesmanDataFailsFast(t *testing.T) {
	// two violations, only the first rule in order is reported
	args := newValidArgs()
	args.firstName = "J"
	args.gender = "x"

	_, err := args.build()
	require.Error(t, err)
	assert.Equal(t, "First name must be between 2 and 50 characters", err.Error())
}

func TestNewSalesmanDataNormalizesEmptyTitles(t *testing.T) {
	args := newValidArgs()
	args.titlesBefore = []string{}
	args.titlesAfter = nil

	data, err := args.build()
	require.NoError(t, err)
	assert.Nil(t, data.TitlesBefore)
	assert.Nil(t, data.TitlesAfter)
}

func TestDisplayName(t *testing.T) {
	data := validData(t)
	assert.Equal(t, "Ing. John Doe PhD.", data.DisplayName())

	args := newValidArgs()
	args.titlesBefore = nil
	args.titlesAfter = nil
	plain, err := args.build()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", plain.DisplayName())

	salesman := &Salesman{
		FirstName:    "Jane",
		LastName:     "Roe",
		TitlesBefore: []string{"doc.", "Ing."},
	}
	assert.Equal(t, "doc. Ing. Jane Roe", salesman.DisplayName())
}

func TestSalesmanDataFromMap(t *testing.T) {
	data, err := SalesmanDataFromMap(map[string]any{
		"first_name":     "John",
		"last_name":      "Doe",
		"titles_before":  []any{"Ing.", "Nope.", 42},
		"titles_after":   []any{"PhD."},
		"prosight_id":    "12345",
		"email":          "john.doe@example.com",
		"phone":          "+421123456789",
		"gender":         "m",
		"marital_status": "married",
	})
	require.NoError(t, err)

	// invalid and non-string titles are dropped, not rejected
	assert.Equal(t, []string{"Ing."}, data.TitlesBefore)
	assert.Equal(t, []string{"PhD."}, data.TitlesAfter)
	require.NotNil(t, data.Phone)
	assert.Equal(t, "+421123456789", *data.Phone)
	require.NotNil(t, data.MaritalStatus)
	assert.Equal(t, "married", *data.MaritalStatus)
}

func TestSalesmanDataFromMapFailures(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"first_name":  "John",
			"last_name":   "Doe",
			"prosight_id": "12345",
			"email":       "john.doe@example.com",
			"gender":      "m",
		}
	}

	t.Run("missing required field", func(t *testing.T) {
		m := base()
		delete(m, "first_name")

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)

		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Message, "first_name")
		assert.Contains(t, invalid.Message, "string")
	})

	t.Run("non-string required field", func(t *testing.T) {
		m := base()
		m["email"] = 42

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("missing gender", func(t *testing.T) {
		m := base()
		delete(m, "gender")

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid gender")
	})

	t.Run("invalid gender value", func(t *testing.T) {
		m := base()
		m["gender"] = "male"

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid gender: male")
	})

	t.Run("invalid marital status", func(t *testing.T) {
		m := base()
		m["marital_status"] = "engaged"

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid marital status: engaged")
	})

	t.Run("all-invalid titles collapse to absent", func(t *testing.T) {
		m := base()
		m["titles_before"] = []any{"Nope.", 1, true}

		data, err := SalesmanDataFromMap(m)
		require.NoError(t, err)
		assert.Nil(t, data.TitlesBefore)
	})

	t.Run("non-string phone dropped", func(t *testing.T) {
		m := base()
		m["phone"] = 123456789

		data, err := SalesmanDataFromMap(m)
		require.NoError(t, err)
		assert.Nil(t, data.Phone)
	})

	t.Run("canonical rules still apply", func(t *testing.T) {
		m := base()
		m["prosight_id"] = "123"

		_, err := SalesmanDataFromMap(m)
		require.Error(t, err)
		assert.Equal(t, "Prosight ID must be exactly 5 characters", err.Error())
	})
}

func TestToMapRoundTrip(t *testing.T) {
	data := validData(t)

	m := data.ToMap()
	assert.Equal(t, "John", m["first_name"])
	assert.Equal(t, []any{"Ing."}, m["titles_before"])
	assert.Equal(t, "single", m["marital_status"])

	again, err := SalesmanDataFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestToMapAbsentFieldsAreNil(t *testing.T) {
	data, err := NewSalesmanData("John", "Doe", nil, nil, "12345", "john.doe@example.com", nil, "m", nil)
	require.NoError(t, err)

	m := data.ToMap()
	assert.Nil(t, m["titles_before"])
	assert.Nil(t, m["titles_after"])
	assert.Nil(t, m["phone"])
	assert.Nil(t, m["marital_status"])
}

func TestApplyToReplacesAllMutableFields(t *testing.T) {
	salesman := &Salesman{
		ID:            "fixed-id",
		FirstName:     "Old",
		LastName:      "Name",
		TitlesBefore:  []string{"doc."},
		ProsightID:    "00000",
		Email:         "old@example.com",
		Phone:         strPtr("111"),
		Gender:        "f",
		MaritalStatus: strPtr("widowed"),
	}

	data := validData(t)
	data.ApplyTo(salesman)

	assert.Equal(t, "fixed-id", salesman.ID)
	assert.Equal(t, "John", salesman.FirstName)
	assert.Equal(t, "Doe", salesman.LastName)
	assert.Equal(t, []string{"Ing."}, salesman.TitlesBefore)
	assert.Equal(t, []string{"PhD."}, salesman.TitlesAfter)
	assert.Equal(t, "12345", salesman.ProsightID)
	assert.Equal(t, "john.doe@example.com", salesman.Email)
	assert.Equal(t, "m", salesman.Gender)
	require.NotNil(t, salesman.MaritalStatus)
	assert.Equal(t, "single", *salesman.MaritalStatus)
}

// test helpers

type dataArgs struct {
	firstName, lastName      string
	titlesBefore, titlesAfter []string
	prosightID, email        string
	phone                    *string
	gender                   string
	maritalStatus            *string
}

func newValidArgs() *dataArgs {
	return &dataArgs{
		firstName:    "John",
		lastName:     "Doe",
		titlesBefore: []string{"Ing."},
		titlesAfter:  []string{"PhD."},
		prosightID:   "12345",
		email:        "john.doe@example.com",
		phone:        strPtr("+421123456789"),
		gender:       "m",
		maritalStatus: strPtr("single"),
	}
}

func (a *dataArgs) build() (*SalesmanData, error) {
	return NewSalesmanData(
		a.firstName, a.lastName,
		a.titlesBefore, a.titlesAfter,
		a.prosightID, a.email,
		a.phone, a.gender, a.maritalStatus,
	)
}

func longString(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}
