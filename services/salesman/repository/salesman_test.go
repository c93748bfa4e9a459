package repository

import (
	"testing"

	"salesman/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFiltersEmpty(t *testing.T) {
	where, args := buildFilters(domain.ListFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildFiltersSearch(t *testing.T) {
	where, args := buildFilters(domain.ListFilters{Search: "doe"})

	assert.Equal(t, " WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR prosight_id ILIKE $1)", where)
	assert.Equal(t, []any{"%doe%"}, args)
}

func TestBuildFiltersIgnoresInvalidEnumValues(t *testing.T) {
	where, args := buildFilters(domain.ListFilters{Gender: "male", MaritalStatus: "engaged"})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildFiltersCombinesWithAnd(t *testing.T) {
	where, args := buildFilters(domain.ListFilters{
		Search:        "jo",
		Gender:        "m",
		MaritalStatus: "married",
		ProsightID:    "123",
	})

	assert.Equal(t,
		" WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR prosight_id ILIKE $1)"+
			" AND gender = $2 AND marital_status = $3 AND prosight_id ILIKE $4",
		where)
	assert.Equal(t, []any{"%jo%", "m", "married", "%123%"}, args)
}

func TestBuildFiltersProsightIDIsSubstringMatch(t *testing.T) {
	where, args := buildFilters(domain.ListFilters{ProsightID: "234"})
	assert.Equal(t, " WHERE prosight_id ILIKE $1", where)
	assert.Equal(t, []any{"%234%"}, args)
}

func TestSortClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"", ""},
		{"first_name", " ORDER BY first_name ASC"},
		{"-first_name", " ORDER BY first_name DESC"},
		{"created_at", " ORDER BY created_at ASC"},
		{"-updated_at", " ORDER BY updated_at DESC"},
		{"display_name", ""},
		{"-display_name", ""},
		{"id", ""},
		{"'; DROP TABLE salesmen; --", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sortClause(tc.sort), "sort=%q", tc.sort)
	}
}

func TestClampToOne(t *testing.T) {
	assert.Equal(t, 1, clampToOne(-5))
	assert.Equal(t, 1, clampToOne(0))
	assert.Equal(t, 1, clampToOne(1))
	assert.Equal(t, 7, clampToOne(7))
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, lastPage(0, 15))
	assert.Equal(t, 1, lastPage(15, 15))
	assert.Equal(t, 2, lastPage(16, 15))
	assert.Equal(t, 3, lastPage(25, 10))
	assert.Equal(t, 25, lastPage(25, 1))
}

func TestTitlesEncoding(t *testing.T) {
	encoded, err := encodeTitles([]string{"Ing.", "Mgr. art."})
	require.NoError(t, err)

	decoded, err := decodeTitles(encoded)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ing.", "Mgr. art."}, decoded)
}

func TestTitlesEncodingNil(t *testing.T) {
	encoded, err := encodeTitles(nil)
	require.NoError(t, err)
	assert.Nil(t, encoded)

	decoded, err := decodeTitles(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}
