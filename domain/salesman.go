package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Salesman is the persisted entity. Titles hold only vocabulary-valid codes;
// a nil slice means the title group is absent.
type Salesman struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	TitlesBefore  []string  `json:"titles_before"`
	TitlesAfter   []string  `json:"titles_after"`
	ProsightID    string    `json:"prosight_id"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone"`
	Gender        string    `json:"gender"`
	MaritalStatus *string   `json:"marital_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName joins titles before, first name, last name and titles after
// with spaces, skipping absent title groups.
func (s *Salesman) DisplayName() string {
	return displayName(s.TitlesBefore, s.FirstName, s.LastName, s.TitlesAfter)
}

// SalesmanData is the validated DTO sitting between untrusted input and the
// entity. A non-nil value always satisfies every format and membership rule.
type SalesmanData struct {
	FirstName     string
	LastName      string
	TitlesBefore  []string
	TitlesAfter   []string
	ProsightID    string
	Email         string
	Phone         *string
	Gender        string
	MaritalStatus *string
}

// NewSalesmanData is the canonical validating constructor. It fails fast on
// the first violated rule and returns an InvalidInputError naming the field.
func NewSalesmanData(
	firstName, lastName string,
	titlesBefore, titlesAfter []string,
	prosightID, email string,
	phone *string,
	gender string,
	maritalStatus *string,
) (*SalesmanData, error) {
	if len(firstName) < 2 || len(firstName) > 50 {
		return nil, NewInvalidInputError("First name must be between 2 and 50 characters")
	}
	if len(lastName) < 2 || len(lastName) > 50 {
		return nil, NewInvalidInputError("Last name must be between 2 and 50 characters")
	}
	if len(prosightID) != 5 {
		return nil, NewInvalidInputError("Prosight ID must be exactly 5 characters")
	}
	if !govalidator.IsEmail(email) {
		return nil, NewInvalidInputError("Invalid email format")
	}
	if !IsValidGender(gender) {
		return nil, NewInvalidInputError("Invalid gender code")
	}
	if maritalStatus != nil && !IsValidMaritalStatus(*maritalStatus) {
		return nil, NewInvalidInputError("Invalid marital status code")
	}
	for _, title := range titlesBefore {
		if !IsValidTitleBefore(title) {
			return nil, NewInvalidInputError("Invalid title before code: " + title)
		}
	}
	for _, title := range titlesAfter {
		if !IsValidTitleAfter(title) {
			return nil, NewInvalidInputError("Invalid title after code: " + title)
		}
	}

	return &SalesmanData{
		FirstName:     firstName,
		LastName:      lastName,
		TitlesBefore:  normalizeTitles(titlesBefore),
		TitlesAfter:   normalizeTitles(titlesAfter),
		ProsightID:    prosightID,
		Email:         email,
		Phone:         phone,
		Gender:        gender,
		MaritalStatus: maritalStatus,
	}, nil
}

// SalesmanDataFromMap builds a DTO from untyped key/value input (request
// bodies, CSV rows). Required string fields must be present and typed;
// invalid title entries are silently dropped rather than rejected. The
// canonical constructor still runs at the end, so every value coming out of
// here satisfies the strict rules.
func SalesmanDataFromMap(data map[string]any) (*SalesmanData, error) {
	firstName, err := requireString(data, "first_name")
	if err != nil {
		return nil, err
	}
	lastName, err := requireString(data, "last_name")
	if err != nil {
		return nil, err
	}
	prosightID, err := requireString(data, "prosight_id")
	if err != nil {
		return nil, err
	}
	email, err := requireString(data, "email")
	if err != nil {
		return nil, err
	}

	gender, ok := data["gender"].(string)
	if !ok || !IsValidGender(gender) {
		return nil, NewInvalidInputError("Invalid gender: " + describeValue(data["gender"]))
	}

	var maritalStatus *string
	if raw, ok := data["marital_status"].(string); ok {
		if !IsValidMaritalStatus(raw) {
			return nil, NewInvalidInputError("Invalid marital status: " + raw)
		}
		maritalStatus = &raw
	}

	titlesBefore := FilterValidTitlesBefore(stringSlice(data["titles_before"]))
	titlesAfter := FilterValidTitlesAfter(stringSlice(data["titles_after"]))

	var phone *string
	if raw, ok := data["phone"].(string); ok {
		phone = &raw
	}

	return NewSalesmanData(
		firstName, lastName,
		titlesBefore, titlesAfter,
		prosightID, email,
		phone, gender, maritalStatus,
	)
}

// ToMap is the lossless inverse of SalesmanDataFromMap.
func (d *SalesmanData) ToMap() map[string]any {
	m := map[string]any{
		"first_name":     d.FirstName,
		"last_name":      d.LastName,
		"titles_before":  nil,
		"titles_after":   nil,
		"prosight_id":    d.ProsightID,
		"email":          d.Email,
		"phone":          nil,
		"gender":         d.Gender,
		"marital_status": nil,
	}
	if d.TitlesBefore != nil {
		m["titles_before"] = toAnySlice(d.TitlesBefore)
	}
	if d.TitlesAfter != nil {
		m["titles_after"] = toAnySlice(d.TitlesAfter)
	}
	if d.Phone != nil {
		m["phone"] = *d.Phone
	}
	if d.MaritalStatus != nil {
		m["marital_status"] = *d.MaritalStatus
	}
	return m
}

func (d *SalesmanData) DisplayName() string {
	return displayName(d.TitlesBefore, d.FirstName, d.LastName, d.TitlesAfter)
}

// ApplyTo overwrites every mutable field of the entity (full replace).
func (d *SalesmanData) ApplyTo(s *Salesman) {
	s.FirstName = d.FirstName
	s.LastName = d.LastName
	s.TitlesBefore = d.TitlesBefore
	s.TitlesAfter = d.TitlesAfter
	s.ProsightID = d.ProsightID
	s.Email = d.Email
	s.Phone = d.Phone
	s.Gender = d.Gender
	s.MaritalStatus = d.MaritalStatus
}

// ListFilters are the whitelisted read-query filters, combined with AND.
// Invalid gender/marital_status values are ignored by the repository, not
// rejected.
type ListFilters struct {
	Search        string
	Gender        string
	MaritalStatus string
	ProsightID    string
}

// ListQuery carries filters plus sort and 1-indexed pagination. Sort is a
// field name optionally prefixed with '-' for descending order.
type ListQuery struct {
	Filters ListFilters
	Sort    string
	Page    int
	PerPage int
}

// Page is one slice of a filtered, sorted result set.
type Page struct {
	Data     []Salesman
	Total    int
	Page     int
	PerPage  int
	LastPage int
}

type SalesmanRepo interface {
	FindByID(ctx context.Context, id string) (*Salesman, error)
	FindByProsightID(ctx context.Context, prosightID string) (*Salesman, error)
	FindByEmail(ctx context.Context, email string) (*Salesman, error)
	Create(ctx context.Context, salesman *Salesman) error
	Update(ctx context.Context, salesman *Salesman) error
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByProsightID(ctx context.Context, prosightID, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Paginate(ctx context.Context, query ListQuery) (*Page, error)
	GetAll(ctx context.Context, filters ListFilters) ([]Salesman, error)
}

type SalesmanUseCase interface {
	Create(ctx context.Context, data *SalesmanData) (*Salesman, error)
	Update(ctx context.Context, id string, data *SalesmanData) (*Salesman, error)
	FindByID(ctx context.Context, id string) (*Salesman, error)
	Delete(ctx context.Context, id string) (bool, error)
	Paginate(ctx context.Context, query ListQuery) (*Page, error)
	GetAll(ctx context.Context, filters ListFilters) ([]Salesman, error)
}

func displayName(titlesBefore []string, firstName, lastName string, titlesAfter []string) string {
	parts := make([]string, 0, len(titlesBefore)+len(titlesAfter)+2)
	parts = append(parts, titlesBefore...)
	parts = append(parts, firstName, lastName)
	parts = append(parts, titlesAfter...)
	return strings.Join(parts, " ")
}

func normalizeTitles(titles []string) []string {
	if len(titles) == 0 {
		return nil
	}
	return titles
}

func requireString(data map[string]any, field string) (string, error) {
	value, ok := data[field].(string)
	if !ok {
		return "", NewFieldTypeError(field, describeValue(data[field]), "string")
	}
	return value, nil
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func describeValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", value)
}
