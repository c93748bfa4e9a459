package delivery

import (
	"fmt"
	"strconv"
	"time"

	"salesman/config"
	"salesman/domain"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxTitles = 10

type salesmanRequest struct {
	FirstName     string   `json:"first_name" valid:"required~The first name field is required.,stringlength(2|50)~The first name must be between 2 and 50 characters."`
	LastName      string   `json:"last_name" valid:"required~The last name field is required.,stringlength(2|50)~The last name must be between 2 and 50 characters."`
	TitlesBefore  []string `json:"titles_before" valid:"-"`
	TitlesAfter   []string `json:"titles_after" valid:"-"`
	ProsightID    string   `json:"prosight_id" valid:"required~The prosight id field is required.,stringlength(5|5)~The prosight id must be exactly 5 characters."`
	Email         string   `json:"email" valid:"required~The email field is required.,email~The email must be a valid email address."`
	Phone         *string  `json:"phone" valid:"-"`
	Gender        string   `json:"gender" valid:"required~The gender field is required.,in(m|f)~The selected gender is invalid."`
	MaritalStatus *string  `json:"marital_status" valid:"-"`
}

func (r *salesmanRequest) toData() (*domain.SalesmanData, error) {
	return domain.NewSalesmanData(
		r.FirstName, r.LastName,
		r.TitlesBefore, r.TitlesAfter,
		r.ProsightID, r.Email,
		r.Phone, r.Gender, r.MaritalStatus,
	)
}

// govalidator reports violations under struct field names; responses key
// them by the JSON field.
var requestFieldNames = map[string]string{
	"FirstName":     "first_name",
	"LastName":      "last_name",
	"TitlesBefore":  "titles_before",
	"TitlesAfter":   "titles_after",
	"ProsightID":    "prosight_id",
	"Email":         "email",
	"Phone":         "phone",
	"Gender":        "gender",
	"MaritalStatus": "marital_status",
}

// validateSalesmanRequest accumulates every schema violation, field-keyed.
// Tag rules cover the scalar fields; membership of list and optional enum
// fields is checked here.
func validateSalesmanRequest(req *salesmanRequest) map[string]string {
	fieldErrors := map[string]string{}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		for field, message := range govalidator.ErrorsByField(err) {
			if name, ok := requestFieldNames[field]; ok {
				field = name
			}
			fieldErrors[field] = message
		}
	}

	if req.MaritalStatus != nil && !domain.IsValidMaritalStatus(*req.MaritalStatus) {
		fieldErrors["marital_status"] = "The selected marital status is invalid."
	}
	if req.Phone != nil && len(*req.Phone) > 20 {
		fieldErrors["phone"] = "The phone may not be greater than 20 characters."
	}

	validateTitles(fieldErrors, "titles_before", req.TitlesBefore, domain.IsValidTitleBefore, "The selected title before is invalid.")
	validateTitles(fieldErrors, "titles_after", req.TitlesAfter, domain.IsValidTitleAfter, "The selected title after is invalid.")

	return fieldErrors
}

func validateTitles(fieldErrors map[string]string, field string, titles []string, isValid func(string) bool, invalidMessage string) {
	if len(titles) > maxTitles {
		fieldErrors[field] = fmt.Sprintf("The %s may not have more than %d items.", field, maxTitles)
		return
	}
	for _, title := range titles {
		if !isValid(title) {
			fieldErrors[field] = invalidMessage
			return
		}
	}
}

type salesmanResponse struct {
	ID            string   `json:"id"`
	Self          string   `json:"self"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	DisplayName   string   `json:"display_name"`
	TitlesBefore  []string `json:"titles_before"`
	TitlesAfter   []string `json:"titles_after"`
	ProsightID    string   `json:"prosight_id"`
	Email         string   `json:"email"`
	Phone         *string  `json:"phone"`
	Gender        string   `json:"gender"`
	MaritalStatus *string  `json:"marital_status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func newSalesmanResponse(s *domain.Salesman) salesmanResponse {
	return salesmanResponse{
		ID:            s.ID,
		Self:          "/salesmen/" + s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		DisplayName:   s.DisplayName(),
		TitlesBefore:  s.TitlesBefore,
		TitlesAfter:   s.TitlesAfter,
		ProsightID:    s.ProsightID,
		Email:         s.Email,
		Phone:         s.Phone,
		Gender:        s.Gender,
		MaritalStatus: s.MaritalStatus,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type pageLinks struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

func buildPageLinks(page *domain.Page) pageLinks {
	first := pageURL(1)
	last := pageURL(page.LastPage)
	links := pageLinks{First: &first, Last: &last}

	if page.Page > 1 {
		prev := pageURL(page.Page - 1)
		links.Prev = &prev
	}
	if page.Page < page.LastPage {
		next := pageURL(page.Page + 1)
		links.Next = &next
	}
	return links
}

func pageURL(page int) string {
	return fmt.Sprintf("/v1/salesmen?page=%d", page)
}

type salesmanHandler struct {
	suc domain.SalesmanUseCase
}

func NewSalesmanDelivery(app *fiber.App, uc domain.SalesmanUseCase) {
	handler := &salesmanHandler{
		suc: uc,
	}

	route := app.Group("/v1/salesmen")
	route.Post("/", handler.Create)
	route.Get("/", handler.List)
	route.Get("/:id", handler.Show)
	route.Put("/:id", handler.Update)
	route.Delete("/:id", handler.Delete)
}

func (sh *salesmanHandler) List(c *fiber.Ctx) error {
	query := domain.ListQuery{
		Filters: domain.ListFilters{
			Search:        c.Query("search"),
			Gender:        c.Query("gender"),
			MaritalStatus: c.Query("marital_status"),
			ProsightID:    c.Query("prosight_id"),
		},
		Sort:    c.Query("sort"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 15),
	}

	page, err := sh.suc.Paginate(c.Context(), query)
	if err != nil {
		return respondDomainError(c, "ListSalesmen", err)
	}

	data := make([]salesmanResponse, 0, len(page.Data))
	for i := range page.Data {
		data = append(data, newSalesmanResponse(&page.Data[i]))
	}

	config.PrintLogInfo(fiber.StatusOK, "ListSalesmen")
	return c.JSON(fiber.Map{
		"data":  data,
		"links": buildPageLinks(page),
	})
}

func (sh *salesmanHandler) Create(c *fiber.Ctx) error {
	var req salesmanRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(fiber.StatusBadRequest, "CreateSalesman")
		return errorResponse(c, fiber.StatusBadRequest, domain.CodeInputDataBadFormat, "Bad format of input data.")
	}

	if fieldErrors := validateSalesmanRequest(&req); len(fieldErrors) > 0 {
		config.PrintLogInfo(fiber.StatusUnprocessableEntity, "CreateSalesman")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	data, err := req.toData()
	if err != nil {
		return respondDomainError(c, "CreateSalesman", err)
	}

	salesman, err := sh.suc.Create(c.Context(), data)
	if err != nil {
		return respondDomainError(c, "CreateSalesman", err)
	}

	config.PrintLogInfo(fiber.StatusCreated, "CreateSalesman")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": newSalesmanResponse(salesman),
	})
}

func (sh *salesmanHandler) Show(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		config.PrintLogInfo(fiber.StatusBadRequest, "ShowSalesman")
		return errorResponse(c, fiber.StatusBadRequest, domain.CodeBadRequest, "Query execution failed.")
	}

	salesman, err := sh.suc.FindByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, "ShowSalesman", err)
	}

	config.PrintLogInfo(fiber.StatusOK, "ShowSalesman")
	return c.JSON(fiber.Map{
		"data": newSalesmanResponse(salesman),
	})
}

func (sh *salesmanHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		config.PrintLogInfo(fiber.StatusBadRequest, "UpdateSalesman")
		return errorResponse(c, fiber.StatusBadRequest, domain.CodeBadRequest, "Query execution failed.")
	}

	var req salesmanRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(fiber.StatusBadRequest, "UpdateSalesman")
		return errorResponse(c, fiber.StatusBadRequest, domain.CodeInputDataBadFormat, "Bad format of input data.")
	}

	if fieldErrors := validateSalesmanRequest(&req); len(fieldErrors) > 0 {
		config.PrintLogInfo(fiber.StatusUnprocessableEntity, "UpdateSalesman")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": fieldErrors,
		})
	}

	data, err := req.toData()
	if err != nil {
		return respondDomainError(c, "UpdateSalesman", err)
	}

	salesman, err := sh.suc.Update(c.Context(), id, data)
	if err != nil {
		return respondDomainError(c, "UpdateSalesman", err)
	}

	config.PrintLogInfo(fiber.StatusOK, "UpdateSalesman")
	return c.JSON(fiber.Map{
		"data": newSalesmanResponse(salesman),
	})
}

func (sh *salesmanHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		config.PrintLogInfo(fiber.StatusBadRequest, "DeleteSalesman")
		return errorResponse(c, fiber.StatusBadRequest, domain.CodeBadRequest, "Query execution failed.")
	}

	if _, err := sh.suc.Delete(c.Context(), id); err != nil {
		return respondDomainError(c, "DeleteSalesman", err)
	}

	config.PrintLogInfo(fiber.StatusNoContent, "DeleteSalesman")
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// queryInt falls back on non-numeric input and clamps to a minimum of 1.
func queryInt(c *fiber.Ctx, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	if v < 1 {
		return 1
	}
	return v
}
