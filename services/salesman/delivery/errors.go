package delivery

import (
	"errors"

	"salesman/config"
	"salesman/domain"

	"github.com/gofiber/fiber/v2"
)

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"errors": []wireError{{Code: code, Message: message}},
	})
}

// respondDomainError is the single boundary where typed domain failures
// become wire errors. Anything untyped is a 500 with a generic message.
func respondDomainError(c *fiber.Ctx, functionName string, err error) error {
	var (
		notFound      *domain.NotFoundError
		alreadyExists *domain.AlreadyExistsError
		invalidInput  *domain.InvalidInputError
		outOfRange    *domain.OutOfRangeError
	)

	status := fiber.StatusInternalServerError
	code := domain.CodeInternalServerError
	message := "An internal server error occurred."

	switch {
	case errors.As(err, &notFound):
		status, code, message = fiber.StatusNotFound, domain.CodePersonNotFound, notFound.Error()
	case errors.As(err, &alreadyExists):
		status, code, message = fiber.StatusConflict, domain.CodePersonAlreadyExists, alreadyExists.Error()
	case errors.As(err, &invalidInput):
		status, code, message = fiber.StatusBadRequest, domain.CodeInputDataBadFormat, invalidInput.Error()
	case errors.As(err, &outOfRange):
		status, code, message = fiber.StatusRequestedRangeNotSatisfiable, domain.CodeInputDataOutOfRange, outOfRange.Error()
	default:
		config.GetLogrusInstance().Errorf("%s: %v", functionName, err)
	}

	config.PrintLogInfo(status, functionName)
	return errorResponse(c, status, code, message)
}

// RouteNotFound answers anything outside the API surface, malformed routes
// included.
func RouteNotFound(c *fiber.Ctx) error {
	config.PrintLogInfo(fiber.StatusBadRequest, "RouteNotFound")
	return errorResponse(c, fiber.StatusBadRequest, domain.CodeBadRequest, "Query execution failed.")
}
