package domain

import "fmt"

// Wire error codes shared with API clients.
const (
	CodePersonNotFound      = "PERSON_NOT_FOUND"
	CodePersonAlreadyExists = "PERSON_ALREADY_EXISTS"
	CodeInputDataBadFormat  = "INPUT_DATA_BAD_FORMAT"
	CodeInputDataOutOfRange = "INPUT_DATA_OUT_OF_RANGE"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// NotFoundError signals that no salesman exists under the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Salesman %q not found.", e.ID)
}

// AlreadyExistsError signals a uniqueness violation on prosight_id or email.
type AlreadyExistsError struct {
	Field string
	Value string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Salesman with such %s %s is already registered.", e.Field, e.Value)
}

// InvalidInputError signals input that fails format or membership rules.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func NewInvalidInputError(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

// NewFieldTypeError reports a raw-input field of the wrong type.
func NewFieldTypeError(field, value, expectedType string) *InvalidInputError {
	return &InvalidInputError{
		Message: fmt.Sprintf("Bad format of input data. Field %s %s must be of type %s.", field, value, expectedType),
	}
}

// OutOfRangeError signals a value outside its acceptable range.
type OutOfRangeError struct {
	Field string
	Value string
	Range string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("Input data out of range. Field %s of value %s is out of range. Acceptable range for this field is %s.", e.Field, e.Value, e.Range)
}
