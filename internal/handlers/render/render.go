package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phamtheduy/portfolio/internal/models"
)

// Machine readable error codes of the API
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeAccountDisabled     = "ACCOUNT_DISABLED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeProjectNotFound     = "PROJECT_NOT_FOUND"
	CodeAchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

var validate = validator.New()

func init() {
	// Report on json tag names instead of struct field names
	// Look at documentation of 'RegisterTagNameFunc' for more details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		// skip if tag key says it should be ignored
		if name == "-" {
			return ""
		}
		return name
	})
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type successResponse struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Success renders the uniform success envelope
func Success(w http.ResponseWriter, data any) {
	jsonWithStatus(w, successResponse{Success: true, Data: data}, http.StatusOK)
}

// SuccessMessage renders the success envelope with a human readable message
func SuccessMessage(w http.ResponseWriter, data any, message string) {
	jsonWithStatus(w, successResponse{Success: true, Data: data, Message: message}, http.StatusOK)
}

// Created renders the success envelope with status 201
func Created(w http.ResponseWriter, data any) {
	jsonWithStatus(w, successResponse{Success: true, Data: data}, http.StatusCreated)
}

// Paginated renders the success envelope for one page of a listing
func Paginated(w http.ResponseWriter, data any, pagination models.Pagination) {
	jsonWithStatus(w, successResponse{Success: true, Data: data, Pagination: &pagination}, http.StatusOK)
}

// Error renders the uniform error envelope
func Error(w http.ResponseWriter, code string, message string, status int) {
	jsonWithStatus(w, errorResponse{Error: errorBody{Code: code, Message: message}}, status)
}

// Render json decoding failure as a validation error
func DecodeError(w http.ResponseWriter, err error) {
	message := "Failed to parse request body"

	// Try to provide more specific error message based on error type
	switch err := err.(type) {
	case *json.UnmarshalTypeError:
		message = fmt.Sprintf("Invalid data type for field '%s'", err.Field)
	}

	jsonWithStatus(w, errorResponse{Error: errorBody{Code: CodeValidationError, Message: message}}, http.StatusBadRequest)
}

// Render ValidationErrors with per-field details
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	details := make([]FieldError, 0, len(errs))

	// Create user-friendly error messages based on validation tag
	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "required":
			message = "This field is required"
		case "min":
			message = fmt.Sprintf("Value is too short (minimum %s)", fieldError.Param())
		case "max":
			message = fmt.Sprintf("Value is too long (maximum %s)", fieldError.Param())
		case "url":
			message = "Value must be a valid URL"
		default:
			message = "Invalid value"
		}

		details = append(details, FieldError{Field: fieldError.Field(), Message: message})
	}

	response := errorResponse{
		Error: errorBody{
			Code:    CodeValidationError,
			Message: "Validation failed",
			Details: details,
		},
	}

	jsonWithStatus(w, response, http.StatusBadRequest)
}

// BindAndValidate decodes JSON request body into type T and validates it using struct tags.
// Returns the decoded value and writes appropriate error responses for decoding or validation failures.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		DecodeError(w, err)
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
