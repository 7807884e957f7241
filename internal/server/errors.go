package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rfernando-oulu/eComSync/internal/authorization"
	"github.com/rfernando-oulu/eComSync/internal/hypermedia"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
	orderdomain "github.com/rfernando-oulu/eComSync/internal/order/domain"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

// errorResponse carries the @error block plus the structured field errors.
type errorResponse struct {
	hypermedia.Meta
	Errors []ValidationError `json:"errors,omitempty"`
}

type errorPayload struct {
	Type    string
	Title   string
	Message string
	Errors  []ValidationError
}

var (
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrInternal             = errors.New("internal_error")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrInvalidID            = errors.New("invalid_id")
	ErrUnsupportedMediaType = errors.New("unsupported_media_type")
	ErrMethodNotAllowed     = errors.New("method_not_allowed")
	ErrRateLimited          = errors.New("rate_limited")
	ErrServiceUnavailable   = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, newErrorResponse(payload))
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newErrorResponse(payload errorPayload) errorResponse {
	messages := make([]string, 0, len(payload.Errors)+1)
	if payload.Message != "" {
		messages = append(messages, payload.Message)
	}
	for _, e := range payload.Errors {
		messages = append(messages, e.Message)
	}

	meta := hypermedia.NewMeta("")
	meta.AddError(payload.Title, messages...)
	return errorResponse{Meta: meta, Errors: payload.Errors}
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// fieldErrors converts binding failures into one entry per offending field.
func fieldErrors(errs validator.ValidationErrors) error {
	out := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		out = append(out, ValidationError{
			Field:   field,
			Code:    fe.Tag(),
			Message: fieldErrorMessage(field, fe),
		})
	}
	return &ValidationErrors{Errors: out}
}

func fieldErrorMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing required field: '" + field + "'"
	case "max":
		return "'" + field + "' must be at most " + fe.Param() + " characters"
	case "email":
		return "'" + field + "' must be a valid email address"
	case "gte":
		return "'" + field + "' must be greater than or equal to " + fe.Param()
	default:
		return "'" + field + "' is invalid"
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:  "internal_error",
			Title: "Internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:   "validation_error",
			Title:  "Invalid request",
			Errors: vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, productdomain.ErrSKUExists):
		return http.StatusBadRequest, errorPayload{
			Type:  "validation_error",
			Title: "SKU already exists",
			Errors: []ValidationError{
				{Field: "sku", Code: err.Error(), Message: "SKU already exists"},
			},
		}
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, errorPayload{
			Type:    "unsupported_media_type",
			Title:   "Unsupported media type",
			Message: "Request content type must be JSON",
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		field := validationErrorField(code)
		return http.StatusBadRequest, errorPayload{
			Type:  "validation_error",
			Title: "Invalid request",
			Errors: []ValidationError{
				{
					Field:   field,
					Code:    code,
					Message: validationErrorMessage(code, field),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Title:   "Forbidden",
			Message: "a valid access-Key is required",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Title:   "Conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Title:   "Not found",
			Message: notFoundMessage(err),
		}
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, errorPayload{
			Type:  "method_not_allowed",
			Title: "Method not allowed",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Title:   "Too many requests",
			Message: "too many failed access-Key attempts",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:  "service_unavailable",
			Title: "Service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:  "internal_error",
			Title: "Internal server error",
		}
	}
}

// classifyErrorForLog reports the error type and code for the request log.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidID):
		return true
	case isManufacturerValidationError(err),
		isProductValidationError(err),
		isOptionValidationError(err),
		isOrderValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, productdomain.ErrSKUConflict):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, productdomain.ErrSKUConflict):
		return "SKU is already used by another product"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, manufacturerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, optiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, manufacturerdomain.ErrNotFound):
		return "Manufacturer not found"
	case errors.Is(err, productdomain.ErrNotFound):
		return "Product not found"
	case errors.Is(err, optiondomain.ErrNotFound):
		return "Option not found"
	default:
		return "not found"
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code, field string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case productdomain.ErrUnknownManufacturer.Error():
		return "manufacturer does not exist"
	case productdomain.ErrUnknownOption.Error():
		return "one or more selected options do not exist"
	case orderdomain.ErrUnknownProduct.Error():
		return "product does not exist"
	}
	if field != "" {
		return "invalid " + field
	}
	return "invalid value"
}

func isManufacturerValidationError(err error) bool {
	switch {
	case errors.Is(err, manufacturerdomain.ErrInvalidName),
		errors.Is(err, manufacturerdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isOptionValidationError(err error) bool {
	return errors.Is(err, optiondomain.ErrInvalidName)
}

func isOrderValidationError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrInvalidFirstname),
		errors.Is(err, orderdomain.ErrInvalidEmail),
		errors.Is(err, orderdomain.ErrInvalidTotal),
		errors.Is(err, orderdomain.ErrUnknownProduct):
		return true
	default:
		return false
	}
}
