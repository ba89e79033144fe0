// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/platform/logging"
)

// ErrorResponse is the error envelope for every failed request.
// Field names follow the PascalCase convention of the rest of the API.
type ErrorResponse struct {
	// Error is the human-readable message.
	Error string `json:"Error"`

	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"Code"`

	// Details carries field-level messages for validation failures.
	Details map[string]string `json:"Details,omitempty"`

	TraceID string `json:"TraceId,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeInvalidRequest marks a write whose payload was missing or could
	// not be decoded, or whose author could not be resolved. It maps to 500.
	ErrorCodeInvalidRequest = "INVALID_REQUEST"

	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
)

// internalMessage is returned for errors whose text must not leak.
const internalMessage = "an internal error occurred"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: message,
		Code:  code,
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeUnavailable, ErrorCodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// The message is the innermost domain error's own text, so wrapping added on
// the way up (operation and step names) never reaches the client.
// Unknown errors map to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	resp := domainErrorResponse(err)

	return HTTPStatusFromCode(resp.Code), resp
}

func domainErrorResponse(err error) *ErrorResponse {
	var (
		notFound    *domain.NotFoundError
		invalid     *domain.InvalidRequestError
		validation  *domain.ValidationError
		unavailable *domain.UnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		return NewErrorResponse(ErrorCodeNotFound, notFound.Error())

	case domain.IsNotFound(err):
		return NewErrorResponse(ErrorCodeNotFound, domain.ErrNotFound.Error())

	case errors.As(err, &validation):
		resp := NewErrorResponse(ErrorCodeValidation, validation.Error())
		if validation.Field != "" {
			resp.Details = map[string]string{validation.Field: validation.Message}
		}

		return resp

	case domain.IsValidation(err):
		return NewErrorResponse(ErrorCodeValidation, domain.ErrValidation.Error())

	case errors.As(err, &invalid):
		return NewErrorResponse(ErrorCodeInvalidRequest, invalid.Error())

	case domain.IsInvalidRequest(err):
		return NewErrorResponse(ErrorCodeInvalidRequest, domain.ErrInvalidRequest.Error())

	case errors.As(err, &unavailable):
		return NewErrorResponse(ErrorCodeUnavailable, unavailable.Error())

	case domain.IsUnavailable(err):
		return NewErrorResponse(ErrorCodeUnavailable, domain.ErrUnavailable.Error())

	default:
		return NewErrorResponse(ErrorCodeInternal, internalMessage)
	}
}

// GetTraceID returns the active trace id of the request, or "".
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// HandleError writes the error envelope for err.
// Every 5xx is logged with the full error chain; the client only sees the mapped message.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.Int("status", status),
			slog.String("code", resp.Code),
		)
	}

	c.IndentedJSON(status, resp)
}

// RespondWithValidationErrors writes a 400 response with field-level validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors).
		WithTraceID(GetTraceID(c))
	c.IndentedJSON(http.StatusBadRequest, resp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
// Nothing is written when the handler already started the response.
func AbortWithErrorCode(c *gin.Context, status int, code, message string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(status, resp)
}

// NotRouted responds the way an unmatched route does. Handlers use it when a
// path segment declared as an integer does not parse.
func NotRouted(c *gin.Context) {
	AbortWithErrorCode(c, http.StatusNotFound, ErrorCodeNotFound, "no route matches "+c.Request.URL.Path)
}
