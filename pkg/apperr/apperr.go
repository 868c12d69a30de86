package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries an HTTP status and a stable error code to the client
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code ErrorCode, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func Wrap(status int, code ErrorCode, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, ErrorCodeNotFound, message)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, ErrorCodeValidation, message)
}

func Timeout(message string) *AppError {
	return New(http.StatusGatewayTimeout, ErrorCodeTimeout, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, ErrorCodeForbidden, message)
}

// Send writes an error response, mapping AppError to its status/code
// and everything else to a 500
func Send(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
