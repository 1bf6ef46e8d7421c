package handler

import (
	"github.com/gin-gonic/gin"
)

// ErrorKind is the machine-readable failure class returned in "error".
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindInvalidFormat      ErrorKind = "invalid_format"
	KindPolicyViolation    ErrorKind = "policy_violation"
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindMethodNotAllowed   ErrorKind = "method_not_allowed"
	KindNotFound           ErrorKind = "not_found"
	KindStorageError       ErrorKind = "storage_error"
	KindInternalError      ErrorKind = "internal_error"
)

// Response is the JSON envelope of every API reply. Failures carry no data.
type Response struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorKind `json:"error,omitempty"`
	Data    any       `json:"data,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope and stops the handler chain.
func Fail(c *gin.Context, status int, kind ErrorKind, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message, Error: kind})
}
