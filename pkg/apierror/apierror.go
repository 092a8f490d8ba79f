// Package apierror holds the error taxonomy shared by services and handlers
// and the single place where it is mapped onto HTTP responses.
package apierror

import (
	"errors"
	"net/http"

	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUpload             = errors.New("upload rejected")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// Error carries a client-facing message alongside a sentinel kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// New returns an error matching kind under errors.Is with msg as its text.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUpload):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes {message} for err. Unexpected errors are logged and hidden.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"message": "Server error"})
		return
	}
	msg := err.Error()
	var ae *Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
