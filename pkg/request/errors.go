package request

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getmockd/factories/pkg/validation"
)

// UnauthorizedMessage is the message of a default authorization failure.
const UnauthorizedMessage = "This action is unauthorized."

var (
	// ErrNoSubject is returned when a factory neither has a subject nor can
	// infer one from its name.
	ErrNoSubject = errors.New("request: factory has no subject")
	// ErrNoRouter is returned when a named route is used without a router.
	ErrNoRouter = errors.New("request: no router configured")
)

// StatusCoder is implemented by errors that carry their own HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// ValidationError is returned by a pipeline when input fails its rules.
type ValidationError struct {
	Result *validation.Result
}

func (e *ValidationError) Error() string {
	if e.Result == nil || len(e.Result.Errors) == 0 {
		return "The given data was invalid."
	}
	return e.Result.Summary()
}

// StatusCode returns 422.
func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

// AuthorizationError is returned by a pipeline when the request is not
// authorized.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return UnauthorizedMessage
	}
	return e.Message
}

// StatusCode returns 403.
func (e *AuthorizationError) StatusCode() int { return http.StatusForbidden }

// PanicError wraps a value recovered from a panicking pipeline.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
