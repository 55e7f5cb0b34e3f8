package request

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/getmockd/factories/pkg/httputil"
	"github.com/getmockd/factories/pkg/logging"
)

// ServerErrorMessage is the body message of a 500 outside debug mode.
const ServerErrorMessage = "Server Error"

// ExceptionRenderer renders pipeline failures as JSON:
//
//	*ValidationError     422 {"message": ..., "errors": {field: [messages]}}
//	*AuthorizationError  403 {"message": "This action is unauthorized."}
//	StatusCoder          its status, {"message": err.Error()}
//	anything else        500 {"message": "Server Error"}
//
// With Debug set, 500 responses carry the error text instead.
type ExceptionRenderer struct {
	Debug  bool
	Logger *slog.Logger
}

// Render writes the response for err.
func (e ExceptionRenderer) Render(w http.ResponseWriter, r *Request, err error) {
	log := logging.OrNop(e.Logger)

	var validationErr *ValidationError
	var authErr *AuthorizationError
	var coder StatusCoder

	switch {
	case errors.As(err, &validationErr):
		result := validationErr.Result
		if result == nil {
			httputil.WriteValidationErrors(w, validationErr.Error(), nil)
			return
		}
		httputil.WriteValidationErrors(w, validationErr.Error(), result.ByField())
	case errors.As(err, &authErr):
		httputil.WriteForbidden(w, authErr.Error())
	case errors.As(err, &coder):
		httputil.WriteMessage(w, coder.StatusCode(), err.Error())
	default:
		log.Debug("rendering server error", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
		if e.Debug {
			httputil.WriteServerError(w, err.Error())
			return
		}
		httputil.WriteServerError(w, ServerErrorMessage)
	}
}
