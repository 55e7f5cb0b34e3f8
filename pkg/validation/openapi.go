package validation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// OpenAPIValidator validates simulated requests and recorded responses
// against an OpenAPI 3 document.
type OpenAPIValidator struct {
	doc    *openapi3.T
	router routers.Router
}

// NewOpenAPIValidator validates doc and builds a route matcher for it.
func NewOpenAPIValidator(ctx context.Context, doc *openapi3.T) (*OpenAPIValidator, error) {
	if doc == nil {
		return nil, errors.New("validation: OpenAPI document is required")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &OpenAPIValidator{doc: doc, router: router}, nil
}

// LoadOpenAPIFile loads and validates an OpenAPI document from a file.
func LoadOpenAPIFile(ctx context.Context, path string) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec from file %s: %w", path, err)
	}
	return NewOpenAPIValidator(ctx, doc)
}

// LoadOpenAPIData loads and validates an OpenAPI document from YAML or JSON bytes.
func LoadOpenAPIData(ctx context.Context, data []byte) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec: %w", err)
	}
	return NewOpenAPIValidator(ctx, doc)
}

// Document returns the loaded OpenAPI document.
func (v *OpenAPIValidator) Document() *openapi3.T {
	return v.doc
}

// ValidateRequest validates r. The body is restored so it can be read again.
func (v *OpenAPIValidator) ValidateRequest(r *http.Request) *Result {
	result := Pass()

	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		result.AddError(&FieldError{
			Location: LocationRoute,
			Code:     "no_route",
			Message:  fmt.Sprintf("no matching route found: %s", err.Error()),
		})
		return result
	}

	if r.Body != nil && r.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			result.AddError(&FieldError{
				Location: LocationBody,
				Code:     "read_error",
				Message:  fmt.Sprintf("failed to read request body: %s", err.Error()),
			})
			return result
		}
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		defer func() { r.Body = io.NopCloser(bytes.NewReader(bodyBytes)) }()
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		parseOpenAPIErrors(err, result)
	}

	return result
}

// ValidateResponse validates a recorded response to r.
func (v *OpenAPIValidator) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) *Result {
	result := Pass()

	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		result.AddError(&FieldError{
			Location: "response",
			Code:     "no_route",
			Message:  fmt.Sprintf("no matching route found: %s", err.Error()),
		})
		return result
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			MultiError:            true,
			IncludeResponseStatus: true,
		},
	}
	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(r.Context(), input); err != nil {
		parseOpenAPIErrors(err, result)
		for _, e := range result.Errors {
			e.Location = "response"
		}
	}

	return result
}

// parseOpenAPIErrors converts kin-openapi errors to FieldErrors
func parseOpenAPIErrors(err error, result *Result) {
	parseOpenAPIError(err, FieldError{Code: ErrCodeOpenAPI, Location: "request"}, result)
}

// parseOpenAPIError flattens err into result. base carries the parameter or
// body context of enclosing RequestErrors down to the leaf errors.
func parseOpenAPIError(err error, base FieldError, result *Result) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			parseOpenAPIError(inner, base, result)
		}
		return
	case *openapi3filter.RequestError:
		switch {
		case e.Parameter != nil:
			base.Field = e.Parameter.Name
			base.Location = parameterLocation(e.Parameter.In)
		case e.RequestBody != nil:
			base.Location = LocationBody
		}
		if e.Err != nil {
			parseOpenAPIError(e.Err, base, result)
			return
		}
	case *openapi3filter.ResponseError:
		if e.Err != nil {
			parseOpenAPIError(e.Err, base, result)
			return
		}
	case *openapi3.SchemaError:
		fe := base
		if fe.Field == "" {
			fe.Field = pointerField(e.JSONPointer())
		}
		if fe.Location == "request" {
			fe.Location = LocationBody
		}
		fe.Code = ErrCodeSchema
		fe.Message = e.Reason
		result.AddError(&fe)
		return
	}

	fe := base
	fe.Message = err.Error()
	result.AddError(&fe)
}

func parameterLocation(in string) string {
	switch in {
	case openapi3.ParameterInPath:
		return LocationRoute
	case openapi3.ParameterInQuery:
		return LocationQuery
	case openapi3.ParameterInHeader:
		return LocationHeader
	case openapi3.ParameterInCookie:
		return LocationCookie
	default:
		return "parameter"
	}
}

// pointerField joins JSON pointer parts with dots: ["tags", "0"] -> "tags.0".
func pointerField(parts []string) string {
	var out string
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = joinField(out, p)
	}
	return out
}
