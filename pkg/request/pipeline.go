package request

import (
	"context"

	"github.com/spf13/cast"

	"github.com/getmockd/factories/pkg/validation"
)

// DefaultPipeline authorizes the request, then checks the subject's rules.
type DefaultPipeline struct{}

// Validate runs authorization and validation for r.
func (DefaultPipeline) Validate(ctx context.Context, r *Request) error {
	if err := Authorize(r); err != nil {
		return err
	}

	rules := r.Subject().Rules(r)
	if rules.IsEmpty() {
		return nil
	}

	result := validation.NewValidator(rules).Validate(ctx, r.All(), r.routeStrings(), firstValues(r.URL.Query()), firstValues(r.Header))
	if !result.Valid {
		return &ValidationError{Result: result}
	}
	return nil
}

// Authorize runs the subject's Authorizer, if it has one.
func Authorize(r *Request) error {
	a, ok := r.Subject().(Authorizer)
	if !ok {
		return nil
	}
	allowed, err := a.Authorize(r)
	if err != nil {
		return err
	}
	if !allowed {
		return &AuthorizationError{}
	}
	return nil
}

// Chain runs pipelines in order and stops at the first failure.
func Chain(pipelines ...Pipeline) Pipeline {
	return PipelineFunc(func(ctx context.Context, r *Request) error {
		for _, p := range pipelines {
			if err := p.Validate(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// OpenAPIPipeline validates made requests against an OpenAPI document.
// Requests are matched on the path of the made URL, rooted at
// http://localhost.
type OpenAPIPipeline struct {
	Validator *validation.OpenAPIValidator
}

// Validate checks r against the matching OpenAPI operation.
func (p OpenAPIPipeline) Validate(_ context.Context, r *Request) error {
	result := p.Validator.ValidateRequest(r.Request)
	if !result.Valid {
		return &ValidationError{Result: result}
	}
	return nil
}

func (r *Request) routeStrings() map[string]string {
	out := make(map[string]string)
	if r.route == nil {
		return out
	}
	for k, v := range r.route.Parameters {
		out[k] = cast.ToString(v)
	}
	return out
}

func firstValues[M ~map[string][]string](m M) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
