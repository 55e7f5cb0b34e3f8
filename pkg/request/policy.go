package request

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprPolicy is an Authorizer backed by a boolean expr-lang expression.
//
// The expression sees:
//
//	user    the authenticated user in its JSON form, nil for a guest
//	input   the request input
//	route   the route parameters
//	method  the HTTP method
//
// For example: `user.is_admin || route.post in user.post_ids`.
// Reading a field of a nil user is a runtime error, which the pipeline
// reports as a server error.
type ExprPolicy struct {
	source  string
	program *vm.Program
}

// NewExprPolicy compiles expression.
func NewExprPolicy(expression string) (*ExprPolicy, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("request: compile policy %q: %w", expression, err)
	}
	return &ExprPolicy{source: expression, program: program}, nil
}

// MustExprPolicy is NewExprPolicy that panics on error.
func MustExprPolicy(expression string) *ExprPolicy {
	p, err := NewExprPolicy(expression)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression source.
func (p *ExprPolicy) String() string {
	return p.source
}

// Authorize evaluates the expression for r.
func (p *ExprPolicy) Authorize(r *Request) (bool, error) {
	user, err := jsonForm(r.User())
	if err != nil {
		return false, fmt.Errorf("request: policy user: %w", err)
	}

	params := map[string]any{}
	if route := r.Route(); route != nil {
		for k, v := range route.Parameters {
			params[k] = v
		}
	}

	out, err := expr.Run(p.program, map[string]any{
		"user":   user,
		"input":  r.All(),
		"route":  params,
		"method": r.Method,
	})
	if err != nil {
		return false, fmt.Errorf("request: evaluate policy %q: %w", p.source, err)
	}

	allowed, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("request: policy %q returned %T, want bool", p.source, out)
	}
	return allowed, nil
}

func jsonForm(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
