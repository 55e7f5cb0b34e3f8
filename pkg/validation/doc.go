// Package validation checks form request input against declarative rules.
//
// It is the default validation pipeline behind request factories. A form
// request returns a *Rules describing what its body, route parameters, query
// string and headers must look like:
//
//	func (StorePostRequest) Rules(r *request.Request) *validation.Rules {
//	    return &validation.Rules{
//	        Fields: map[string]*validation.FieldValidator{
//	            "title": validation.String().AsRequired().WithMaxLength(255),
//	            "tags":  validation.Array(validation.String()),
//	        },
//	    }
//	}
//
// Body rules can alternatively be a JSON Schema (Draft 2020-12), inline or
// loaded from a file. For services that publish an OpenAPI 3 document,
// OpenAPIValidator validates the whole simulated *http.Request instead.
//
// Failures are collected in a Result. Messages follow the wording web
// frameworks commonly return in 422 responses ("The title field is
// required."), and Result.ByField groups them per field for rendering.
package validation
