// Package request builds simulated inbound requests for form request subjects
// and runs them through a validation pipeline.
//
// A subject is a FormRequest: it declares validation rules and, optionally,
// an authorization check. A user factory embeds *Factory and supplies default
// attributes through Definition:
//
//	type StorePostRequestFactory struct{ *request.Factory }
//
//	func (StorePostRequestFactory) Definition(f *request.Factory) map[string]any {
//		return map[string]any{"title": f.Faker().Sentence()}
//	}
//
// Factories are built by a Provider, either from a constructor registered
// under the conventional factory name of the subject, or from the subject's
// own FactoryProvider hook:
//
//	b, err := provider.Factory(StorePostRequest{})
//	...
//	res, err := b.Base().Unset("title").Validate()
//	res.AssertUnprocessable(t).AssertJSONValidationErrors(t, "title")
//
// Attribute precedence is definition < overrides < unset list, see
// package attributes.
package request
