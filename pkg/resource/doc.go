// Package resource renders API resources and builds reusable assertions on
// their JSON shape.
//
// A Resource turns a model into a map. A resource factory embeds *Factory,
// describes the expected JSON of one model in Definition, and is handed a
// model, a collection, or a paginator:
//
//	type PostResourceFactory struct{ *resource.Factory }
//
//	func (PostResourceFactory) Definition(f *resource.Factory, j *assertjson.JSON) {
//		post := f.Current().(*Post)
//		j.Where("title", post.Title)
//	}
//
//	res, _ := f.Model(post).With("creator", UserResource{}).Response()
//	res.AssertJSON(t, f.Create())
//
// Create recurses into every relation registered with With, asserting the
// nested value with the related resource's own factory.
package resource
