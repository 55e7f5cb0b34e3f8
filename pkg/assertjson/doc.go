// Package assertjson provides a scoped, fluent assertion context over a
// decoded JSON document.
//
// Keys are dotted paths ("data.0.title") that walk objects and arrays. Each
// scope remembers which top-level properties were asserted on; when a scope
// opened by Has, Each or First closes, every property of it must have been
// touched unless Etc was called.
//
//	assertjson.New(t, body).
//		Has("data", func(j *assertjson.JSON) {
//			j.Where("title", "Hello").Etc()
//		}).
//		Missing("errors")
package assertjson
