// Package testapp is a tiny application used by the tests: two models, a
// few form requests and API resources, and their factories.
package testapp
