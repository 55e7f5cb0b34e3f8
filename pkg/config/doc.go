// Package config holds the settings shared by the request and resource
// factory providers.
//
// The four directory roots drive the naming convention that maps a subject
// (a form request or an API resource) to its factory:
//
//	app/http/requests/user/StoreRequest  <->  tests/requestfactories/user/StoreRequestFactory
//
// Configuration is layered, highest precedence first:
//
//  1. Command-line flags (CLI only)
//  2. Environment variables (FACTORIES_* prefix)
//  3. A YAML or JSON config file
//  4. Default values
//
// A Config is passed explicitly to the providers; there is no package-level
// state.
package config
