// Package cli implements the factories command line.
//
// Commands read the same configuration as the library: a YAML or JSON file
// (--config, FACTORIES_CONFIG or ./factories.yaml), then FACTORIES_*
// environment variables, then flags.
//
//	factories resolve StorePostRequest
//	factories subject --kind resource tests/resourcefactories/UserResourceFactory
//	factories make request user/StorePostRequest -o store_post_request_factory.go
//	factories scan --check
//	factories config
package cli
