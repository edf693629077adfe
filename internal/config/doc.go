// Package config provides centralized configuration management for the
// resale analytics service. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the rest of the application.
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml / configs/config.yaml
//	3. Default values (lowest priority)
//
// All environment variables follow the pattern RESALE_* for namespacing:
//
//	RESALE_SERVER_PORT=8080
//	RESALE_DATASTORE_RESOURCE_ID=...
//	RESALE_DATASTORE_WINDOW_MONTHS=12
//	RESALE_LOGGING_LEVEL=info
package config
