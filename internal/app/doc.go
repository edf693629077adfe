// Package app provides application initialization and lifecycle management
// for the resale analytics service. It wires configuration, logging, the
// datastore client, the analytics service and the HTTP transport together at
// startup, and handles graceful shutdown.
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging
//	3. Create the datastore client and its metrics
//	4. Initialize the analytics service
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// All initialization errors are returned to the caller; the package never
// calls os.Exit() directly, so main controls the exit process.
package app
