// Package config handles configuration loading, parsing, and validation
// from environment variables (PAWSCOUT_ prefix), an optional .env file and an
// optional config.yaml. It provides type-safe access to the settings needed by
// the HTTP server, the PostgreSQL store, the token service and the media CDN
// client while keeping configuration details out of business logic.
package config
