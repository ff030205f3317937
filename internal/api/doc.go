// Package api serves the PawScout HTTP API. Handlers decode and validate
// requests, call the services, and map service errors onto status codes and
// client-safe messages. Routes are grouped into a public surface (catalogue,
// adoption, volunteer and contact forms, shelter profile) and an /admin
// surface guarded by the auth middleware.
package api
