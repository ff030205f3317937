// Package media defines the contract with the external media host (the CDN
// that stores animal photos, videos and the shelter logo) and the helpers
// built on top of it.
//
// Calls to the host are made at most once; failures are reported to the
// caller and never retried here.
package media
