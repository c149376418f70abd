// Package api is the REST client for the Colis backend.
//
// HTTPClient resolves paths against a base URL, applies the per-environment
// timeout, injects the bearer token of the current session, tags every request
// with an X-Request-Id and logs requests and failures. Failures are mapped to
// the sentinel errors in errors.go so callers can use errors.Is.
package api
