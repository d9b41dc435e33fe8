// Package client implements the HTTP dispatch engine for the Discogs
// catalog API.
//
// # Overview
//
// The Client owns the outbound HTTP session and runs every request through
// the same lifecycle:
//
//	correlation id -> rate limiter -> transport send (with connection-level
//	retry) -> classification -> payload or typed error
//
// The rate limiter gates logical calls: one admission slot is consumed per
// Do invocation regardless of how many transport-level retries happen
// inside it.
//
// # Errors
//
// Every failure surfaces as an *APIError with a closed ErrorKind
// (Authentication, NotFound, BadRequest, RateLimited, ServerError,
// NetworkError). Classify maps response status codes to kinds; transport
// failures become KindNetworkError. Callers switch exhaustively on Kind or
// use the predicate helpers:
//
//	payload, err := c.Get(ctx, "/releases/1", nil)
//	if client.IsNotFound(err) {
//	    // unknown release
//	}
//
// # Retry layering
//
// The Client applies a fixed, narrow connection-level retry (5xx listed
// statuses and transport errors, exponential delay) as a safety net. The
// broader, caller-configured policy lives in package retry and wraps whole
// Do calls from the outside.
//
// # Thread Safety
//
// A single Client is safe for concurrent use. The underlying http.Client
// pools connections across calls; per-call state is never shared.
package client
