// Package catalog provides typed operations over the catalog API.
//
// The Service composes the request builder with the dispatch client and the
// retry strategy: each method assembles an endpoint, dispatches it through
// the rate-limited client, retries per policy, and decodes the payload into
// a typed struct.
//
//	svc := catalog.NewService(c, retry.New())
//	results, err := svc.Search(ctx, catalog.SearchOptions{Query: "nevermind"})
//
// Responses keep a Raw field with the untouched JSON payload so callers can
// reach fields the typed structs do not cover.
package catalog
