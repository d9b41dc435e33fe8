// Cratedig is a rate-limited command-line client for the Discogs catalog API.
//
// Every request flows through a sliding window rate limiter, a typed error
// classifier, and a retrying dispatcher, so bulk catalog work stays inside
// the API's request budget without manual pacing.
//
// Usage:
//
//	# Search the database
//	cratedig search "nirvana nevermind" --type release
//
//	# Fetch a release with its tracklist
//	cratedig release 249504
//
//	# Page through an artist's releases
//	cratedig artist 108713 --releases --page 2
//
//	# Inspect the rate limit window
//	cratedig status
//
//	# Review the local request audit trail
//	cratedig history --limit 20
//
// The API token is read from CRATEDIG_API_TOKEN or the config file.
package main

func main() {
	Execute()
}
