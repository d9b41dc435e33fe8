// Package config defines the application configuration, YAML loading,
// validation, and environment variable overrides.
//
// # Loading Sequence
//
// Configuration flows through a fixed sequence:
//
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides (CRATEDIG_SECTION_FIELD)
//  4. Validate the final configuration
//
// Environment variables always take precedence over file values, so secrets
// like the API token can stay out of the config file entirely:
//
//	export CRATEDIG_API_TOKEN=xxxx
//
// # Hot Reload
//
// Watch re-loads the file when it changes on disk, debounced so editors
// that write in multiple syscalls trigger a single reload.
package config
