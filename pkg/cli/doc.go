// Package cli provides shared helpers for the command-line interface:
// output formatting, signal-aware contexts, and exit code mapping from the
// typed API error taxonomy.
package cli
