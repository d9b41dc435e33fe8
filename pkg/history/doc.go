// Package history keeps a local audit trail of dispatched requests in a
// SQLite database.
//
// The Store implements client.Observer: register it on the Client and every
// completed dispatch is recorded with its correlation id, status, timing,
// and error kind. The trail answers "what did this tool actually send and
// when" without any server-side cooperation.
//
// Retention is handled by the Pruner, optionally driven by the Scheduler on
// a cron expression. Entries age out after a configured number of days, and
// the table is capped at a maximum row count with the oldest rows dropped
// first.
package history
