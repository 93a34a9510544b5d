// Package audit provides an optional audit trail of store operations.
//
// When `audit_log` is configured, every get, set, unset and list is
// appended to that file as JSON Lines:
//
//	{"id":"…","ts":"2026-10-16T09:00:00.000000Z","user":"alice","op":"set","name":"DB_PASS"}
//
// Variable values are never written to the log.
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written, the operation
// continues without error.
//
// # Reading Logs
//
// ReadEntries parses the log. Malformed lines are skipped to tolerate
// partial writes.
package audit
