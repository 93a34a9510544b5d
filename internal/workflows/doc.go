// Package workflows provides the operations behind the clienv commands.
//
// Each workflow wraps one Store operation with the bookkeeping around it,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting:
//
//   - GetVariable: decrypts and returns a stored value
//   - SetVariable: encrypts and persists a value
//   - UnsetVariable: removes a stored value
//   - ListVariables: returns stored names, never values
//   - Log: reads and filters the audit trail
//
// The cmd/ package opens the Store, calls a workflow, and formats the
// result.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific conditions:
//
//	result, err := workflows.GetVariable(ctx, st, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // wrong key or tampered store
//	}
//
// A variable that was never set is not an error; check GetResult.Found.
//
// # Auditing
//
// When the options carry an AuditLog path, each successful workflow appends
// an entry to it. Audit failures never fail the workflow.
package workflows
