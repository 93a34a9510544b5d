package workflows

import (
	"context"

	"github.com/PolarWolf314/clienv/internal/audit"
	"github.com/PolarWolf314/clienv/internal/secrets"
	"github.com/PolarWolf314/clienv/internal/store"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	// Name is the variable to look up.
	Name string

	// Key is the secret used to decrypt the stored value.
	Key secrets.SecretKey

	// AuditLog is the audit log path. Empty disables auditing.
	AuditLog string
}

// GetResult contains the outcome of a get operation.
type GetResult struct {
	Name string

	// Value is the decrypted plaintext. Empty when Found is false.
	Value string

	// Found reports whether Name was stored.
	Found bool
}

// GetVariable returns the decrypted value of a stored variable.
//
// A name that was never set is not an error: the result has Found false.
// Returns ErrAuthenticationFailed if the key does not match the stored value.
// Returns ErrMalformedEnvelope if the stored entry is not a valid envelope.
func GetVariable(ctx context.Context, st *store.Store, opts GetOptions) (*GetResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found, err := st.Get(opts.Name, opts.Key)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("get")
	entry.Name = opts.Name
	entry.Found = audit.Bool(found)
	audit.Log(opts.AuditLog, entry)

	return &GetResult{Name: opts.Name, Value: value, Found: found}, nil
}

// SetOptions configures the set workflow.
type SetOptions struct {
	Name  string
	Value string

	// Key is the secret used to encrypt the value.
	Key secrets.SecretKey

	// AuditLog is the audit log path. Empty disables auditing.
	AuditLog string
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Name string

	// Overwritten reports whether an earlier value was replaced.
	Overwritten bool
}

// SetVariable encrypts a value and stores it, persisting the whole store.
//
// Returns ErrInvalidName if the name is empty or not valid UTF-8, and
// ErrInvalidValue if the value is not valid UTF-8.
// Returns ErrInvalidKeyLength if the key is not 32 bytes.
// Returns ErrPersistFailed if the backing file cannot be written; the
// previous value, if any, is still stored.
func SetVariable(ctx context.Context, st *store.Store, opts SetOptions) (*SetResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existed, err := st.Set(opts.Name, opts.Value, opts.Key)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("set")
	entry.Name = opts.Name
	entry.Overwritten = existed
	audit.Log(opts.AuditLog, entry)

	return &SetResult{Name: opts.Name, Overwritten: existed}, nil
}

// UnsetOptions configures the unset workflow.
type UnsetOptions struct {
	Name     string
	AuditLog string
}

// UnsetResult contains the outcome of an unset operation.
type UnsetResult struct {
	Name string

	// Removed is false when Name was not stored.
	Removed bool
}

// UnsetVariable removes a stored variable. No key is needed.
func UnsetVariable(ctx context.Context, st *store.Store, opts UnsetOptions) (*UnsetResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	removed, err := st.Unset(opts.Name)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("unset")
	entry.Name = opts.Name
	entry.Found = audit.Bool(removed)
	audit.Log(opts.AuditLog, entry)

	return &UnsetResult{Name: opts.Name, Removed: removed}, nil
}

// ListOptions configures the list workflow.
type ListOptions struct {
	AuditLog string
}

// ListResult contains the stored variable names in sorted order.
type ListResult struct {
	Names []string
}

// ListVariables returns the names of all stored variables. Values are
// neither decrypted nor returned.
func ListVariables(ctx context.Context, st *store.Store, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := st.Names()

	entry := audit.LogWithUser("list")
	entry.Count = len(names)
	audit.Log(opts.AuditLog, entry)

	return &ListResult{Names: names}, nil
}
