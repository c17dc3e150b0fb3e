// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank text, number out of range).
	UserError = 1

	// AuthError indicates an auth/config error for push.
	AuthError = 2

	// BackendError indicates a store or remote API error.
	BackendError = 3
)
