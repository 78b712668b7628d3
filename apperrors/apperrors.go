package apperrors

import "errors"

var (
	// ErrDuplicateReport means the same citizen already has an unresolved
	// issue at that location. The submission is rejected without mutation;
	// callers should surface it as information, not failure — the issue's
	// priority may still rise from reports by others.
	ErrDuplicateReport = errors.New("issue already reported by this citizen")

	// ErrNotFound is returned for reads or updates against an unknown id.
	ErrNotFound = errors.New("issue not found")

	// ErrNotLoggedIn means a submission was attempted without a resolved
	// identity. No partial state is created.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrConflict means an update carried a stale revision and was refused
	// rather than silently overwriting.
	ErrConflict = errors.New("issue was modified by someone else")

	// ErrForbidden means the caller's role lacks the required capability.
	ErrForbidden = errors.New("operation not allowed for this role")

	// Analysis errors surfaced by the image classifier. All of them are
	// non-fatal to issue creation: the caller re-prompts the user instead of
	// assuming a category.
	ErrAnalysisTimeout     = errors.New("image analysis timed out")
	ErrUnrecognizedImage   = errors.New("image does not show a recognizable civic issue")
	ErrAnalysisUnavailable = errors.New("image analysis unavailable")
)
