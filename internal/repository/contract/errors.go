package contract

import "errors"

// ErrSessionNotFound is returned by writes scoped to a session that no longer
// exists. The check-then-insert window is not locked; a row slipping through
// is cleaned up by the session delete cascade.
var ErrSessionNotFound = errors.New("session not found")
