package dispatch

import "errors"

// ErrDuplicateRoute is returned by Register when a (method, normalized
// path) pair is registered twice. This is a configuration error: it is
// fatal to setup and must not be silently ignored. The original route's
// handler is left unchanged.
var ErrDuplicateRoute = errors.New("duplicate route")

// ErrNotFound is returned by Lookup when no registered route accepts the
// request. This is the designed no-result outcome, not a failure: the
// pipeline answers it with the structured 404 response.
var ErrNotFound = errors.New("no matching route was found")
