package sqlite

import "errors"

// ErrDBUnavailable signals that the shared database handle has not been
// initialized yet.
var ErrDBUnavailable = errors.New("database not available")
