package logging

import "errors"

// ErrInvalidLogLevel is returned by Config.Validate when Level names
// something other than debug, info, warn/warning, error, or the empty
// string (which defers to the default level).
var ErrInvalidLogLevel = errors.New("invalid log level")
