package output

import "errors"

// ErrUnsupportedFormat is returned when a requested output format is not registered.
var ErrUnsupportedFormat = errors.New("unsupported output format")
