package password

import "errors"

// ErrCorruptRecord is returned when a stored credential matches neither
// known shape. Callers log it (redacted) and treat the attempt as a
// mismatch; it must never crash a request.
var ErrCorruptRecord = errors.New("corrupt credential record")
