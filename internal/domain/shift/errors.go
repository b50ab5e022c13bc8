package shift

import "errors"

// Shift domain errors. Foreign rows surface as not-found: queries are
// scoped by user, so whether a shift exists for someone else never leaks.
var ErrShiftNotFound = errors.New("shift not found")
