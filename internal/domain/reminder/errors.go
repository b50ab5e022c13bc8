package reminder

import "errors"

// Reminder domain errors. Foreign rows surface as not-found: queries are
// scoped by user, so whether a reminder exists for someone else never leaks.
var ErrReminderNotFound = errors.New("reminder not found")
