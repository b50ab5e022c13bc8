package backup

import "errors"

// Backup domain errors. Foreign rows surface as not-found: queries are
// scoped by user, so whether a backup exists for someone else never leaks.
var ErrBackupNotFound = errors.New("backup not found")
