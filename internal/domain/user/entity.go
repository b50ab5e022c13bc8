package user

import "time"

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether the account can log in with a password
// (an account created through Google sign-in may not have one).
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
