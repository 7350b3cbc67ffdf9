package models

// User is a stored account. PasswordHash is opaque to everything except the
// password hasher; the cleartext password is never persisted or logged.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}
