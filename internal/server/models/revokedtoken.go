package models

import "time"

// RevokedToken is a blocklist entry. Once a jti is recorded here the
// originating token is unusable for the rest of its lifetime, regardless of
// signature and expiry.
type RevokedToken struct {
	ID        string
	JTI       string
	RevokedAt time.Time
}
