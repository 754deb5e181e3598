package models

import (
	"time"
)

// RefreshToken is the server side record of an issued refresh token.
// Deleting the row is the only revocation mechanism: verification checks
// both the token signature and that an unexpired row still exists.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Pair of tokens returned to the user on successful login
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
