package domain

import "time"

// Claims are the decoded contents of a bearer token. Tokens are stateless:
// validity is purely a function of signature and expiry, no server-side
// session backs them.
type Claims struct {
	UserID     string
	EmployeeID string
	Email      string
	Role       string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}
