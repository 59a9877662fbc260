package model

import "time"

// User represents an administrator account.  There is no role table:
// existence of a row implies admin access.  Accounts are provisioned
// out-of-band (seed script or manual insert); the application never
// creates them.  This struct corresponds to a row in the `users` table.
type User struct {
	ID        string    `json:"id"`         // users.id (UUID)
	Email     string    `json:"email"`      // users.email, unique, lowercased
	IsActive  bool      `json:"is_active"`  // users.is_active
	CreatedAt time.Time `json:"created_at"` // users.created_at
	UpdatedAt time.Time `json:"updated_at"` // users.updated_at
}
