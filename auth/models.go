package auth

import "time"

// User is the account model. Tokens is the balance the reading transaction
// spends from; it is mutated only through the ledger, never overwritten.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Tokens         int64     `json:"tokens"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
