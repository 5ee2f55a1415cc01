package users

import "time"

// ProfileResponse is the public view of a user account.
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Tokens    int64     `json:"tokens"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateProfileRequest carries optional profile changes; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// TokensResponse is the balance query payload.
type TokensResponse struct {
	Tokens int64 `json:"tokens"`
}
