package authapi

import "time"

type loginRequest struct {
	// Identifier is a username, email address, or account alias.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	Alias       *string   `json:"alias"`
	DisplayName *string   `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type loginResponse struct {
	User userResponse `json:"user"`
}

type meResponse struct {
	User    userResponse `json:"user"`
	Channel string       `json:"channel"`
}
