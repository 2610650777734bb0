package identity

import "github.com/google/uuid"

// RegisterInput contains input for registration
type RegisterInput struct {
	Username     string
	Password     string
	Confirmation string
}

// LoginInput contains input for login
type LoginInput struct {
	Username string
	Password string
}

// UserInfo is the user representation returned to the interface layer
type UserInfo struct {
	ID       uuid.UUID
	Username string
}

// LoginResult is returned from Login. The session token is placed
// into a cookie by the handler.
type LoginResult struct {
	User         UserInfo
	SessionToken string
}
