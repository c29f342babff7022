package auth

import "github.com/heartmarshall/drugverify-backend/internal/domain"

// MsgEmailTaken is the signup failure message for a duplicate email.
const MsgEmailTaken = "An account with this email already exists."

// AuthResult is returned by Register, Login and Refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	ExpiresIn    int    // access token lifetime in seconds
	User         *domain.User
}

// AddUserResult reports the outcome of AddUser. A duplicate email is a
// regular outcome, not an error.
type AddUserResult struct {
	Success bool
	Message string
	User    *domain.User
}
