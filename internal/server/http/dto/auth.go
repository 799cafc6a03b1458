package dto

// LoginRequest describes login/password payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated account info back to the client.
type LoginResponse struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

// ForgotRequest asks for a password reset mail.
type ForgotRequest struct {
	Login string `json:"login"`
}

// ResetRequest consumes a reset token with the new password.
type ResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CreateUserRequest describes an admin account creation payload.
type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse describes a created account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}
