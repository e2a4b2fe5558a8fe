package model

// RegisterRequest represents the request to create an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request to authenticate.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a signed token and the account it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CheckEmailResponse reports whether an email belongs to a registered user.
type CheckEmailResponse struct {
	Exists bool   `json:"exists"`
	UserID string `json:"user_id,omitempty"`
}
