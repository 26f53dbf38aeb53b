package dto

// LoginRequest defines the credentials payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the caller's role.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
