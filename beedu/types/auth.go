package types

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
