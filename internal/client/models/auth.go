package models

// Credentials is the body of POST /auth/login and POST /auth/signup.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
