package models

// LoginResponse carries the signed bearer token issued on login
type LoginResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is the public view of a user account
type ProfileResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
