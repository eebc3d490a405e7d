package auth

import "errors"

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

var (
	errUserNotFound  = errors.New("auth user not found")
	errWrongPassword = errors.New("auth wrong password")
	errOutsideWindow = errors.New("auth account outside validity window")
)
