package service

import "errors"

var (
	// ErrInvalidCredentials is returned by sign-in for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrBanned is returned when a banned user signs in or presents a token
	ErrBanned = errors.New("user is banned")
	// ErrInvalidToken covers malformed, badly signed and expired tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)
