package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrAuthCodeMismatch = errors.New("auth code does not match")
	ErrMailAuthRequired = errors.New("mail authentication required")
	ErrLoginFailed      = errors.New("uid or password is incorrect")
)
