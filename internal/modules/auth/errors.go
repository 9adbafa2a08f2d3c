package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrSlugTaken          = errors.New("shop slug already taken")
	ErrInvalidSlug        = errors.New("shop slug is invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
)
