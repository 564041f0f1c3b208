package user

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or malformed token")
	ErrPermissionRequired = errors.New("insufficient permissions")
)
