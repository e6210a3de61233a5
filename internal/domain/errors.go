package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrTaskNotFound = errors.New("task not found")
	ErrLinkFailed   = errors.New("failed to link task to user")
)
