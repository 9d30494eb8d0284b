package services

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrNoResume       = errors.New("no resume uploaded")
	ErrUnsupportedExt = errors.New("unsupported resume format")
	ErrFileTooLarge   = errors.New("resume file too large")
)
