package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz not published")
	ErrInvalidQuiz        = errors.New("quiz definition is invalid")
	ErrResultNotFound     = errors.New("result not found")
	ErrNoResults          = errors.New("no results to export")
	ErrExportNotFound     = errors.New("export not found")
)
