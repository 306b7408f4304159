package service

import "errors"

var (
	ErrValidation     = errors.New("validation")      // 400
	ErrNotFound       = errors.New("not found")       // 404
	ErrConflict       = errors.New("conflict")        // 400
	ErrForbidden      = errors.New("forbidden")       // 403
	ErrSearchDisabled = errors.New("search disabled") // 503
)
