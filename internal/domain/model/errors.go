package model

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrConstraintViolation   = errors.New("constraint violation")
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	ErrStore                 = errors.New("database query error")
)
