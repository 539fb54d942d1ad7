package utils

import "errors"

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorInvalidInput    = errors.New("invalid input")
	ErrorServiceNotReady = errors.New("service not ready")
	ErrorLockNotObtained = errors.New("another write is in progress, try again")
)
