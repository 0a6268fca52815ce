package service

import "errors"

var (
	// ErrInvalidInput wraps every caller-side validation failure
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidSerial = errors.New("serial number is required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)
