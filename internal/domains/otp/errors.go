package otp

import "errors"

var (
	ErrOTPNotFound      = errors.New("otp not found")
	ErrInvalidOrExpired = errors.New("invalid or expired otp")
	ErrInvalidType      = errors.New("invalid otp type")
	ErrTooManyRequests  = errors.New("too many otp requests, please try again later")
)
