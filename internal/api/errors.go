package api

import "errors"

var (
	ErrUnauthorized   = errors.New("focus API rejected the credentials")
	ErrUnavailable    = errors.New("focus API is not reachable")
	ErrTimeout        = errors.New("focus API request timed out")
	ErrRetryExhausted = errors.New("focus API request failed after retries")
	ErrInvalidPayload = errors.New("focus API returned an invalid payload")
)
