package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Wrapped messages are
// written to be readable as API responses.
var (
	ErrValidation = errors.New("invalid request") // 400
	ErrNotFound   = errors.New("not found")       // 404
	ErrConflict   = errors.New("conflict")        // 409
)
