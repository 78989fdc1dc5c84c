package service

import "errors"

// ErrInvalidInput marks request-level validation failures. Handlers map it
// to a 400 response; details are carried in the wrapping message.
var ErrInvalidInput = errors.New("invalid input")
