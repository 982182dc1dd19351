package domain

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers map this to HTTP 404 — except where the operation is a silent
// no-op on a missing id (trip deletion, vehicle update/delete).
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (non-positive
// distance, blank required field, unknown purpose category).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned by a gateway when a required external
// credential or capability is not configured: the feature is disabled for
// the session. Handlers map this to HTTP 503.
var ErrUnavailable = errors.New("service unavailable")

// ErrRequestFailed is returned when a call to an external API fails or its
// response cannot be parsed. The operation is simply not completed; nothing
// retries automatically. Handlers map this to HTTP 502.
var ErrRequestFailed = errors.New("request failed")
