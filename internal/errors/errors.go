package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error
// types without coupling them to implementation details like HTTP status codes.
// The API layer checks for these with `errors.Is()` and maps them to the
// correct HTTP responses.

var (
	// ErrValidation signifies that input data provided by a client failed
	// validation (empty message, message too long, malformed payload).
	// Mapped to a 400 Bad Request; the error message is safe to show the client.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownProvider signifies that the requested provider key is not in
	// the closed set of registered providers. Mapped to a 400 Bad Request.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidModel signifies that the requested model is not in the curated
	// allowlist of the selected provider. Mapped to a 400 Bad Request.
	ErrInvalidModel = errors.New("invalid model")

	// ErrInvalidSession signifies a session identifier that is malformed or
	// not registered in the session store. Mapped to a 400 Bad Request.
	ErrInvalidSession = errors.New("invalid session")

	// ErrMissingCredential signifies that no API key is configured for the
	// selected provider. Surfaced to the client as a generic upstream failure
	// so the credential layout is never leaked.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrRemoteUnavailable signifies that the outbound call to a provider
	// failed: network error, timeout, or a non-success upstream status.
	// The upstream error body is logged server-side, never sent to the client.
	ErrRemoteUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse signifies that a provider returned a success status
	// but the response envelope lacked the expected reply field.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrInternal signifies an unexpected error on the server. This is a
	// generic error used to prevent leaking implementation details.
	// Mapped to a 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
