package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAPIKeyUnsupported is returned by Fetch for a plain API key.
	ErrAPIKeyUnsupported = errors.New("only an API key was found; Codex usage limits are only visible with an OAuth session token, log in with: codex login")

	// ErrUnauthorized matches any *UnauthorizedError.
	ErrUnauthorized = errors.New("unauthorized")

	errMiss = errors.New("not found")
)

// NoCredentialError means every discovery source came up empty.
type NoCredentialError struct {
	Tried []string
}

func (e *NoCredentialError) Error() string {
	return fmt.Sprintf("no OpenAI / Codex credentials found (tried %s); log in with: codex login",
		strings.Join(e.Tried, ", "))
}

type UnauthorizedError struct {
	Status int
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("token expired or unauthorised (HTTP %d); try: codex logout && codex login", e.Status)
}

func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// APIError is a non-2xx response other than 401/403.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned HTTP %d: %s", e.Status, oneLine(e.Body))
}

// MalformedResponseError keeps the raw body of a response that did not decode.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("parse usage response: %v: %s", e.Err, oneLine(e.Raw))
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

const maxBodyInMessage = 200

// oneLine collapses whitespace so a response body fits on one error line.
func oneLine(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	if r := []rune(s); len(r) > maxBodyInMessage {
		s = string(r[:maxBodyInMessage]) + "..."
	}
	return s
}
