package api

import "fmt"

// APIError is a non-2xx backend response. Message carries the server's
// "message" field when the body was a decodable JSON error, else the HTTP
// status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// ValidationError is raised before any network call when a required
// parameter is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requireID(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
