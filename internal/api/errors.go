package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// User-facing messages for failures that carry no usable detail.
const (
	MsgConnectivity = "Unable to connect to server. Please check your connection and ensure the backend is running."
	MsgNotFound     = "Resource not found"
	MsgServerError  = "Server error occurred. Please try again."
)

// Kind classifies a trip-API failure.
type Kind int

const (
	KindConnectivity Kind = iota
	KindValidation
	KindNotFound
	KindServer
	KindUnclassified
)

// APIError is the single error type the client returns. Message is derived
// once at the client boundary and rendered verbatim by the UI; Err keeps
// the original failure for logs.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a trip-API not-found failure. The shell
// treats this as "no such trip" and falls back to the list view.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == KindNotFound
}

// errorEnvelope is the {error: "..."} body used for 404/500 responses.
type errorEnvelope struct {
	Error string `json:"error"`
}

// classify turns an HTTP status and body into an APIError with the derived
// user message. 400 bodies are field-keyed ({field: string|[]string}) and
// concatenated one line per field; fields are sorted so the message is
// deterministic.
func classify(status int, body []byte) *APIError {
	switch {
	case status == 400:
		return &APIError{
			Kind:    KindValidation,
			Status:  status,
			Message: validationMessage(body),
		}
	case status == 404:
		return &APIError{
			Kind:    KindNotFound,
			Status:  status,
			Message: envelopeOr(body, MsgNotFound),
		}
	case status == 500:
		return &APIError{
			Kind:    KindServer,
			Status:  status,
			Message: envelopeOr(body, MsgServerError),
		}
	default:
		return &APIError{
			Kind:    KindUnclassified,
			Status:  status,
			Message: envelopeOr(body, fmt.Sprintf("Request failed with status %d", status)),
		}
	}
}

// connectivityError wraps a transport failure where no response arrived.
// The message is fixed regardless of the underlying error text.
func connectivityError(err error) *APIError {
	return &APIError{
		Kind:    KindConnectivity,
		Message: MsgConnectivity,
		Err:     err,
	}
}

func envelopeOr(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return fallback
}

func validationMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return "Validation errors:\nrequest could not be processed"
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "Validation errors:")
	for _, name := range names {
		lines = append(lines, name+": "+fieldMessages(fields[name]))
	}
	return strings.Join(lines, "\n")
}

// fieldMessages accepts both string and []string values for one field.
func fieldMessages(raw json.RawMessage) string {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return one
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, ", ")
	}
	return string(raw)
}
