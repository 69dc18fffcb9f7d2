package client

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error is returned for failed requests. StatusCode is 0 when the server
// could not be reached.
type Error struct {
	StatusCode int
	Type       string
	Message    string
	RequestID  string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%d %s: %s (request %s)", e.StatusCode, e.Type, e.Message, e.RequestID)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody covers both error envelopes the API uses
type errorBody struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (b *errorBody) toError(status int) *Error {
	msg := b.Error
	if msg == "" {
		msg = b.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{StatusCode: status, Type: b.Type, Message: msg, RequestID: b.RequestID}
}

// IsRecoverable reports whether retrying the request may succeed:
// network failures and server errors are, client errors are not.
func IsRecoverable(err error) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}

// IsNotFound reports whether the API answered 404
func IsNotFound(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// UserMessage turns err into a message suitable for end users
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch {
	case e.StatusCode == 0:
		return "Unable to reach the server. Check your connection and try again."
	case e.StatusCode >= http.StatusInternalServerError:
		return "The server encountered an error. Please try again later."
	case e.StatusCode == http.StatusTooManyRequests:
		return "Too many attempts. Please wait a minute and try again."
	default:
		return e.Message
	}
}
