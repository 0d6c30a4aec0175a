package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork wraps transport failures: the backend was never reached
	// or the response could not be read.
	ErrNetwork = errors.New("backend unreachable")
	// ErrNoToken is returned without a network call when an authenticated
	// endpoint is used while logged out.
	ErrNoToken = errors.New("not authenticated")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	if msg := detailMessage(e.Body); msg != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || errors.Is(err, ErrNoToken)
}

// Message turns any backend error into one display string. The payload's
// detail may be a list of field errors (first one wins, msg before message),
// a plain string, or an object with msg; gin-style {"error": "..."} bodies
// are read too. Anything else yields fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if msg := detailMessage(apiErr.Body); msg != "" {
		return msg
	}
	return fallback
}

type fieldError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var list []fieldError
		if err := json.Unmarshal(payload.Detail, &list); err == nil {
			if len(list) > 0 {
				if list[0].Msg != "" {
					return list[0].Msg
				}
				return list[0].Message
			}
			return ""
		}
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			return text
		}
		var single fieldError
		if err := json.Unmarshal(payload.Detail, &single); err == nil && single.Msg != "" {
			return single.Msg
		}
		return ""
	}
	return payload.Error
}

// LoginMessage maps a failed login to the message the login page shows.
func LoginMessage(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the server. Please check your network connection!"
	case StatusCode(err) == http.StatusUnauthorized:
		return Message(err, "Incorrect email or password!")
	case StatusCode(err) == http.StatusUnprocessableEntity:
		return Message(err, "Invalid data!")
	case StatusCode(err) >= http.StatusInternalServerError:
		return "System error. Please try again later!"
	}
	return Message(err, "Login failed. Please try again!")
}
