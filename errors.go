package erniechat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind categorizes a failed chat completion call.
type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindAuth           ErrorKind = "auth"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindRateLimit      ErrorKind = "rate_limit"
	KindServer         ErrorKind = "server"
	KindDecode         ErrorKind = "decode"
)

// APIError is a structured error for a failed call to the Qianfan
// endpoint. StatusCode is zero for transport and decode failures.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Kind returns the ErrorKind of err, or the empty string if err is
// not an *APIError.
func Kind(err error) ErrorKind {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Kind
	}
	return ""
}

// mapHTTPError converts a non-2xx response from the backend into an
// APIError. It reads the response body looking for an OpenAI-style
// error message.
func mapHTTPError(resp *http.Response) *APIError {
	message := extractErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if message == "" {
			message = "authentication rejected"
		}
		return &APIError{Kind: KindAuth, StatusCode: resp.StatusCode, Message: message}

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "invalid request"
		}
		return &APIError{Kind: KindInvalidRequest, StatusCode: resp.StatusCode, Message: message}

	case resp.StatusCode == http.StatusTooManyRequests:
		if message == "" {
			message = "rate limit exceeded"
		}
		return &APIError{Kind: KindRateLimit, StatusCode: resp.StatusCode, Message: message}

	case resp.StatusCode >= http.StatusInternalServerError:
		if message == "" {
			message = fmt.Sprintf("server error (HTTP %d)", resp.StatusCode)
		}
		return &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Message: message}

	default:
		if message == "" {
			message = fmt.Sprintf("unexpected status (HTTP %d)", resp.StatusCode)
		}
		return &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Message: message}
	}
}

// mapNetworkError converts a transport-level error (connection refused,
// DNS failure, TLS handshake, timeout) into an APIError.
func mapNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "connection error", Err: err}
}

// extractErrorMessage tries to parse the body as an OpenAI-style error
// response and returns the message if found.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return ""
}
