package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v73/github"
)

// Failure kinds. Every error returned by Client wraps exactly one of these.
var (
	ErrNetwork       = errors.New("network failure")
	ErrBadResponse   = errors.New("bad response")
	ErrMalformedBody = errors.New("malformed body")
)

// ErrEmptyQuery is returned when a search is requested for a blank query.
var ErrEmptyQuery = errors.New("empty query")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, ErrBadResponse) match any HTTPError.
func (e *HTTPError) Unwrap() error {
	return ErrBadResponse
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// KindOf returns a short label for the failure kind of err, for logging.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	case errors.Is(err, ErrMalformedBody):
		return "malformed_body"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}

// classify maps an error from go-github onto one of the failure kinds.
func classify(err error) error {
	var (
		rateErr   *github.RateLimitError
		abuseErr  *github.AbuseRateLimitError
		respErr   *github.ErrorResponse
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &rateErr):
		return &HTTPError{StatusCode: statusOf(rateErr.Response, http.StatusForbidden), Message: rateErr.Message}
	case errors.As(err, &abuseErr):
		return &HTTPError{StatusCode: statusOf(abuseErr.Response, http.StatusForbidden), Message: abuseErr.Message}
	case errors.As(err, &respErr):
		return &HTTPError{StatusCode: statusOf(respErr.Response, 0), Message: respErr.Message}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
