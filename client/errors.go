package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// GenericErrorMessage is used when a rejection carries no usable message.
const GenericErrorMessage = "request failed"

var (
	ErrConfigMissing   = errors.New("client config cannot be nil")
	ErrBaseURLMissing  = errors.New("base url cannot be empty")
	ErrInsecureBaseURL = errors.New("base url must use https unless it points at a loopback host")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// ErrorBody is the error schema the backend answers rejections with. Every
// member is optional; absent members fall back in ParseErrorBody.
type ErrorBody struct {
	Code      *int    `json:"code"`
	Message   *string `json:"message"`
	Error     *string `json:"error"`
	RID       *string `json:"rid"`
	RequestID *string `json:"requestId"`
}

// APIError is a rejection the server answered with. Structured is false
// when the body could not be read as an ErrorBody at all.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	RequestID  string
	Structured bool
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("server error (status %d, code %d): %s [rid %s]", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("server error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ParseErrorBody reads a rejection body against ErrorBody. Code falls back to
// status, message to the body's error member and then to fallbackMessage
// (GenericErrorMessage when empty), and the request id to requestId when rid
// is absent. Zero codes and empty strings count as absent. A member of the
// wrong JSON type is ignored while the others are still used.
func ParseErrorBody(status int, body []byte, fallbackMessage string) *APIError {
	if fallbackMessage == "" {
		fallbackMessage = GenericErrorMessage
	}
	apiErr := &APIError{
		StatusCode: status,
		Code:       status,
		Message:    fallbackMessage,
	}

	var parsed ErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return apiErr
		}
	}
	apiErr.Structured = true

	if parsed.Code != nil && *parsed.Code != 0 {
		apiErr.Code = *parsed.Code
	}
	switch {
	case parsed.Message != nil && *parsed.Message != "":
		apiErr.Message = *parsed.Message
	case parsed.Error != nil && *parsed.Error != "":
		apiErr.Message = *parsed.Error
	}
	switch {
	case parsed.RID != nil && *parsed.RID != "":
		apiErr.RequestID = *parsed.RID
	case parsed.RequestID != nil && *parsed.RequestID != "":
		apiErr.RequestID = *parsed.RequestID
	}
	return apiErr
}

// ErrRateLimited is returned for 429 answers. RetryAfter comes from the
// Retry-After header, Limit and Burst from X-RateLimit-Limit/-Burst.
type ErrRateLimited struct {
	Message    string
	RetryAfter time.Duration
	Limit      int
	Burst      int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited: %s (retry after %v, limit %d, burst %d)", e.Message, e.RetryAfter, e.Limit, e.Burst)
}

func rateLimitedFrom(resp *Response) *ErrRateLimited {
	parsed := ParseErrorBody(resp.StatusCode, resp.Body, "too many requests")
	e := &ErrRateLimited{
		Message:    parsed.Message,
		RetryAfter: time.Second,
	}
	if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		} else if when, err := http.ParseTime(ra); err == nil {
			if d := time.Until(when); d > 0 {
				e.RetryAfter = d
			}
		}
	}
	e.Limit, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	e.Burst, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Burst"))
	return e
}

func stringify(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
