package client

import (
	"net/http"
	"net/url"
	"strconv"
)

// CallOption adjusts a single JSON call.
type CallOption func(*RequestConfig)

// WithQuery adds a query parameter to the request URL.
func WithQuery(key string, value any) CallOption {
	return func(rc *RequestConfig) {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case int:
			s = strconv.Itoa(v)
		case int64:
			s = strconv.FormatInt(v, 10)
		case bool:
			s = strconv.FormatBool(v)
		default:
			s = stringify(v)
		}
		rc.Query.Add(key, s)
	}
}

// WithHeader sets a request header, replacing any default for the same key.
func WithHeader(key, value string) CallOption {
	return func(rc *RequestConfig) {
		rc.Headers.Set(key, value)
	}
}

func newRequestConfig(opts []CallOption) *RequestConfig {
	rc := &RequestConfig{
		Headers: http.Header{},
		Query:   url.Values{},
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}
