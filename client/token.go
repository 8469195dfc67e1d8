package client

import (
	"context"
	"os"
)

// TokenSource supplies the bearer token attached to each request. An empty
// token means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// EnvToken reads the token from the named environment variable on every call,
// so a rotated token is picked up without rebuilding the client.
type EnvToken string

func (e EnvToken) Token(context.Context) (string, error) {
	return os.Getenv(string(e)), nil
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}
