// Package api is the typed surface of the console backend: one method per
// endpoint, each issuing a single call through the request client.
//
// Errors from the client are returned unchanged, so callers can match
// *client.APIError, *client.ErrRateLimited and the client sentinels.
// Arguments that the backend would reject outright are refused here with the
// sentinel errors below, before any request is made.
package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/models"
	"github.com/InsulaLabs/counsel/upload"
)

var (
	ErrInvalidID             = errors.New("id must be positive")
	ErrEvaluationName        = errors.New("evaluation name must be 2 to 200 characters")
	ErrEvaluationItems       = errors.New("evaluation needs at least one item")
	ErrEvaluationItemTitle   = errors.New("evaluation item title must be 2 to 200 characters")
	ErrQuestionRequired      = errors.New("faq question cannot be empty")
	ErrCounselorNameRequired = errors.New("counselor name cannot be empty")
	ErrCompanyNameRequired   = errors.New("company name cannot be empty")
	ErrUploaderMissing       = errors.New("no uploader configured")
)

type API struct {
	client   *client.Client
	uploader *upload.Uploader
	logger   *slog.Logger
}

// New wraps c. The uploader is only needed for ImportCounselors and may be nil
// otherwise.
func New(c *client.Client, u *upload.Uploader, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		client:   c,
		uploader: u,
		logger:   logger.WithGroup("api"),
	}
}

func (a *API) Client() *client.Client {
	return a.client
}

// fetch posts in and decodes the data member of the answer into a new T.
func fetch[T any](ctx context.Context, a *API, path string, in any, opts ...client.CallOption) (*T, error) {
	var out T
	if _, err := a.client.Post(ctx, path, in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// exec posts in for an endpoint that answers with the bare result.
func (a *API) exec(ctx context.Context, path string, in any, opts ...client.CallOption) (*models.BaseResult, error) {
	return a.client.Post(ctx, path, in, nil, opts...)
}

func (a *API) deleteByID(ctx context.Context, path string, id int64) (*models.BaseResult, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, path, models.IDPayload{ID: id})
}

// empty is the body of calls that carry their argument in the query string.
var empty = struct{}{}
