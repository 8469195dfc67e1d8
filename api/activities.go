package api

import (
	"context"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/models"
)

func (a *API) ListActivities(ctx context.Context, params models.ActivityListParams) (*models.List[models.Activity], error) {
	return fetch[models.List[models.Activity]](ctx, a, "/activities/list", params)
}

func (a *API) CreateActivity(ctx context.Context, params models.ActivityParams) (*models.BaseResult, error) {
	params.ID = 0
	return a.exec(ctx, "/activities/create", params)
}

func (a *API) EditActivity(ctx context.Context, params models.ActivityParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/activities/edit", params)
}

func (a *API) EnableActivity(ctx context.Context, id int64) (*models.BaseResult, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/activities/enable", empty, client.WithQuery("id", id))
}

func (a *API) DisableActivity(ctx context.Context, id int64) (*models.BaseResult, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/activities/disable", empty, client.WithQuery("id", id))
}

func (a *API) DeleteActivity(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/activities/delete", id)
}
